package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueSessionAndDecode(t *testing.T) {
	t.Parallel()

	ts := NewTokenService("super-secret", 0)
	pair, err := ts.IssueSession("user-123")
	if err != nil {
		t.Fatalf("IssueSession error: %v", err)
	}

	access, err := ts.Decode(pair.AccessToken)
	if err != nil {
		t.Fatalf("Decode(access) error: %v", err)
	}
	if access.ID != "user-123" {
		t.Fatalf("access ID mismatch: got %q want %q", access.ID, "user-123")
	}
	if len(access.UniqueID) != NonceLength {
		t.Fatalf("nonce length: got %d want %d", len(access.UniqueID), NonceLength)
	}

	refresh, err := ts.Decode(pair.RefreshToken)
	if err != nil {
		t.Fatalf("Decode(refresh) error: %v", err)
	}
	if refresh.ID != "" {
		t.Fatalf("refresh token must not carry a principal id, got %q", refresh.ID)
	}
	if refresh.UniqueID != access.UniqueID {
		t.Fatalf("nonce mismatch between pair halves: %q vs %q", refresh.UniqueID, access.UniqueID)
	}
}

func TestDecodeIsRepeatable(t *testing.T) {
	t.Parallel()

	ts := NewTokenService("super-secret", 0)
	tok, err := ts.SignAccessToken("u1", "abcde12345")
	if err != nil {
		t.Fatalf("SignAccessToken error: %v", err)
	}

	first, err := ts.Decode(tok)
	if err != nil {
		t.Fatalf("first Decode error: %v", err)
	}
	second, err := ts.Decode(tok)
	if err != nil {
		t.Fatalf("second Decode error: %v", err)
	}
	if first.ID != second.ID || first.UniqueID != second.UniqueID {
		t.Fatalf("decoding is not idempotent: %+v vs %+v", first, second)
	}
}

func TestDecodeWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService("right-secret", 0).SignAccessToken("u2", "abcde12345")
	if err != nil {
		t.Fatalf("SignAccessToken error: %v", err)
	}

	_, err = NewTokenService("wrong-secret", 0).Decode(tok)
	if err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService("k", 0).Decode("not.a.jwt")
	if err != ErrTokenMalformed {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestTokensWithoutTTLNeverExpire(t *testing.T) {
	t.Parallel()

	ts := NewTokenService("super-secret", 0)
	tok, err := ts.SignAccessToken("u3", "abcde12345")
	if err != nil {
		t.Fatalf("SignAccessToken error: %v", err)
	}

	claims, err := ts.Decode(tok)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if claims.ExpiresAt != nil {
		t.Fatalf("expected no exp claim, got %v", claims.ExpiresAt)
	}
}

func TestTokensWithTTLCarryExp(t *testing.T) {
	t.Parallel()

	ts := NewTokenService("super-secret", time.Hour)
	tok, err := ts.SignAccessToken("u4", "abcde12345")
	if err != nil {
		t.Fatalf("SignAccessToken error: %v", err)
	}

	claims, err := ts.Decode(tok)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("expected an exp claim with a positive TTL")
	}
}

func TestDecodeRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		ID:       "u5",
		UniqueID: "abcde12345",
	})
	tok, err := expired.SignedString([]byte("super-secret"))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = NewTokenService("super-secret", time.Hour).Decode(tok)
	if err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
