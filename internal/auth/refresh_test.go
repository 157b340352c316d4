package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueFor(t *testing.T, ts *TokenService, principal *Principal) *TokenPair {
	t.Helper()
	pair, err := ts.IssueSession(principal.ID)
	require.NoError(t, err)
	principal.SessionTokens = append(principal.SessionTokens, pair.RefreshToken)
	return pair
}

func TestRefreshAccessToken(t *testing.T) {
	t.Parallel()

	ts := NewTokenService("super-secret", 0)
	principal := &Principal{ID: "c1", Verified: true}
	store := newFakeStore("candidates", principal)
	pair := issueFor(t, ts, principal)

	accessToken, err := ts.RefreshAccessToken(context.Background(), store, pair.RefreshToken)
	require.NoError(t, err)

	// The new access token carries the principal id and reuses the session
	// nonce from the refresh token.
	got, err := ts.Decode(accessToken)
	require.NoError(t, err)
	original, err := ts.Decode(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
	assert.Equal(t, original.UniqueID, got.UniqueID)
}

func TestRefreshEmptyToken(t *testing.T) {
	t.Parallel()

	ts := NewTokenService("super-secret", 0)
	store := newFakeStore("candidates")

	_, err := ts.RefreshAccessToken(context.Background(), store, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRefreshUnknownToken(t *testing.T) {
	t.Parallel()

	ts := NewTokenService("super-secret", 0)
	store := newFakeStore("candidates", &Principal{ID: "c1", Verified: true})

	// Well-signed but never registered: the registry is authoritative.
	stray, err := ts.SignRefreshToken("abcde12345")
	require.NoError(t, err)

	_, err = ts.RefreshAccessToken(context.Background(), store, stray)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestRefreshRevokedToken(t *testing.T) {
	t.Parallel()

	ts := NewTokenService("super-secret", 0)
	principal := &Principal{ID: "c1", Verified: true}
	store := newFakeStore("candidates", principal)
	pair := issueFor(t, ts, principal)

	// Revocation is removal from the registry; the signature stays valid.
	principal.SessionTokens = nil

	_, err := ts.RefreshAccessToken(context.Background(), store, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestRefreshGatedAccounts(t *testing.T) {
	t.Parallel()

	ts := NewTokenService("super-secret", 0)

	tests := []struct {
		name      string
		principal *Principal
		want      error
	}{
		{"blocked", &Principal{ID: "c1", Blocked: true, Verified: true}, ErrAccountBlocked},
		{"deleted", &Principal{ID: "c2", Deleted: true, Verified: true}, ErrAccountDeleted},
		{"unverified", &Principal{ID: "c3"}, ErrAccountUnverified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore("candidates", tt.principal)
			pair := issueFor(t, ts, tt.principal)

			_, err := ts.RefreshAccessToken(context.Background(), store, pair.RefreshToken)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRefreshAdminBypassesGates(t *testing.T) {
	t.Parallel()

	ts := NewTokenService("super-secret", 0)
	admin := &Principal{ID: "a1"}
	store := newFakeStore(AdminCollection, admin)
	pair := issueFor(t, ts, admin)

	accessToken, err := ts.RefreshAccessToken(context.Background(), store, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := ts.Decode(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "a1", claims.ID)
}
