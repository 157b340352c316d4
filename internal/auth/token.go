package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/remotehire/remotehire-backend/pkg/utils"
)

// NonceLength is the length of the per-login session identifier embedded in
// both halves of a token pair.
const NonceLength = 10

// Claims carried by issued tokens. Access tokens set both ID and UniqueID,
// refresh tokens set only UniqueID.
type Claims struct {
	jwt.RegisteredClaims
	ID       string `json:"id,omitempty"`
	UniqueID string `json:"uniqueId"`
}

// TokenPair is the result of a successful session issuance.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService signs and verifies session tokens with a process-wide HMAC
// secret. TTL of zero means tokens carry no exp claim: sessions then live
// until their nonce is removed from the owning principal's registry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// IssueSession generates a fresh session nonce and signs an access/refresh
// token pair for the principal. The caller is responsible for appending the
// refresh token to the principal's session registry.
func (ts *TokenService) IssueSession(principalID string) (*TokenPair, error) {
	nonce, err := utils.RandomString(NonceLength)
	if err != nil {
		return nil, err
	}

	refreshToken, err := ts.SignRefreshToken(nonce)
	if err != nil {
		return nil, err
	}
	accessToken, err := ts.SignAccessToken(principalID, nonce)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// SignAccessToken signs a token carrying {id, uniqueId}.
func (ts *TokenService) SignAccessToken(principalID, nonce string) (string, error) {
	return ts.sign(Claims{ID: principalID, UniqueID: nonce})
}

// SignRefreshToken signs a token carrying only the session nonce.
func (ts *TokenService) SignRefreshToken(nonce string) (string, error) {
	return ts.sign(Claims{UniqueID: nonce})
}

func (ts *TokenService) sign(claims Claims) (string, error) {
	if ts.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ts.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.secret)
}

// Decode verifies the token signature and returns its claims. It does NOT
// check session liveness; that is the Verify middleware's job, so a session
// can be revoked server-side without a token blocklist.
func (ts *TokenService) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return ts.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrInvalidToken
		}
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
