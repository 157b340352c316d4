package auth

import "context"

// RefreshAccessToken exchanges a refresh token for a newly minted access
// token without re-authenticating credentials. The principal is located by
// the literal signed token string, so a token that was revoked (removed from
// the registry) can no longer be exchanged even though its signature is
// still valid. The session nonce is reused: refreshing preserves the
// session rather than rotating it.
func (ts *TokenService) RefreshAccessToken(ctx context.Context, store PrincipalStore, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrNotAuthenticated
	}

	principal, err := store.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if principal == nil {
		return "", ErrSessionInvalid
	}

	if err := CheckGates(principal, store.Name()); err != nil {
		return "", err
	}

	claims, err := ts.Decode(refreshToken)
	if err != nil {
		return "", err
	}

	return ts.SignAccessToken(principal.ID, claims.UniqueID)
}
