package auth

import "context"

// AdminCollection is the collection name whose principals bypass the
// blocked/deleted/verified gates.
const AdminCollection = "admins"

// Principal is the normalized view of an account the auth subsystem needs.
// Full profile documents stay with their handlers; only identity, status
// gates and the session registry cross this boundary.
type Principal struct {
	ID            string
	Blocked       bool
	Deleted       bool
	Verified      bool
	SessionTokens []string
}

// PrincipalStore is implemented per collection (candidates, employers,
// admins). FindByID and FindByRefreshToken return (nil, nil) when there is
// no match.
type PrincipalStore interface {
	// Name returns the backing collection name.
	Name() string
	FindByID(ctx context.Context, id string) (*Principal, error)
	// FindByRefreshToken matches on the literal signed token string.
	FindByRefreshToken(ctx context.Context, token string) (*Principal, error)
	// UpdateSessionTokens replaces the principal's session registry.
	UpdateSessionTokens(ctx context.Context, id string, tokens []string) error
}

// Resolve iterates the stores in caller-supplied priority order and returns
// the first principal matching id, along with the store that owns it.
// Identifiers are unique system-wide, so ordering only affects lookup cost.
func Resolve(ctx context.Context, id string, stores []PrincipalStore) (*Principal, PrincipalStore, error) {
	for _, store := range stores {
		principal, err := store.FindByID(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if principal != nil {
			return principal, store, nil
		}
	}
	return nil, nil, ErrUnknownPrincipal
}

// CheckGates applies the account-status gates in order: blocked, deleted,
// not verified. Principals owned by the admin collection are exempt.
func CheckGates(principal *Principal, collectionName string) error {
	if collectionName == AdminCollection {
		return nil
	}
	if principal.Blocked {
		return ErrAccountBlocked
	}
	if principal.Deleted {
		return ErrAccountDeleted
	}
	if !principal.Verified {
		return ErrAccountUnverified
	}
	return nil
}
