package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory PrincipalStore for tests.
type fakeStore struct {
	name       string
	principals map[string]*Principal
	findErr    error
	updated    map[string][]string
}

func newFakeStore(name string, principals ...*Principal) *fakeStore {
	byID := make(map[string]*Principal, len(principals))
	for _, p := range principals {
		byID[p.ID] = p
	}
	return &fakeStore{name: name, principals: byID, updated: map[string][]string{}}
}

func (s *fakeStore) Name() string { return s.name }

func (s *fakeStore) FindByID(_ context.Context, id string) (*Principal, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.principals[id], nil
}

func (s *fakeStore) FindByRefreshToken(_ context.Context, token string) (*Principal, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, p := range s.principals {
		for _, stored := range p.SessionTokens {
			if stored == token {
				return p, nil
			}
		}
	}
	return nil, nil
}

func (s *fakeStore) UpdateSessionTokens(_ context.Context, id string, tokens []string) error {
	s.updated[id] = tokens
	return nil
}

func TestResolveFirstMatchWins(t *testing.T) {
	t.Parallel()

	candidates := newFakeStore("candidates", &Principal{ID: "c1", Verified: true})
	employers := newFakeStore("employers", &Principal{ID: "e1", Verified: true})

	principal, store, err := Resolve(context.Background(), "e1",
		[]PrincipalStore{candidates, employers})
	require.NoError(t, err)
	assert.Equal(t, "e1", principal.ID)
	assert.Equal(t, "employers", store.Name())
}

func TestResolveUnknownPrincipal(t *testing.T) {
	t.Parallel()

	_, _, err := Resolve(context.Background(), "nobody",
		[]PrincipalStore{newFakeStore("candidates")})
	assert.ErrorIs(t, err, ErrUnknownPrincipal)
}

func TestResolvePropagatesStoreError(t *testing.T) {
	t.Parallel()

	broken := newFakeStore("candidates")
	broken.findErr = errors.New("connection reset")

	_, _, err := Resolve(context.Background(), "c1", []PrincipalStore{broken})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownPrincipal)
}

func TestCheckGatesOrderAndMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		principal Principal
		want      error
	}{
		{"blocked wins over deleted", Principal{Blocked: true, Deleted: true}, ErrAccountBlocked},
		{"deleted wins over unverified", Principal{Deleted: true}, ErrAccountDeleted},
		{"unverified", Principal{}, ErrAccountUnverified},
		{"all clear", Principal{Verified: true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, CheckGates(&tt.principal, "candidates"), tt.want)
		})
	}
}

func TestCheckGatesAdminExempt(t *testing.T) {
	t.Parallel()

	// Admin docs carry no gate fields, so everything decodes false.
	assert.NoError(t, CheckGates(&Principal{}, AdminCollection))
	assert.NoError(t, CheckGates(&Principal{Blocked: true, Deleted: true}, AdminCollection))
}
