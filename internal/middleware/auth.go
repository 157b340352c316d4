package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/remotehire/remotehire-backend/internal/auth"
	"github.com/remotehire/remotehire-backend/pkg/utils"
)

type contextKey string

const (
	userIDKey     contextKey = "user_id"
	collectionKey contextKey = "principal_collection"
)

var tokenService *auth.TokenService

// InitAuth wires the token service used by Verify. Must be called once at
// startup before any route is served.
func InitAuth(ts *auth.TokenService) {
	tokenService = ts
}

// Verify gates a route behind bearer-token authentication. The stores are
// tried in order, so a single middleware instance can authorize e.g.
// "candidate or admin" routes. On success the principal id and owning
// collection are attached to the request context; the gate itself has no
// other side effects beyond pruning corrupt session entries.
func Verify(stores ...auth.PrincipalStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				utils.WriteError(w, http.StatusBadRequest, auth.ErrNotAuthenticated.Error())
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.WriteError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
				return
			}
			tokenString := parts[1]

			claims, err := tokenService.Decode(tokenString)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
				return
			}

			principal, store, err := auth.Resolve(r.Context(), claims.ID, stores)
			if err == auth.ErrUnknownPrincipal {
				utils.WriteError(w, http.StatusBadRequest, auth.ErrUnknownPrincipal.Error())
				return
			}
			if err != nil {
				log.Printf("auth: principal lookup failed: %v", err)
				utils.WriteError(w, http.StatusUnauthorized, auth.ErrUnknownPrincipal.Error())
				return
			}

			if err := auth.CheckGates(principal, store.Name()); err != nil {
				utils.WriteError(w, http.StatusBadRequest, err.Error())
				return
			}

			// Validate every nonce in the session registry. A corrupt entry
			// (external edit, partial write) is pruned rather than failing
			// the whole request; the cleaned list is persisted best-effort.
			valid := principal.SessionTokens[:0:0]
			for _, stored := range principal.SessionTokens {
				if _, err := tokenService.Decode(stored); err == nil {
					valid = append(valid, stored)
				}
			}
			if len(valid) != len(principal.SessionTokens) {
				if err := store.UpdateSessionTokens(r.Context(), principal.ID, valid); err != nil {
					log.Printf("auth: failed to prune session registry for %s: %v", principal.ID, err)
				}
			}

			// Re-check the presented token before trusting its identity.
			verified, err := tokenService.Decode(tokenString)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, verified.ID)
			ctx = context.WithValue(ctx, collectionKey, store.Name())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated principal id set by Verify.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// PrincipalCollection returns the collection the authenticated principal
// was resolved from.
func PrincipalCollection(r *http.Request) string {
	name, _ := r.Context().Value(collectionKey).(string)
	return name
}
