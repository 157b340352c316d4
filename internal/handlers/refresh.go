package handlers

import (
	"net/http"
	"strings"

	"github.com/remotehire/remotehire-backend/internal/auth"
	"github.com/remotehire/remotehire-backend/pkg/utils"
)

// RefreshHandler exchanges a valid refresh token for a new access token,
// scoped to one principal collection. The refresh token travels in the
// Authorization header like an access token would.
func RefreshHandler(collectionName string) http.HandlerFunc {
	store := newStore(collectionName)
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			utils.WriteError(w, http.StatusBadRequest, auth.ErrNotAuthenticated.Error())
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 {
			utils.WriteError(w, http.StatusBadRequest, auth.ErrNotAuthenticated.Error())
			return
		}

		accessToken, err := tokenService.RefreshAccessToken(r.Context(), store, parts[1])
		if err != nil {
			switch err {
			case auth.ErrSessionInvalid, auth.ErrNotAuthenticated:
				utils.WriteError(w, http.StatusBadRequest, auth.ErrSessionInvalid.Error())
			case auth.ErrAccountBlocked, auth.ErrAccountDeleted, auth.ErrAccountUnverified:
				utils.WriteError(w, http.StatusBadRequest, err.Error())
			case auth.ErrInvalidToken, auth.ErrTokenMalformed:
				utils.WriteError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
			default:
				utils.WriteError(w, http.StatusInternalServerError, "could not refresh token")
			}
			return
		}

		utils.WriteSuccess(w, http.StatusAccepted, "refresh token run successfully", map[string]string{
			"accessToken": accessToken,
		})
	}
}
