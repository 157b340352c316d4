package handlers

import (
	"net/http"

	"github.com/remotehire/remotehire-backend/pkg/utils"
)

// ValidateOTP checks a plain code against an encrypted challenge blob, both
// supplied as query parameters. Used by clients holding the blob themselves
// rather than an account-stored one.
func ValidateOTP(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("otp")
	blob := r.URL.Query().Get("encryptOpts")
	if code == "" || blob == "" {
		utils.WriteError(w, http.StatusBadRequest, "otp and encryptOpts are required")
		return
	}

	if err := otpService.Verify(blob, code); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteSuccess(w, http.StatusAccepted, "Correct OTP", nil)
}
