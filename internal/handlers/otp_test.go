package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remotehire/remotehire-backend/internal/auth"
	"github.com/remotehire/remotehire-backend/pkg/utils"
)

func setupOTPHandler(t *testing.T) *auth.OTPService {
	t.Helper()
	svc := auth.NewOTPService(bytes.Repeat([]byte("k"), 32), auth.DefaultOTPWindow)
	Init(auth.NewTokenService("test-secret", 0), svc)
	return svc
}

func callValidateOTP(t *testing.T, code, blob string) (*httptest.ResponseRecorder, utils.Envelope) {
	t.Helper()
	q := url.Values{}
	if code != "" {
		q.Set("otp", code)
	}
	if blob != "" {
		q.Set("encryptOpts", blob)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/otp/validate?"+q.Encode(), nil)
	rec := httptest.NewRecorder()
	ValidateOTP(rec, req)

	var env utils.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestValidateOTPCorrectCode(t *testing.T) {
	svc := setupOTPHandler(t)
	blob, code, err := svc.Issue("user@example.com")
	require.NoError(t, err)

	rec, env := callValidateOTP(t, code, blob)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "Correct OTP", env.Message)
}

func TestValidateOTPWrongCode(t *testing.T) {
	svc := setupOTPHandler(t)
	blob, code, err := svc.Issue("user@example.com")
	require.NoError(t, err)

	wrong := "00000"
	if wrong == code {
		wrong = "00001"
	}
	rec, env := callValidateOTP(t, wrong, blob)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, auth.ErrOTPMismatch.Error(), env.Message)
}

func TestValidateOTPExpiredBlob(t *testing.T) {
	setupOTPHandler(t)

	payload := map[string]interface{}{
		"otp":            "12345",
		"email":          "user@example.com",
		"expirationTime": time.Now().Add(-time.Second).UnixMilli(),
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	blob, err := utils.Encrypt(bytes.Repeat([]byte("k"), 32), string(raw))
	require.NoError(t, err)

	rec, env := callValidateOTP(t, "12345", blob)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, auth.ErrOTPExpired.Error(), env.Message)
}

func TestValidateOTPMissingParams(t *testing.T) {
	setupOTPHandler(t)

	rec, _ := callValidateOTP(t, "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = callValidateOTP(t, "12345", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateOTPGarbageBlob(t *testing.T) {
	setupOTPHandler(t)

	rec, env := callValidateOTP(t, "12345", "garbage!!")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, auth.ErrOTPMalformed.Error(), env.Message)
}
