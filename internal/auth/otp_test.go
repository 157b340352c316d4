package auth

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remotehire/remotehire-backend/pkg/utils"
)

func testOTPKey() []byte {
	return bytes.Repeat([]byte("k"), 32)
}

// sealPayload builds a blob directly, bypassing Issue, so tests can control
// the expiration timestamp.
func sealPayload(t *testing.T, key []byte, payload otpPayload) string {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	blob, err := utils.Encrypt(key, string(raw))
	require.NoError(t, err)
	return blob
}

func TestOTPIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewOTPService(testOTPKey(), DefaultOTPWindow)
	blob, code, err := svc.Issue("user@example.com")
	require.NoError(t, err)
	assert.Len(t, code, OTPDigits)
	assert.NotContains(t, blob, code, "blob must not leak the code")

	assert.NoError(t, svc.Verify(blob, code))

	email, err := svc.VerifyForEmail(blob, code)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestOTPVerifyIsRepeatable(t *testing.T) {
	t.Parallel()

	svc := NewOTPService(testOTPKey(), DefaultOTPWindow)
	blob, code, err := svc.Issue("user@example.com")
	require.NoError(t, err)

	// Verification does not consume the blob; clearing it is the caller's job.
	assert.NoError(t, svc.Verify(blob, code))
	assert.NoError(t, svc.Verify(blob, code))
}

func TestOTPWrongCode(t *testing.T) {
	t.Parallel()

	svc := NewOTPService(testOTPKey(), DefaultOTPWindow)
	blob, code, err := svc.Issue("user@example.com")
	require.NoError(t, err)

	wrong := "00000"
	if wrong == code {
		wrong = "00001"
	}
	assert.ErrorIs(t, svc.Verify(blob, wrong), ErrOTPMismatch)
}

func TestOTPExpiredBeforeMismatch(t *testing.T) {
	t.Parallel()

	key := testOTPKey()
	svc := NewOTPService(key, DefaultOTPWindow)
	blob := sealPayload(t, key, otpPayload{
		Code:           "12345",
		Email:          "user@example.com",
		ExpirationTime: time.Now().Add(-time.Second).UnixMilli(),
	})

	// A stale blob reports expiry even when the code would have matched,
	// and also when it would not: expiry is checked first.
	assert.ErrorIs(t, svc.Verify(blob, "12345"), ErrOTPExpired)
	assert.ErrorIs(t, svc.Verify(blob, "99999"), ErrOTPExpired)
}

func TestOTPMalformedBlobs(t *testing.T) {
	t.Parallel()

	key := testOTPKey()
	svc := NewOTPService(key, DefaultOTPWindow)

	notJSON, err := utils.Encrypt(key, "not json at all")
	require.NoError(t, err)

	for name, blob := range map[string]string{
		"empty":        "",
		"garbage":      "garbage!!",
		"wrong key":    mustEncryptWithOtherKey(t),
		"not a payload": notJSON,
	} {
		assert.ErrorIs(t, svc.Verify(blob, "12345"), ErrOTPMalformed, name)
	}
}

func mustEncryptWithOtherKey(t *testing.T) string {
	t.Helper()
	blob, err := utils.Encrypt(bytes.Repeat([]byte("x"), 32), `{"otp":"12345"}`)
	require.NoError(t, err)
	return blob
}
