package auth

import (
	"encoding/json"
	"time"

	"github.com/remotehire/remotehire-backend/pkg/utils"
)

const (
	// OTPDigits is the length of generated verification codes.
	OTPDigits = 5
	// DefaultOTPWindow is how long a code stays valid after issuance.
	DefaultOTPWindow = 5 * time.Minute
)

// otpPayload is what gets sealed into the opaque blob. ExpirationTime is
// unix milliseconds.
type otpPayload struct {
	Code           string `json:"otp"`
	Email          string `json:"email"`
	ExpirationTime int64  `json:"expirationTime"`
}

// OTPService issues and verifies one-time codes carried as encrypted,
// time-bounded blobs. The blob is either stored on the principal record or
// round-tripped through the client as an opaque query parameter; both call
// sites verify with the same semantics. Encryption is independent of the
// token codec and uses the symmetric process key, not the signing secret.
type OTPService struct {
	key    []byte
	window time.Duration
}

func NewOTPService(key []byte, window time.Duration) *OTPService {
	if window <= 0 {
		window = DefaultOTPWindow
	}
	return &OTPService{key: key, window: window}
}

// Issue generates a numeric code for email and seals {code, email, expiry}
// into an opaque blob. The code is returned separately so it can be
// delivered out-of-band.
func (s *OTPService) Issue(email string) (blob string, code string, err error) {
	code, err = utils.RandomDigits(OTPDigits)
	if err != nil {
		return "", "", err
	}

	payload := otpPayload{
		Code:           code,
		Email:          email,
		ExpirationTime: time.Now().Add(s.window).UnixMilli(),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", "", err
	}

	blob, err = utils.Encrypt(s.key, string(raw))
	if err != nil {
		return "", "", err
	}
	return blob, code, nil
}

// Verify decrypts the blob and checks the supplied code against it. Expiry
// is checked before the code, so a stale blob always fails with
// ErrOTPExpired regardless of code correctness.
func (s *OTPService) Verify(blob, suppliedCode string) error {
	_, err := s.verify(blob, suppliedCode)
	return err
}

// VerifyForEmail is Verify plus extraction of the email the code was issued
// for, used by flows that need to act on the account afterwards.
func (s *OTPService) VerifyForEmail(blob, suppliedCode string) (string, error) {
	payload, err := s.verify(blob, suppliedCode)
	if err != nil {
		return "", err
	}
	return payload.Email, nil
}

func (s *OTPService) verify(blob, suppliedCode string) (*otpPayload, error) {
	if blob == "" {
		return nil, ErrOTPMalformed
	}

	plaintext, err := utils.Decrypt(s.key, blob)
	if err != nil {
		return nil, ErrOTPMalformed
	}

	var payload otpPayload
	if err := json.Unmarshal([]byte(plaintext), &payload); err != nil {
		return nil, ErrOTPMalformed
	}

	if time.Now().UnixMilli() > payload.ExpirationTime {
		return nil, ErrOTPExpired
	}

	if payload.Code != suppliedCode {
		return nil, ErrOTPMismatch
	}

	return &payload, nil
}
