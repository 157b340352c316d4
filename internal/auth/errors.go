package auth

import "errors"

// Every rejection the auth subsystem can produce. All of them surface as
// 4xx envelope responses at the HTTP boundary; none are retried.
var (
	ErrNotAuthenticated  = errors.New("you are not logged in")
	ErrTokenMalformed    = errors.New("malformed token")
	ErrInvalidToken      = errors.New("invalid token")
	ErrUnknownPrincipal  = errors.New("invalid user")
	ErrAccountBlocked    = errors.New("you are blocked")
	ErrAccountDeleted    = errors.New("user is deleted")
	ErrAccountUnverified = errors.New("user not verified")
	ErrSessionInvalid    = errors.New("session is not valid")

	ErrOTPMalformed = errors.New("invalid encrypted options format")
	ErrOTPExpired   = errors.New("verification code has expired")
	ErrOTPMismatch  = errors.New("invalid verification code")
)
