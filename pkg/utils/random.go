package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomString returns a random mixed-alphanumeric string of length n.
// Used for per-login session identifiers.
func RandomString(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphanumeric)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphanumeric[idx.Int64()]
	}
	return string(out), nil
}

// RandomDigits returns a random numeric code of n digits, zero-padded.
func RandomDigits(n int) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	mod := uint64(1)
	for i := 0; i < n; i++ {
		mod *= 10
	}
	v := binary.LittleEndian.Uint64(b[:]) % mod
	return fmt.Sprintf("%0*d", n, v), nil
}
