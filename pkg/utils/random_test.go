package utils

import (
	"strings"
	"testing"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	s, err := RandomString(10)
	if err != nil {
		t.Fatalf("RandomString error: %v", err)
	}
	if len(s) != 10 {
		t.Fatalf("length: got %d want 10", len(s))
	}
	for _, c := range s {
		if !strings.ContainsRune(alphanumeric, c) {
			t.Fatalf("unexpected character %q in %q", c, s)
		}
	}

	other, err := RandomString(10)
	if err != nil {
		t.Fatalf("RandomString error: %v", err)
	}
	if s == other {
		t.Fatal("two random strings are identical")
	}
}

func TestRandomDigits(t *testing.T) {
	t.Parallel()

	code, err := RandomDigits(5)
	if err != nil {
		t.Fatalf("RandomDigits error: %v", err)
	}
	if len(code) != 5 {
		t.Fatalf("length: got %d want 5", len(code))
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			t.Fatalf("non-digit %q in %q", c, code)
		}
	}
}
