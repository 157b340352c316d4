package utils

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func testKey() []byte {
	return bytes.Repeat([]byte("k"), 32)
}

func TestParseEncryptionKey(t *testing.T) {
	t.Parallel()

	encoded := base64.StdEncoding.EncodeToString(testKey())
	key, err := ParseEncryptionKey(encoded)
	if err != nil {
		t.Fatalf("ParseEncryptionKey error: %v", err)
	}
	if !bytes.Equal(key, testKey()) {
		t.Fatal("parsed key does not match input")
	}
}

func TestParseEncryptionKeyRejectsBadInput(t *testing.T) {
	t.Parallel()

	for name, input := range map[string]string{
		"empty":      "",
		"not base64": "!!!not-base64!!!",
		"wrong size": base64.StdEncoding.EncodeToString([]byte("short")),
	} {
		if _, err := ParseEncryptionKey(input); err == nil {
			t.Fatalf("expected error for %s key", name)
		}
	}
}

func TestEncryptDecryptRoundtrip(t *testing.T) {
	t.Parallel()

	plaintext := `{"otp":"12345","email":"user@example.com"}`
	blob, err := Encrypt(testKey(), plaintext)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if blob == plaintext {
		t.Fatal("ciphertext equals plaintext")
	}

	got, err := Decrypt(testKey(), blob)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if got != plaintext {
		t.Fatalf("roundtrip mismatch: got %q want %q", got, plaintext)
	}
}

func TestEncryptIsNondeterministic(t *testing.T) {
	t.Parallel()

	a, err := Encrypt(testKey(), "same input")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	b, err := Encrypt(testKey(), "same input")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if a == b {
		t.Fatal("two encryptions of the same input produced the same blob")
	}
}

func TestDecryptRejectsTamperedBlob(t *testing.T) {
	t.Parallel()

	blob, err := Encrypt(testKey(), "sensitive")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		t.Fatalf("decode blob: %v", err)
	}
	raw[len(raw)-1] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(raw)

	if _, err := Decrypt(testKey(), tampered); err == nil {
		t.Fatal("expected error for tampered ciphertext")
	}
}

func TestDecryptWrongKey(t *testing.T) {
	t.Parallel()

	blob, err := Encrypt(testKey(), "sensitive")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if _, err := Decrypt(bytes.Repeat([]byte("x"), 32), blob); err == nil {
		t.Fatal("expected error for wrong key")
	}
}
