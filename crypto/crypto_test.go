package crypto

import (
	"bytes"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt: %v", err)
	}
	key, err := DeriveKey("correct horse", salt)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}

	plaintext := []byte(`{"session_cookie":"abc"}`)
	sealed, err := Seal(key, plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Contains(sealed, plaintext) {
		t.Fatal("sealed output contains plaintext")
	}

	opened, err := Open(key, sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("round trip = %q, want %q", opened, plaintext)
	}
}

func TestOpenWrongKeyFails(t *testing.T) {
	salt, _ := NewSalt()
	key, _ := DeriveKey("passphrase one", salt)
	other, _ := DeriveKey("passphrase two", salt)

	sealed, err := Seal(key, []byte("secret"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if _, err := Open(other, sealed); err == nil {
		t.Error("decrypting with the wrong key should fail")
	}
}

func TestOpenTruncatedCiphertext(t *testing.T) {
	salt, _ := NewSalt()
	key, _ := DeriveKey("passphrase", salt)

	if _, err := Open(key, []byte("short")); err == nil {
		t.Error("truncated ciphertext should fail, not panic")
	}
}
