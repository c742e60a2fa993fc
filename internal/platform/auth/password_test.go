package auth

import "testing"

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword("s3cret-pass", hash) {
		t.Error("expected correct password to verify")
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, _ := HashPassword("s3cret-pass")
	if VerifyPassword("wrong-pass", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, _ := HashPassword("same-input")
	b, _ := HashPassword("same-input")
	if a == b {
		t.Error("expected two hashes of the same input to differ")
	}
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	if VerifyPassword("anything", "not-a-bcrypt-hash") {
		t.Error("expected invalid hash to fail verification")
	}
}
