package password_test

import (
	"errors"
	"testing"

	"trailguard/shared/password"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("secret-password")
	if err != nil {
		t.Fatalf("unexpected error hashing: %v", err)
	}

	if hash == "secret-password" {
		t.Error("hash must not equal the plain password")
	}

	if err := password.Verify("secret-password", hash); err != nil {
		t.Errorf("expected matching password to verify, got %v", err)
	}

	if err := password.Verify("wrong-password", hash); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestHashEmptyPassword(t *testing.T) {
	if _, err := password.Hash(""); err == nil {
		t.Error("expected error hashing empty password")
	}
}

func TestVerifyEmptyInputs(t *testing.T) {
	if err := password.Verify("", "some-hash"); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword for empty password, got %v", err)
	}

	if err := password.Verify("some-password", ""); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword for empty hash, got %v", err)
	}
}
