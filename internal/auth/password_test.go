package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/course-api/internal/apperror"
)

// All password tests use bcrypt.MinCost — the logic under test is
// identical at any cost, and cost 12 would make this file take seconds.
func newTestPasswords() *PasswordService {
	return NewPasswordServiceForTest(bcrypt.MinCost)
}

func TestHashAndVerify(t *testing.T) {
	svc := newTestPasswords()

	hash, err := svc.Hash("correct-horse-battery")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct-horse-battery" {
		t.Fatal("Hash() returned the plaintext")
	}

	if err := svc.Verify(hash, "correct-horse-battery"); err != nil {
		t.Errorf("Verify() with correct password error = %v", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	svc := newTestPasswords()

	hash, _ := svc.Hash("the-right-one")

	err := svc.Verify(hash, "the-wrong-one")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestHash_SaltsDiffer(t *testing.T) {
	svc := newTestPasswords()

	a, _ := svc.Hash("same-password")
	b, _ := svc.Hash("same-password")

	// Same plaintext, different salts, different hashes.
	if a == b {
		t.Error("two hashes of the same password are identical — salt is missing")
	}
}

func TestHash_RejectsOver72Bytes(t *testing.T) {
	svc := newTestPasswords()

	_, err := svc.Hash(strings.Repeat("a", 73))
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation (bcrypt truncates silently past 72 bytes)", err)
	}
}
