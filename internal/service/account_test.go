package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/auth"
	"github.com/sakif/course-api/internal/dto"
)

// newTestAccounts builds an AccountService over mocks. bcrypt.MinCost
// keeps each hash at microseconds instead of the production ~250ms.
func newTestAccounts(t *testing.T) (*AccountService, *mockUserRepo) {
	t.Helper()
	users := newMockUserRepo()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars")
	if err != nil {
		t.Fatalf("setup: NewTokenService() error = %v", err)
	}
	passwords := auth.NewPasswordServiceForTest(bcrypt.MinCost)
	return NewAccountService(users, tokens, passwords, testLogger()), users
}

func registerTestUser(t *testing.T, svc *AccountService, email string) *AuthResult {
	t.Helper()
	result, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "a-fine-password",
	})
	if err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}
	return result
}

func TestRegister_Success(t *testing.T) {
	svc, _ := newTestAccounts(t)

	result := registerTestUser(t, svc, "new@example.com")

	if result.User.ID == "" {
		t.Error("expected registered user to have an ID")
	}
	if result.Token == "" {
		t.Error("expected registration to issue a token")
	}
	if result.User.PasswordHash == "a-fine-password" {
		t.Error("password stored in plain text")
	}
}

func TestRegister_NormalisesEmail(t *testing.T) {
	svc, _ := newTestAccounts(t)

	result := registerTestUser(t, svc, "  MiXeD@Example.COM  ")

	if result.User.Email != "mixed@example.com" {
		t.Errorf("Email = %q, want lowercased/trimmed %q", result.User.Email, "mixed@example.com")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAccounts(t)
	registerTestUser(t, svc, "dup@example.com")

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Second",
		Email:    "dup@example.com",
		Password: "another-password",
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, _ := newTestAccounts(t)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Shorty",
		Email:    "short@example.com",
		Password: "seven77",
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestAccounts(t)
	registerTestUser(t, svc, "login@example.com")

	result, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "login@example.com",
		Password: "a-fine-password",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token == "" {
		t.Error("expected login to issue a token")
	}
}

func TestLogin_CaseInsensitiveEmail(t *testing.T) {
	svc, _ := newTestAccounts(t)
	registerTestUser(t, svc, "case@example.com")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "CASE@example.com",
		Password: "a-fine-password",
	})
	if err != nil {
		t.Fatalf("Login() with different email case error = %v", err)
	}
}

// TestLogin_UniformFailureMessage — an unknown email and a wrong
// password must be indistinguishable, or login becomes an oracle for
// which addresses hold accounts.
func TestLogin_UniformFailureMessage(t *testing.T) {
	svc, _ := newTestAccounts(t)
	registerTestUser(t, svc, "probe@example.com")

	_, errUnknown := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-pass",
	})
	_, errWrongPass := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "probe@example.com",
		Password: "wrong-password",
	})

	if !errors.Is(errUnknown, apperror.ErrUnauthorized) {
		t.Errorf("unknown email: error = %v, want ErrUnauthorized", errUnknown)
	}
	if !errors.Is(errWrongPass, apperror.ErrUnauthorized) {
		t.Errorf("wrong password: error = %v, want ErrUnauthorized", errWrongPass)
	}

	var appUnknown, appWrong *apperror.AppError
	if errors.As(errUnknown, &appUnknown) && errors.As(errWrongPass, &appWrong) {
		if appUnknown.Message != appWrong.Message {
			t.Errorf("failure messages differ: %q vs %q", appUnknown.Message, appWrong.Message)
		}
	}
}

func TestGetUserByID_NotFound(t *testing.T) {
	svc, _ := newTestAccounts(t)

	_, err := svc.GetUserByID(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
