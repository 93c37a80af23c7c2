package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/model"
)

func TestCreateUser_RoundTrip(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{Name: "New User", Email: "new@example.com", PasswordHash: "$2a$fake"}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.ID == "" {
		t.Error("CreateUser() did not set user.ID")
	}

	found, err := db.GetUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if found.Email != "new@example.com" {
		t.Errorf("Email = %q, want %q", found.Email, "new@example.com")
	}
	// The hash must round-trip — login verifies against it.
	if found.PasswordHash != "$2a$fake" {
		t.Errorf("PasswordHash = %q, want %q", found.PasswordHash, "$2a$fake")
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "dup@example.com")

	err := db.CreateUser(context.Background(), &model.User{
		Name: "Second", Email: "dup@example.com", PasswordHash: "x",
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "find@example.com")

	found, err := db.GetUserByEmail(context.Background(), "find@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("ID = %q, want %q", found.ID, user.ID)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
