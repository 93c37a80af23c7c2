package model

import "time"

// User represents a registered account.
//
// WHY json:"-" ON PasswordHash?
// The bcrypt hash must never leave the server. Tagging the field with "-"
// makes encoding/json skip it entirely, so even a careless
// writeJSON(w, 200, user) cannot leak it. This is the Go equivalent of the
// common "public User vs UserInDB" split — one struct, with the sensitive
// field excluded at the serialization boundary.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Name         string    `json:"name"      db:"name"`
	Email        string    `json:"email"     db:"email"` // UNIQUE — one account per address
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
