// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Author represents a catalog author.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize
// this struct to/from JSON; the `db:"..."` tags document the column each
// field maps to in the authors table.
//
// Email carries a UNIQUE constraint in the database — two authors can never
// share an address. The repository translates the constraint violation into
// a Conflict error so the API can answer 409 instead of 500.
type Author struct {
	ID        string    `json:"id"        db:"id"`
	Name      string    `json:"name"      db:"name"`
	Email     string    `json:"email"     db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
