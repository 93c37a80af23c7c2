package model

import "time"

// Book represents a catalog book.
//
// AuthorID is a foreign key into the authors table — creating or re-pointing
// a book to a nonexistent author is rejected with NotFound before the row is
// written.
//
// WHY OwnerID *string (a pointer)?
// Catalog books have no owner — the column is NULL. Shelf books (created via
// the authenticated /api/shelf routes) belong to exactly one user. A pointer
// lets us distinguish "no owner" (nil) from "owned by user X" without a
// sentinel value, and database/sql scans NULL into a nil pointer naturally.
// The json tag uses omitempty so catalog responses don't carry a null field.
type Book struct {
	ID        string    `json:"id"                db:"id"`
	Title     string    `json:"title"             db:"title"`
	Year      int       `json:"year"              db:"year"`
	AuthorID  string    `json:"authorId"          db:"author_id"`
	OwnerID   *string   `json:"ownerId,omitempty" db:"owner_id"`
	CreatedAt time.Time `json:"createdAt"         db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt"         db:"updated_at"`
}

// Year bounds for books. The catalog refuses years outside this range —
// same bounds the registration form and the PATCH route enforce.
const (
	MinBookYear = 1000
	MaxBookYear = 2100
)
