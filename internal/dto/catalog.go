package dto

// AuthorCreate is the body of POST /api/authors.
type AuthorCreate struct {
	Name  string `json:"name"  validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
}

// AuthorUpdate is the body of PATCH /api/authors/{id}.
//
// PARTIAL-UPDATE SEMANTICS WITH POINTERS:
// Every field is a pointer so we can tell "field absent" (nil — keep the
// stored value) apart from "field present but empty" (non-nil zero value —
// rejected by validation where it matters). encoding/json leaves a pointer
// nil when the key is missing from the body, which is exactly the
// distinction a partial update needs.
type AuthorUpdate struct {
	Name  *string `json:"name"  validate:"omitempty,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// BookCreate is the body of POST /api/books.
type BookCreate struct {
	Title    string `json:"title"    validate:"required,max=300"`
	Year     int    `json:"year"     validate:"required,gte=1000,lte=2100"`
	AuthorID string `json:"authorId" validate:"required"`
}

// BookUpdate is the body of PATCH /api/books/{id}. Same pointer convention
// as AuthorUpdate.
type BookUpdate struct {
	Title    *string `json:"title"    validate:"omitempty,max=300"`
	Year     *int    `json:"year"     validate:"omitempty,gte=1000,lte=2100"`
	AuthorID *string `json:"authorId" validate:"omitempty"`
}

// ResetResult is the body of DELETE /api/reset — how many rows each table
// lost, plus the grand total.
type ResetResult struct {
	BooksDeleted     int64 `json:"books_deleted"`
	AuthorsDeleted   int64 `json:"authors_deleted"`
	ArtifactsDeleted int64 `json:"artifacts_deleted"`
	TotalDeleted     int64 `json:"total_deleted"`
}
