package dto

// RegisterRequest is the body of POST /api/auth/register.
//
// The 72-character ceiling matches bcrypt's input limit — passwords longer
// than that would be silently truncated by the hash, so we refuse them at
// the schema boundary instead.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=200"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by login and register.
//
// The field names follow the OAuth2 bearer-token convention
// (access_token / token_type) so generic API clients recognise the shape.
// TokenType is always "bearer".
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ShelfBookCreate is the body of POST /api/shelf — a book added to the
// authenticated user's shelf.
type ShelfBookCreate struct {
	Title    string `json:"title"    validate:"required,max=300"`
	Year     int    `json:"year"     validate:"required,gte=1000,lte=2100"`
	AuthorID string `json:"authorId" validate:"required"`
}
