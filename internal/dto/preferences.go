package dto

// Preferences is the per-session settings blob used by the cookie-session
// demo routes. Stored in the in-memory session store, not the database —
// it exists to teach cookie identification, so it deliberately does not
// survive a server restart.
type Preferences struct {
	Theme         string `json:"theme"         validate:"omitempty,max=50"`
	Notifications bool   `json:"notifications"`
}

// SessionLoginRequest is the body of POST /api/session/login.
type SessionLoginRequest struct {
	Username string `json:"username" validate:"required,max=200"`
}
