package grader

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Check is one scored step. Checks run in order and share a *checkState —
// later checks build on IDs and tokens that earlier ones created, just
// like a real client session.
//
// A failed check scores zero and the run CONTINUES: partial credit, and
// a student sees every broken endpoint in one run instead of one per
// submission.
type Check struct {
	Name   string
	Points float64
	Fn     func(ctx context.Context, c *Client, st *checkState) error
}

// checkState is the data threaded through the check sequence.
type checkState struct {
	authorID   string
	bookID     string
	token      string
	shelfBooks []string
	artifactID string
	childID    string
}

// identified is the subset of response fields the checks care about.
// Decoding into a small struct instead of the full model keeps the
// checks honest — they assert on the wire contract, not on internals.
type identified struct {
	ID string `json:"id"`
}

// expectStatus is the workhorse assertion.
func expectStatus(resp *Response, want int, context string) error {
	if resp.Status != want {
		return fmt.Errorf("%s: got status %d, want %d (body: %s)",
			context, resp.Status, want, truncate(resp.Body, 200))
	}
	return nil
}

// DefaultChecks is the full grading sequence: catalog CRUD, the
// by-author filter, reset, the auth flow, the shelf, and the artifact
// tree. Point weights follow the original rubric — CRUD basics carry
// the bulk, auth and tree semantics the rest.
func DefaultChecks() []Check {
	return []Check{
		{
			Name:   "create author",
			Points: 10,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodPost, "/api/authors", nil, map[string]any{
					"name":  "Grace Hopper",
					"email": "grace@example.com",
				})
				if err != nil {
					return err
				}
				if err := expectStatus(resp, http.StatusCreated, "POST /api/authors"); err != nil {
					return err
				}
				var author identified
				if err := resp.Decode(&author); err != nil {
					return err
				}
				if author.ID == "" {
					return fmt.Errorf("created author has no id")
				}
				st.authorID = author.ID
				return nil
			},
		},
		{
			Name:   "reject author without email",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodPost, "/api/authors", nil, map[string]any{
					"name": "No Email",
				})
				if err != nil {
					return err
				}
				return expectStatus(resp, http.StatusBadRequest, "POST /api/authors (missing email)")
			},
		},
		{
			Name:   "get author by id",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				if st.authorID == "" {
					return fmt.Errorf("no author to fetch (create author failed)")
				}
				resp, err := c.Do(ctx, http.MethodGet, "/api/authors/"+st.authorID, nil, nil)
				if err != nil {
					return err
				}
				return expectStatus(resp, http.StatusOK, "GET /api/authors/{id}")
			},
		},
		{
			Name:   "missing author is 404",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodGet, "/api/authors/"+uuid.NewString(), nil, nil)
				if err != nil {
					return err
				}
				return expectStatus(resp, http.StatusNotFound, "GET /api/authors/{unknown}")
			},
		},
		{
			Name:   "create book",
			Points: 10,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				if st.authorID == "" {
					return fmt.Errorf("no author to attach the book to")
				}
				resp, err := c.Do(ctx, http.MethodPost, "/api/books", nil, map[string]any{
					"title":    "Compilers and How to Trust Them",
					"year":     1959,
					"authorId": st.authorID,
				})
				if err != nil {
					return err
				}
				if err := expectStatus(resp, http.StatusCreated, "POST /api/books"); err != nil {
					return err
				}
				var book identified
				if err := resp.Decode(&book); err != nil {
					return err
				}
				st.bookID = book.ID
				return nil
			},
		},
		{
			Name:   "reject book with bad year",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodPost, "/api/books", nil, map[string]any{
					"title":    "Too Old",
					"year":     999,
					"authorId": st.authorID,
				})
				if err != nil {
					return err
				}
				return expectStatus(resp, http.StatusBadRequest, "POST /api/books (year 999)")
			},
		},
		{
			Name:   "reject book for unknown author",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodPost, "/api/books", nil, map[string]any{
					"title":    "Orphan",
					"year":     2000,
					"authorId": uuid.NewString(),
				})
				if err != nil {
					return err
				}
				return expectStatus(resp, http.StatusNotFound, "POST /api/books (unknown author)")
			},
		},
		{
			Name:   "update book",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				if st.bookID == "" {
					return fmt.Errorf("no book to update")
				}
				resp, err := c.Do(ctx, http.MethodPatch, "/api/books/"+st.bookID, nil, map[string]any{
					"year": 1960,
				})
				if err != nil {
					return err
				}
				return expectStatus(resp, http.StatusOK, "PATCH /api/books/{id}")
			},
		},
		{
			Name:   "list books by author",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodGet, "/api/books/by-author/"+st.authorID, nil, nil)
				if err != nil {
					return err
				}
				if err := expectStatus(resp, http.StatusOK, "GET /api/books/by-author/{id}"); err != nil {
					return err
				}
				var books []identified
				if err := resp.Decode(&books); err != nil {
					return err
				}
				if len(books) != 1 {
					return fmt.Errorf("expected 1 book for author, got %d", len(books))
				}
				return nil
			},
		},
		{
			Name:   "author with books cannot be deleted",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodDelete, "/api/authors/"+st.authorID, nil, nil)
				if err != nil {
					return err
				}
				return expectStatus(resp, http.StatusConflict, "DELETE /api/authors/{id} with books")
			},
		},
		{
			Name:   "register user",
			Points: 10,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodPost, "/api/auth/register", nil, map[string]any{
					"name":     "Student",
					"email":    "student@example.com",
					"password": "correct-horse-battery",
				})
				if err != nil {
					return err
				}
				if err := expectStatus(resp, http.StatusCreated, "POST /api/auth/register"); err != nil {
					return err
				}
				var tok struct {
					AccessToken string `json:"access_token"`
				}
				if err := resp.Decode(&tok); err != nil {
					return err
				}
				if tok.AccessToken == "" {
					return fmt.Errorf("register response carries no access_token")
				}
				st.token = tok.AccessToken
				return nil
			},
		},
		{
			Name:   "duplicate registration is 409",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodPost, "/api/auth/register", nil, map[string]any{
					"name":     "Student Again",
					"email":    "student@example.com",
					"password": "another-password",
				})
				if err != nil {
					return err
				}
				return expectStatus(resp, http.StatusConflict, "POST /api/auth/register (duplicate)")
			},
		},
		{
			Name:   "login with wrong password is 401",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodPost, "/api/auth/login", nil, map[string]any{
					"email":    "student@example.com",
					"password": "wrong-password",
				})
				if err != nil {
					return err
				}
				return expectStatus(resp, http.StatusUnauthorized, "POST /api/auth/login (wrong password)")
			},
		},
		{
			Name:   "me requires auth",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodGet, "/api/me", nil, nil)
				if err != nil {
					return err
				}
				return expectStatus(resp, http.StatusUnauthorized, "GET /api/me (no token)")
			},
		},
		{
			Name:   "me with bearer token",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				if st.token == "" {
					return fmt.Errorf("no token (register failed)")
				}
				resp, err := c.Do(ctx, http.MethodGet, "/api/me", bearer(st.token), nil)
				if err != nil {
					return err
				}
				if err := expectStatus(resp, http.StatusOK, "GET /api/me"); err != nil {
					return err
				}
				var me struct {
					Email        string `json:"email"`
					PasswordHash string `json:"passwordHash"`
				}
				if err := resp.Decode(&me); err != nil {
					return err
				}
				if me.Email != "student@example.com" {
					return fmt.Errorf("me returned wrong email %q", me.Email)
				}
				if me.PasswordHash != "" {
					return fmt.Errorf("me response leaks the password hash")
				}
				return nil
			},
		},
		{
			Name:   "shelf add and list",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodPost, "/api/shelf", bearer(st.token), map[string]any{
					"title":    "My Own Copy",
					"year":     2001,
					"authorId": st.authorID,
				})
				if err != nil {
					return err
				}
				if err := expectStatus(resp, http.StatusCreated, "POST /api/shelf"); err != nil {
					return err
				}

				resp, err = c.Do(ctx, http.MethodGet, "/api/shelf", bearer(st.token), nil)
				if err != nil {
					return err
				}
				if err := expectStatus(resp, http.StatusOK, "GET /api/shelf"); err != nil {
					return err
				}
				var shelf []identified
				if err := resp.Decode(&shelf); err != nil {
					return err
				}
				if len(shelf) != 1 {
					return fmt.Errorf("expected 1 shelf book, got %d", len(shelf))
				}
				st.shelfBooks = []string{shelf[0].ID}
				return nil
			},
		},
		{
			Name:   "removing a foreign book is 403",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				if st.bookID == "" {
					return fmt.Errorf("no catalog book to poke at")
				}
				// The catalog book has no owner, so it cannot be removed
				// through the shelf route by anyone.
				resp, err := c.Do(ctx, http.MethodDelete, "/api/shelf/"+st.bookID, bearer(st.token), nil)
				if err != nil {
					return err
				}
				return expectStatus(resp, http.StatusForbidden, "DELETE /api/shelf/{foreign id}")
			},
		},
		{
			Name:   "artifact tree create and children",
			Points: 10,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodPost, "/api/artifacts", bearer(st.token), map[string]any{
					"name":     "base camp",
					"location": map[string]any{"lat": 46.8, "lon": 9.8},
				})
				if err != nil {
					return err
				}
				if err := expectStatus(resp, http.StatusCreated, "POST /api/artifacts (root)"); err != nil {
					return err
				}
				var root identified
				if err := resp.Decode(&root); err != nil {
					return err
				}
				st.artifactID = root.ID

				resp, err = c.Do(ctx, http.MethodPost, "/api/artifacts", bearer(st.token), map[string]any{
					"name":     "summit",
					"location": map[string]any{"lat": 46.9, "lon": 9.9},
					"parentId": root.ID,
				})
				if err != nil {
					return err
				}
				if err := expectStatus(resp, http.StatusCreated, "POST /api/artifacts (child)"); err != nil {
					return err
				}
				var child identified
				if err := resp.Decode(&child); err != nil {
					return err
				}
				st.childID = child.ID

				resp, err = c.Do(ctx, http.MethodGet, "/api/artifacts/"+root.ID+"/children", nil, nil)
				if err != nil {
					return err
				}
				if err := expectStatus(resp, http.StatusOK, "GET /api/artifacts/{id}/children"); err != nil {
					return err
				}
				var children struct {
					Children []string `json:"children"`
				}
				if err := resp.Decode(&children); err != nil {
					return err
				}
				if len(children.Children) != 1 || children.Children[0] != child.ID {
					return fmt.Errorf("expected children [%s], got %v", child.ID, children.Children)
				}
				return nil
			},
		},
		{
			Name:   "artifact with out-of-range latitude is 400",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodPost, "/api/artifacts", bearer(st.token), map[string]any{
					"name":     "nowhere",
					"location": map[string]any{"lat": 91.0, "lon": 0.0},
				})
				if err != nil {
					return err
				}
				return expectStatus(resp, http.StatusBadRequest, "POST /api/artifacts (lat 91)")
			},
		},
		{
			Name:   "reset reports deletion counts",
			Points: 5,
			Fn: func(ctx context.Context, c *Client, st *checkState) error {
				resp, err := c.Do(ctx, http.MethodDelete, "/api/reset", nil, nil)
				if err != nil {
					return err
				}
				if err := expectStatus(resp, http.StatusOK, "DELETE /api/reset"); err != nil {
					return err
				}
				var result struct {
					Total int64 `json:"total_deleted"`
				}
				if err := resp.Decode(&result); err != nil {
					return err
				}
				// 1 author + 2 books (catalog + shelf) + 2 artifacts.
				if result.Total < 5 {
					return fmt.Errorf("expected at least 5 deletions, got %d", result.Total)
				}

				// Users must survive a reset — the token still works.
				resp, err = c.Do(ctx, http.MethodGet, "/api/me", bearer(st.token), nil)
				if err != nil {
					return err
				}
				return expectStatus(resp, http.StatusOK, "GET /api/me after reset")
			},
		},
	}
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
