package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/model"
	"github.com/sakif/course-api/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` assigns a nil *Y to a variable of interface type X.
// If *Y doesn't implement X, the compiler errors immediately instead of at
// the distant call site where the assignment actually happens.
var _ repository.AuthorRepository = (*DB)(nil)

// CreateAuthor inserts a new author.
//
// ID GENERATION WITH xid:
// xid generates 20-char, URL-safe, creation-time-sortable IDs
// (e.g. "cv37rs3pp9olc6atsptg"). We generate them here rather than using
// AUTOINCREMENT so IDs are opaque strings the caller never has to parse.
//
// The ? placeholders are parameterized queries — the driver escapes values,
// which is what keeps SQL injection impossible. Never build SQL with
// fmt.Sprintf on user input.
func (db *DB) CreateAuthor(ctx context.Context, author *model.Author) error {
	author.ID = xid.New().String()

	now := time.Now()
	author.CreatedAt = now
	author.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO authors (id, name, email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		author.ID,
		author.Name,
		author.Email,
		author.CreatedAt,
		author.UpdatedAt,
	)
	if err != nil {
		// The email column is UNIQUE — a duplicate address surfaces here as
		// a constraint failure, which we translate to a domain Conflict so
		// the handler can answer 409 rather than 500.
		if isUniqueViolation(err) {
			return apperror.Conflict("author", "email already registered")
		}
		return fmt.Errorf("sqlite: creating author: %w", err)
	}

	return nil
}

// GetAuthorByID retrieves a single author.
//
// sql.ErrNoRows is not really an error — it just means "no matching row".
// We translate it to our app's NotFound error so the handler knows to
// return 404. Translating database errors into domain errors at this
// boundary keeps the layers above SQL-free.
func (db *DB) GetAuthorByID(ctx context.Context, id string) (*model.Author, error) {
	var a model.Author

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, created_at, updated_at
		 FROM authors WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("author", id)
		}
		return nil, fmt.Errorf("sqlite: getting author %s: %w", id, err)
	}

	return &a, nil
}

// ListAuthors retrieves authors with LIMIT/OFFSET pagination, newest first.
func (db *DB) ListAuthors(ctx context.Context, opts repository.ListOptions) ([]model.Author, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, email, created_at, updated_at
		 FROM authors
		 ORDER BY created_at DESC
		 LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing authors: %w", err)
	}
	// sql.Rows holds a pool connection — forgetting Close leaks it.
	defer rows.Close()

	authors := make([]model.Author, 0, limit)
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning author row: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating authors: %w", err)
	}

	return authors, nil
}

// UpdateAuthor writes back name/email and bumps updated_at.
// RowsAffected tells us whether the WHERE clause matched — zero rows means
// the author doesn't exist, one query instead of SELECT-then-UPDATE.
func (db *DB) UpdateAuthor(ctx context.Context, author *model.Author) error {
	author.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE authors SET name = ?, email = ?, updated_at = ? WHERE id = ?`,
		author.Name,
		author.Email,
		author.UpdatedAt,
		author.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("author", "email already registered")
		}
		return fmt.Errorf("sqlite: updating author %s: %w", author.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("author", author.ID)
	}

	return nil
}

// DeleteAuthor removes an author.
//
// books.author_id is ON DELETE RESTRICT: an author who still has books
// cannot be deleted. The FK failure becomes a Conflict — the caller must
// delete or re-point the books first.
func (db *DB) DeleteAuthor(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM authors WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.Conflict("author", "author still has books")
		}
		return fmt.Errorf("sqlite: deleting author %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("author", id)
	}

	return nil
}
