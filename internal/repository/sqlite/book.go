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

var _ repository.BookRepository = (*DB)(nil)

const bookColumns = `id, title, year, author_id, owner_id, created_at, updated_at`

// scanBook reads one book row. Shared by every SELECT in this file so the
// column order lives in exactly one place next to bookColumns.
func scanBook(scan func(dest ...any) error) (*model.Book, error) {
	var b model.Book
	err := scan(
		&b.ID, &b.Title, &b.Year, &b.AuthorID, &b.OwnerID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBook inserts a new book.
//
// The author_id foreign key is enforced by SQLite (PRAGMA foreign_keys=ON
// at connection time). A book pointing at a nonexistent author fails the
// constraint, which we report as NotFound — the same answer the caller
// would get from looking the author up directly. The service layer also
// pre-checks for a friendlier error message; this is the backstop.
func (db *DB) CreateBook(ctx context.Context, book *model.Book) error {
	book.ID = xid.New().String()

	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO books (id, title, year, author_id, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		book.ID,
		book.Title,
		book.Year,
		book.AuthorID,
		book.OwnerID,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NotFound("author", book.AuthorID)
		}
		return fmt.Errorf("sqlite: creating book: %w", err)
	}

	return nil
}

func (db *DB) GetBookByID(ctx context.Context, id string) (*model.Book, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	book, err := scanBook(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("book", id)
		}
		return nil, fmt.Errorf("sqlite: getting book %s: %w", id, err)
	}

	return book, nil
}

// ListBooks retrieves books with pagination, newest first.
func (db *DB) ListBooks(ctx context.Context, opts repository.ListOptions) ([]model.Book, error) {
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
		`SELECT `+bookColumns+` FROM books
		 ORDER BY created_at DESC
		 LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing books: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows, limit)
}

// ListBooksByAuthor returns every book whose author_id matches.
// No pagination — the by-author view is a complete answer by contract.
func (db *DB) ListBooksByAuthor(ctx context.Context, authorID string) ([]model.Book, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books
		 WHERE author_id = ?
		 ORDER BY created_at DESC`,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing books by author %s: %w", authorID, err)
	}
	defer rows.Close()

	return collectBooks(rows, 0)
}

// ListBooksByOwner returns every book on the given user's shelf.
func (db *DB) ListBooksByOwner(ctx context.Context, ownerID string) ([]model.Book, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books
		 WHERE owner_id = ?
		 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing books by owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	return collectBooks(rows, 0)
}

func collectBooks(rows *sql.Rows, capHint int) ([]model.Book, error) {
	books := make([]model.Book, 0, capHint)
	for rows.Next() {
		b, err := scanBook(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning book row: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating books: %w", err)
	}
	return books, nil
}

// UpdateBook writes back title/year/author_id and bumps updated_at.
// A re-pointed author_id goes through the same FK check as CreateBook.
func (db *DB) UpdateBook(ctx context.Context, book *model.Book) error {
	book.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE books SET title = ?, year = ?, author_id = ?, updated_at = ?
		 WHERE id = ?`,
		book.Title,
		book.Year,
		book.AuthorID,
		book.UpdatedAt,
		book.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NotFound("author", book.AuthorID)
		}
		return fmt.Errorf("sqlite: updating book %s: %w", book.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("book", book.ID)
	}

	return nil
}

func (db *DB) DeleteBook(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting book %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("book", id)
	}

	return nil
}
