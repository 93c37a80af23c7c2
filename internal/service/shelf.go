// Package service — per-user book shelves.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/dto"
	"github.com/sakif/course-api/internal/model"
	"github.com/sakif/course-api/internal/repository"
)

// ShelfService handles user-owned books. Shelf books live in the same
// books table as catalog books but carry a non-nil owner_id; every shelf
// operation is scoped to the authenticated user.
type ShelfService struct {
	books   repository.BookRepository
	authors repository.AuthorRepository
	logger  *slog.Logger
}

// NewShelfService creates a ShelfService.
func NewShelfService(
	books repository.BookRepository,
	authors repository.AuthorRepository,
	logger *slog.Logger,
) *ShelfService {
	return &ShelfService{
		books:   books,
		authors: authors,
		logger:  logger,
	}
}

// ListMine returns every book on the given user's shelf.
func (s *ShelfService) ListMine(ctx context.Context, ownerID string) ([]model.Book, error) {
	if ownerID == "" {
		return nil, apperror.Unauthorized("valid authentication required")
	}

	books, err := s.books.ListBooksByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing shelf: %w", err)
	}
	return books, nil
}

// Add puts a new book on the user's shelf. Same author-existence rule as
// the catalog — a shelf book still references a real author.
func (s *ShelfService) Add(ctx context.Context, ownerID string, req dto.ShelfBookCreate) (*model.Book, error) {
	if ownerID == "" {
		return nil, apperror.Unauthorized("valid authentication required")
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.authors.GetAuthorByID(ctx, req.AuthorID); err != nil {
		return nil, err
	}

	book := &model.Book{
		Title:    strings.TrimSpace(req.Title),
		Year:     req.Year,
		AuthorID: req.AuthorID,
		OwnerID:  &ownerID,
	}

	if err := s.books.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("adding shelf book: %w", err)
	}

	s.logger.Info("shelf book added",
		slog.String("id", book.ID),
		slog.String("ownerID", ownerID),
	)

	return book, nil
}

// Remove deletes a book from the user's shelf.
//
// OWNERSHIP CHECK:
// A book belongs to exactly one user. Removing a book you don't own is
// Forbidden (403) — not NotFound — because the resource exists and the
// failure is a permission problem. An unowned catalog book is equally off
// limits through this route.
func (s *ShelfService) Remove(ctx context.Context, ownerID, bookID string) error {
	if ownerID == "" {
		return apperror.Unauthorized("valid authentication required")
	}
	bookID = strings.TrimSpace(bookID)
	if bookID == "" {
		return apperror.ValidationFailed("id", "book ID is required")
	}

	book, err := s.books.GetBookByID(ctx, bookID)
	if err != nil {
		return err
	}

	if book.OwnerID == nil || *book.OwnerID != ownerID {
		return apperror.Forbidden("book belongs to another user")
	}

	if err := s.books.DeleteBook(ctx, bookID); err != nil {
		return err
	}

	s.logger.Info("shelf book removed",
		slog.String("id", bookID),
		slog.String("ownerID", ownerID),
	)
	return nil
}
