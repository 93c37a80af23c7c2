// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Handlers only know HTTP. Services only know business rules. Neither
// knows SQL. Each service takes repository INTERFACES, not the concrete
// sqlite type — tests inject in-memory mocks, and swapping the storage
// backend is a one-line change in server wiring.
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

// CatalogService handles business logic for the author/book catalog.
type CatalogService struct {
	authors repository.AuthorRepository
	books   repository.BookRepository
	reset   repository.Resetter
	logger  *slog.Logger
}

// NewCatalogService creates a CatalogService. The caller decides which
// repository implementation to inject (SQLite, or mocks in tests).
func NewCatalogService(
	authors repository.AuthorRepository,
	books repository.BookRepository,
	reset repository.Resetter,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		authors: authors,
		books:   books,
		reset:   reset,
		logger:  logger,
	}
}

// CreateAuthor validates and saves a new author.
// Email uniqueness is enforced by the repository (Conflict on duplicate).
func (s *CatalogService) CreateAuthor(ctx context.Context, req dto.AuthorCreate) (*model.Author, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	author := &model.Author{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	}

	if err := s.authors.CreateAuthor(ctx, author); err != nil {
		return nil, fmt.Errorf("creating author: %w", err)
	}

	s.logger.Info("author created",
		slog.String("id", author.ID),
		slog.String("name", author.Name),
	)

	return author, nil
}

// GetAuthor retrieves an author by ID.
func (s *CatalogService) GetAuthor(ctx context.Context, id string) (*model.Author, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "author ID is required")
	}

	return s.authors.GetAuthorByID(ctx, id)
}

// ListAuthors retrieves authors with pagination (limit clamped in the repo).
func (s *CatalogService) ListAuthors(ctx context.Context, limit, offset int) ([]model.Author, error) {
	authors, err := s.authors.ListAuthors(ctx, repository.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("listing authors: %w", err)
	}
	return authors, nil
}

// UpdateAuthor applies a partial update.
//
// PATCH STRATEGY — "fetch then update":
// Fetch the stored record (NotFound surfaces here), overwrite only the
// fields the request carried (non-nil pointers), write the whole record
// back. The caller gets the full updated author.
func (s *CatalogService) UpdateAuthor(ctx context.Context, id string, req dto.AuthorUpdate) (*model.Author, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "author ID is required")
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	author, err := s.authors.GetAuthorByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.ValidationFailed("name", "author name must not be empty")
		}
		author.Name = name
	}
	if req.Email != nil {
		author.Email = strings.TrimSpace(*req.Email)
	}

	if err := s.authors.UpdateAuthor(ctx, author); err != nil {
		return nil, fmt.Errorf("updating author: %w", err)
	}

	s.logger.Info("author updated", slog.String("id", author.ID))

	return author, nil
}

// DeleteAuthor removes an author. Returns Conflict if books still
// reference the author (foreign key RESTRICT in the repository).
func (s *CatalogService) DeleteAuthor(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "author ID is required")
	}

	if err := s.authors.DeleteAuthor(ctx, id); err != nil {
		return err
	}

	s.logger.Info("author deleted", slog.String("id", id))
	return nil
}

// CreateBook validates and saves a new catalog book.
//
// The author must exist — we check explicitly (not just via the foreign
// key) so the caller gets the same "author not found" answer whether the
// author never existed or was deleted a moment ago.
func (s *CatalogService) CreateBook(ctx context.Context, req dto.BookCreate) (*model.Book, error) {
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
	}

	if err := s.books.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("creating book: %w", err)
	}

	s.logger.Info("book created",
		slog.String("id", book.ID),
		slog.String("title", book.Title),
		slog.String("authorID", book.AuthorID),
	)

	return book, nil
}

// GetBook retrieves a book by ID.
func (s *CatalogService) GetBook(ctx context.Context, id string) (*model.Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "book ID is required")
	}

	return s.books.GetBookByID(ctx, id)
}

// ListBooks retrieves books with pagination.
func (s *CatalogService) ListBooks(ctx context.Context, limit, offset int) ([]model.Book, error) {
	books, err := s.books.ListBooks(ctx, repository.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	return books, nil
}

// ListBooksByAuthor returns every book by the given author. The author
// itself need not exist — an unknown author simply has no books, matching
// the original contract (200 with an empty list, not 404).
func (s *CatalogService) ListBooksByAuthor(ctx context.Context, authorID string) ([]model.Book, error) {
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return nil, apperror.ValidationFailed("authorId", "author ID is required")
	}

	books, err := s.books.ListBooksByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("listing books by author: %w", err)
	}
	return books, nil
}

// UpdateBook applies a partial update. A request that re-points authorId
// re-runs the author existence check.
func (s *CatalogService) UpdateBook(ctx context.Context, id string, req dto.BookUpdate) (*model.Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "book ID is required")
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.books.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperror.ValidationFailed("title", "book title must not be empty")
		}
		book.Title = title
	}
	if req.Year != nil {
		book.Year = *req.Year
	}
	if req.AuthorID != nil {
		if _, err := s.authors.GetAuthorByID(ctx, *req.AuthorID); err != nil {
			return nil, err
		}
		book.AuthorID = *req.AuthorID
	}

	if err := s.books.UpdateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("updating book: %w", err)
	}

	s.logger.Info("book updated", slog.String("id", book.ID))

	return book, nil
}

// DeleteBook removes a book by ID.
func (s *CatalogService) DeleteBook(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "book ID is required")
	}

	if err := s.books.DeleteBook(ctx, id); err != nil {
		return err
	}

	s.logger.Info("book deleted", slog.String("id", id))
	return nil
}

// Reset clears the catalog and artifact tables and reports the counts.
func (s *CatalogService) Reset(ctx context.Context) (dto.ResetResult, error) {
	counts, err := s.reset.ResetAll(ctx)
	if err != nil {
		return dto.ResetResult{}, fmt.Errorf("resetting database: %w", err)
	}

	s.logger.Info("database reset",
		slog.Int64("books", counts.Books),
		slog.Int64("authors", counts.Authors),
		slog.Int64("artifacts", counts.Artifacts),
	)

	return dto.ResetResult{
		BooksDeleted:     counts.Books,
		AuthorsDeleted:   counts.Authors,
		ArtifactsDeleted: counts.Artifacts,
		TotalDeleted:     counts.Books + counts.Authors + counts.Artifacts,
	}, nil
}
