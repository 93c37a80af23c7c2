package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/dto"
	"github.com/sakif/course-api/internal/model"
)

func newTestShelf(t *testing.T) (*ShelfService, *mockAuthorRepo, *mockBookRepo) {
	t.Helper()
	authors := newMockAuthorRepo()
	books := newMockBookRepo()
	svc := NewShelfService(books, authors, testLogger())
	return svc, authors, books
}

func shelfTestAuthor(t *testing.T, authors *mockAuthorRepo) string {
	t.Helper()
	author := &model.Author{Name: "Shelf Author", Email: "shelf@example.com"}
	if err := authors.CreateAuthor(context.Background(), author); err != nil {
		t.Fatalf("setup: CreateAuthor() error = %v", err)
	}
	return author.ID
}

func TestShelfAdd_SetsOwner(t *testing.T) {
	svc, authors, _ := newTestShelf(t)
	authorID := shelfTestAuthor(t, authors)

	book, err := svc.Add(context.Background(), "user-1", dto.ShelfBookCreate{
		Title:    "Mine",
		Year:     2020,
		AuthorID: authorID,
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if book.OwnerID == nil || *book.OwnerID != "user-1" {
		t.Errorf("OwnerID = %v, want user-1", book.OwnerID)
	}
}

func TestShelfAdd_NoUser(t *testing.T) {
	svc, authors, _ := newTestShelf(t)
	authorID := shelfTestAuthor(t, authors)

	_, err := svc.Add(context.Background(), "", dto.ShelfBookCreate{
		Title:    "Nobody's",
		Year:     2020,
		AuthorID: authorID,
	})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestShelfAdd_UnknownAuthor(t *testing.T) {
	svc, _, _ := newTestShelf(t)

	_, err := svc.Add(context.Background(), "user-1", dto.ShelfBookCreate{
		Title:    "Orphan",
		Year:     2020,
		AuthorID: "nonexistent",
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestShelfList_OnlyOwnBooks(t *testing.T) {
	svc, authors, _ := newTestShelf(t)
	authorID := shelfTestAuthor(t, authors)

	svc.Add(context.Background(), "user-1", dto.ShelfBookCreate{Title: "Mine", Year: 2020, AuthorID: authorID})
	svc.Add(context.Background(), "user-2", dto.ShelfBookCreate{Title: "Theirs", Year: 2021, AuthorID: authorID})

	books, err := svc.ListMine(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}

	if len(books) != 1 {
		t.Fatalf("got %d books, want 1", len(books))
	}
	if books[0].Title != "Mine" {
		t.Errorf("Title = %q, want %q", books[0].Title, "Mine")
	}
}

func TestShelfRemove_Own(t *testing.T) {
	svc, authors, _ := newTestShelf(t)
	authorID := shelfTestAuthor(t, authors)

	book, _ := svc.Add(context.Background(), "user-1", dto.ShelfBookCreate{
		Title: "Gone Soon", Year: 2020, AuthorID: authorID,
	})

	if err := svc.Remove(context.Background(), "user-1", book.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	books, _ := svc.ListMine(context.Background(), "user-1")
	if len(books) != 0 {
		t.Errorf("shelf still has %d books after remove", len(books))
	}
}

// TestShelfRemove_ForeignBook — removing another user's book is
// Forbidden, not NotFound: the resource exists, the permission doesn't.
func TestShelfRemove_ForeignBook(t *testing.T) {
	svc, authors, _ := newTestShelf(t)
	authorID := shelfTestAuthor(t, authors)

	book, _ := svc.Add(context.Background(), "user-1", dto.ShelfBookCreate{
		Title: "Not Yours", Year: 2020, AuthorID: authorID,
	})

	err := svc.Remove(context.Background(), "user-2", book.ID)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

func TestShelfRemove_UnownedCatalogBook(t *testing.T) {
	svc, authors, books := newTestShelf(t)
	authorID := shelfTestAuthor(t, authors)

	// A catalog book: no owner at all.
	catalogBook := &model.Book{Title: "Public", Year: 2000, AuthorID: authorID}
	if err := books.CreateBook(context.Background(), catalogBook); err != nil {
		t.Fatalf("setup: CreateBook() error = %v", err)
	}

	err := svc.Remove(context.Background(), "user-1", catalogBook.ID)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

func TestShelfRemove_MissingBook(t *testing.T) {
	svc, _, _ := newTestShelf(t)

	err := svc.Remove(context.Background(), "user-1", "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
