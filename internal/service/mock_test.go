package service

// =========================================================================
// MOCK REPOSITORIES
// =========================================================================
//
// WHAT IS A MOCK?
// A mock is a fake implementation of an interface used in tests.
// Instead of talking to a real database, it stores data in memory.
//
// WHY MOCK?
// 1. SPEED: No database setup, no disk I/O, tests run in microseconds
// 2. ISOLATION: Tests only test the service logic, not the database
// 3. CONTROL: You can simulate errors (database down, duplicate email)
//    that would be hard to trigger with a real database
//
// Each mock implements the corresponding interface from
// internal/repository — the services don't know or care which one they
// get. This is the power of interfaces: swappable implementations.

import (
	"context"
	"fmt"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/model"
	"github.com/sakif/course-api/internal/repository"
)

type mockAuthorRepo struct {
	authors map[string]*model.Author
	nextID  int
}

func newMockAuthorRepo() *mockAuthorRepo {
	return &mockAuthorRepo{authors: make(map[string]*model.Author)}
}

func (m *mockAuthorRepo) CreateAuthor(_ context.Context, author *model.Author) error {
	for _, a := range m.authors {
		if a.Email == author.Email {
			return apperror.Conflict("author", "email already registered")
		}
	}
	m.nextID++
	author.ID = fmt.Sprintf("author-%d", m.nextID)
	// Store a copy (not the pointer) to avoid test interference
	stored := *author
	m.authors[author.ID] = &stored
	return nil
}

func (m *mockAuthorRepo) GetAuthorByID(_ context.Context, id string) (*model.Author, error) {
	author, ok := m.authors[id]
	if !ok {
		return nil, apperror.NotFound("author", id)
	}
	result := *author
	return &result, nil
}

func (m *mockAuthorRepo) ListAuthors(_ context.Context, opts repository.ListOptions) ([]model.Author, error) {
	result := make([]model.Author, 0, len(m.authors))
	for _, a := range m.authors {
		result = append(result, *a)
	}
	if opts.Offset >= len(result) {
		return []model.Author{}, nil
	}
	result = result[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(result) {
		result = result[:opts.Limit]
	}
	return result, nil
}

func (m *mockAuthorRepo) UpdateAuthor(_ context.Context, author *model.Author) error {
	if _, ok := m.authors[author.ID]; !ok {
		return apperror.NotFound("author", author.ID)
	}
	stored := *author
	m.authors[author.ID] = &stored
	return nil
}

func (m *mockAuthorRepo) DeleteAuthor(_ context.Context, id string) error {
	if _, ok := m.authors[id]; !ok {
		return apperror.NotFound("author", id)
	}
	delete(m.authors, id)
	return nil
}

type mockBookRepo struct {
	books  map[string]*model.Book
	nextID int
}

func newMockBookRepo() *mockBookRepo {
	return &mockBookRepo{books: make(map[string]*model.Book)}
}

func (m *mockBookRepo) CreateBook(_ context.Context, book *model.Book) error {
	m.nextID++
	book.ID = fmt.Sprintf("book-%d", m.nextID)
	stored := *book
	m.books[book.ID] = &stored
	return nil
}

func (m *mockBookRepo) GetBookByID(_ context.Context, id string) (*model.Book, error) {
	book, ok := m.books[id]
	if !ok {
		return nil, apperror.NotFound("book", id)
	}
	result := *book
	return &result, nil
}

func (m *mockBookRepo) ListBooks(_ context.Context, opts repository.ListOptions) ([]model.Book, error) {
	result := make([]model.Book, 0, len(m.books))
	for _, b := range m.books {
		result = append(result, *b)
	}
	if opts.Offset >= len(result) {
		return []model.Book{}, nil
	}
	result = result[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(result) {
		result = result[:opts.Limit]
	}
	return result, nil
}

func (m *mockBookRepo) ListBooksByAuthor(_ context.Context, authorID string) ([]model.Book, error) {
	result := []model.Book{}
	for _, b := range m.books {
		if b.AuthorID == authorID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockBookRepo) ListBooksByOwner(_ context.Context, ownerID string) ([]model.Book, error) {
	result := []model.Book{}
	for _, b := range m.books {
		if b.OwnerID != nil && *b.OwnerID == ownerID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockBookRepo) UpdateBook(_ context.Context, book *model.Book) error {
	if _, ok := m.books[book.ID]; !ok {
		return apperror.NotFound("book", book.ID)
	}
	stored := *book
	m.books[book.ID] = &stored
	return nil
}

func (m *mockBookRepo) DeleteBook(_ context.Context, id string) error {
	if _, ok := m.books[id]; !ok {
		return apperror.NotFound("book", id)
	}
	delete(m.books, id)
	return nil
}

type mockUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.Conflict("user", "email already registered")
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

type mockArtifactRepo struct {
	artifacts map[string]*model.Artifact
	nextID    int
}

func newMockArtifactRepo() *mockArtifactRepo {
	return &mockArtifactRepo{artifacts: make(map[string]*model.Artifact)}
}

func (m *mockArtifactRepo) CreateArtifact(_ context.Context, artifact *model.Artifact) error {
	if artifact.ParentID != nil {
		if _, ok := m.artifacts[*artifact.ParentID]; !ok {
			return apperror.NotFound("artifact", *artifact.ParentID)
		}
	}
	m.nextID++
	artifact.ID = fmt.Sprintf("artifact-%d", m.nextID)
	stored := *artifact
	m.artifacts[artifact.ID] = &stored
	return nil
}

func (m *mockArtifactRepo) GetArtifactByID(_ context.Context, id string) (*model.Artifact, error) {
	artifact, ok := m.artifacts[id]
	if !ok {
		return nil, apperror.NotFound("artifact", id)
	}
	result := *artifact
	return &result, nil
}

func (m *mockArtifactRepo) ListArtifactChildren(_ context.Context, id string) ([]string, error) {
	children := []string{}
	for _, a := range m.artifacts {
		if a.ParentID != nil && *a.ParentID == id {
			children = append(children, a.ID)
		}
	}
	return children, nil
}

// mockResetter counts what the mock repos hold and empties them,
// mirroring the SQL implementation's children-before-parents contract.
type mockResetter struct {
	books     *mockBookRepo
	authors   *mockAuthorRepo
	artifacts *mockArtifactRepo
}

func (m *mockResetter) ResetAll(_ context.Context) (repository.ResetCounts, error) {
	counts := repository.ResetCounts{
		Books:     int64(len(m.books.books)),
		Authors:   int64(len(m.authors.authors)),
		Artifacts: int64(len(m.artifacts.artifacts)),
	}
	m.books.books = make(map[string]*model.Book)
	m.authors.authors = make(map[string]*model.Author)
	m.artifacts.artifacts = make(map[string]*model.Artifact)
	return counts, nil
}
