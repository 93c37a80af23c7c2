// Package repository declares the storage interfaces the service layer
// depends on. The sqlite subpackage provides the real implementation;
// tests substitute in-memory mocks. Services never import sqlite directly.
package repository

import (
	"context"

	"github.com/sakif/course-api/internal/model"
)

type ListOptions struct {
	Limit  int
	Offset int
}

type AuthorRepository interface {
	CreateAuthor(ctx context.Context, author *model.Author) error
	GetAuthorByID(ctx context.Context, id string) (*model.Author, error)
	ListAuthors(ctx context.Context, opts ListOptions) ([]model.Author, error)
	UpdateAuthor(ctx context.Context, author *model.Author) error
	DeleteAuthor(ctx context.Context, id string) error
}

type BookRepository interface {
	CreateBook(ctx context.Context, book *model.Book) error
	GetBookByID(ctx context.Context, id string) (*model.Book, error)
	ListBooks(ctx context.Context, opts ListOptions) ([]model.Book, error)
	ListBooksByAuthor(ctx context.Context, authorID string) ([]model.Book, error)
	ListBooksByOwner(ctx context.Context, ownerID string) ([]model.Book, error)
	UpdateBook(ctx context.Context, book *model.Book) error
	DeleteBook(ctx context.Context, id string) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type ArtifactRepository interface {
	CreateArtifact(ctx context.Context, artifact *model.Artifact) error
	GetArtifactByID(ctx context.Context, id string) (*model.Artifact, error)
	ListArtifactChildren(ctx context.Context, parentID string) ([]string, error)
}

// ResetCounts reports how many rows each table lost during a reset.
type ResetCounts struct {
	Books     int64
	Authors   int64
	Artifacts int64
}

// Resetter clears the catalog and artifact tables. Users survive a reset —
// the grader re-registers accounts but expects the catalog to start empty.
type Resetter interface {
	ResetAll(ctx context.Context) (ResetCounts, error)
}
