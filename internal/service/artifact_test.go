package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/dto"
)

func newTestArtifacts(t *testing.T) *ArtifactService {
	t.Helper()
	return NewArtifactService(newMockArtifactRepo(), testLogger())
}

func createTestArtifact(t *testing.T, svc *ArtifactService, name string, parentID *string) *dto.ArtifactResponse {
	t.Helper()
	artifact, err := svc.Create(context.Background(), "user-1", dto.ArtifactCreate{
		Name:     name,
		Location: dto.GeoPoint{Lat: 46.5, Lon: 9.5},
		ParentID: parentID,
	})
	if err != nil {
		t.Fatalf("setup: Create(%q) error = %v", name, err)
	}
	return artifact
}

func TestArtifactCreate_Root(t *testing.T) {
	svc := newTestArtifacts(t)

	artifact := createTestArtifact(t, svc, "root", nil)

	if artifact.ID == "" {
		t.Error("expected artifact to have an ID")
	}
	if artifact.ParentID != nil {
		t.Error("root artifact should have no parent")
	}
	if artifact.OwnerID != "user-1" {
		t.Errorf("OwnerID = %q, want user-1", artifact.OwnerID)
	}
	if artifact.Children == nil || len(artifact.Children) != 0 {
		t.Errorf("new artifact Children = %v, want empty non-nil slice", artifact.Children)
	}
}

func TestArtifactCreate_NoUser(t *testing.T) {
	svc := newTestArtifacts(t)

	_, err := svc.Create(context.Background(), "", dto.ArtifactCreate{
		Name:     "anon",
		Location: dto.GeoPoint{Lat: 0, Lon: 0},
	})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestArtifactCreate_LatitudeOutOfRange(t *testing.T) {
	svc := newTestArtifacts(t)

	_, err := svc.Create(context.Background(), "user-1", dto.ArtifactCreate{
		Name:     "nowhere",
		Location: dto.GeoPoint{Lat: 90.01, Lon: 0},
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestArtifactCreate_UnknownParent(t *testing.T) {
	svc := newTestArtifacts(t)

	ghost := "nonexistent"
	_, err := svc.Create(context.Background(), "user-1", dto.ArtifactCreate{
		Name:     "orphan",
		Location: dto.GeoPoint{Lat: 0, Lon: 0},
		ParentID: &ghost,
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestArtifactGet_IncludesChildren(t *testing.T) {
	svc := newTestArtifacts(t)

	root := createTestArtifact(t, svc, "root", nil)
	child := createTestArtifact(t, svc, "child", &root.ID)

	fetched, err := svc.Get(context.Background(), root.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if len(fetched.Children) != 1 || fetched.Children[0] != child.ID {
		t.Errorf("Children = %v, want [%s]", fetched.Children, child.ID)
	}
}

func TestArtifactChildren_MissingArtifactIs404(t *testing.T) {
	svc := newTestArtifacts(t)

	_, err := svc.Children(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestArtifactChildren_LeafIsEmptyList(t *testing.T) {
	svc := newTestArtifacts(t)

	leaf := createTestArtifact(t, svc, "leaf", nil)

	children, err := svc.Children(context.Background(), leaf.ID)
	if err != nil {
		t.Fatalf("Children() error = %v", err)
	}
	if children == nil {
		t.Error("Children() returned nil, want empty slice (serializes as [])")
	}
	if len(children) != 0 {
		t.Errorf("got %d children, want 0", len(children))
	}
}
