package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/course-api/internal/apperror"
	"github.com/sakif/course-api/internal/model"
)

func createTestArtifact(t *testing.T, db *DB, ownerID, name string, parentID *string) *model.Artifact {
	t.Helper()
	artifact := &model.Artifact{
		Name:     name,
		Lat:      46.5,
		Lon:      9.5,
		OwnerID:  ownerID,
		ParentID: parentID,
	}
	if err := db.CreateArtifact(context.Background(), artifact); err != nil {
		t.Fatalf("failed to create test artifact: %v", err)
	}
	return artifact
}

func TestCreateArtifact_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")

	alt := 2503.0
	artifact := &model.Artifact{
		Name:        "summit",
		Description: "windy",
		Lat:         46.9,
		Lon:         9.9,
		Alt:         &alt,
		OwnerID:     user.ID,
	}
	if err := db.CreateArtifact(context.Background(), artifact); err != nil {
		t.Fatalf("CreateArtifact() error = %v", err)
	}

	found, err := db.GetArtifactByID(context.Background(), artifact.ID)
	if err != nil {
		t.Fatalf("GetArtifactByID() error = %v", err)
	}
	if found.Name != "summit" || found.Lat != 46.9 {
		t.Errorf("got %q at lat %v, want summit at 46.9", found.Name, found.Lat)
	}
	if found.Alt == nil || *found.Alt != 2503.0 {
		t.Errorf("Alt = %v, want 2503", found.Alt)
	}
	if found.ParentID != nil {
		t.Error("root artifact should round-trip with nil ParentID")
	}
}

func TestCreateArtifact_UnknownParent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")

	ghost := "nonexistent"
	err := db.CreateArtifact(context.Background(), &model.Artifact{
		Name: "orphan", Lat: 0, Lon: 0, OwnerID: user.ID, ParentID: &ghost,
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListArtifactChildren(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")

	root := createTestArtifact(t, db, user.ID, "root", nil)
	childA := createTestArtifact(t, db, user.ID, "a", &root.ID)
	childB := createTestArtifact(t, db, user.ID, "b", &root.ID)
	// A grandchild must NOT appear in root's children — direct only.
	createTestArtifact(t, db, user.ID, "grandchild", &childA.ID)

	children, err := db.ListArtifactChildren(context.Background(), root.ID)
	if err != nil {
		t.Fatalf("ListArtifactChildren() error = %v", err)
	}

	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	got := map[string]bool{children[0]: true, children[1]: true}
	if !got[childA.ID] || !got[childB.ID] {
		t.Errorf("children = %v, want {%s, %s}", children, childA.ID, childB.ID)
	}
}

func TestListArtifactChildren_LeafIsEmptyNotNil(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	leaf := createTestArtifact(t, db, user.ID, "leaf", nil)

	children, err := db.ListArtifactChildren(context.Background(), leaf.ID)
	if err != nil {
		t.Fatalf("ListArtifactChildren() error = %v", err)
	}
	if children == nil {
		t.Error("expected empty slice, got nil (nil serializes as null, not [])")
	}
	if len(children) != 0 {
		t.Errorf("got %d children, want 0", len(children))
	}
}
