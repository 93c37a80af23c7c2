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

var _ repository.ArtifactRepository = (*DB)(nil)

// CreateArtifact inserts a new artifact.
//
// parent_id is a self-referential foreign key into this same table. The
// service validates parent existence first (for a precise 404 message);
// the constraint here is the backstop against races where the parent is
// deleted between the check and the insert.
func (db *DB) CreateArtifact(ctx context.Context, artifact *model.Artifact) error {
	artifact.ID = xid.New().String()

	now := time.Now()
	artifact.CreatedAt = now
	artifact.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO artifacts
		   (id, name, description, lat, lon, alt, owner_id, parent_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		artifact.ID,
		artifact.Name,
		artifact.Description,
		artifact.Lat,
		artifact.Lon,
		artifact.Alt,
		artifact.OwnerID,
		artifact.ParentID,
		artifact.CreatedAt,
		artifact.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			parent := ""
			if artifact.ParentID != nil {
				parent = *artifact.ParentID
			}
			return apperror.NotFound("artifact", parent)
		}
		return fmt.Errorf("sqlite: creating artifact: %w", err)
	}

	return nil
}

func (db *DB) GetArtifactByID(ctx context.Context, id string) (*model.Artifact, error) {
	var a model.Artifact

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, description, lat, lon, alt, owner_id, parent_id, created_at, updated_at
		 FROM artifacts WHERE id = ?`,
		id,
	).Scan(
		&a.ID, &a.Name, &a.Description, &a.Lat, &a.Lon, &a.Alt,
		&a.OwnerID, &a.ParentID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("artifact", id)
		}
		return nil, fmt.Errorf("sqlite: getting artifact %s: %w", id, err)
	}

	return &a, nil
}

// ListArtifactChildren returns the IDs of the artifacts whose parent_id is
// the given artifact. IDs only — the contract exposes the child list as a
// list of references, and callers fetch full records individually if they
// need them.
func (db *DB) ListArtifactChildren(ctx context.Context, parentID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id FROM artifacts WHERE parent_id = ? ORDER BY created_at`,
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing children of %s: %w", parentID, err)
	}
	defer rows.Close()

	// Empty slice, not nil — this serializes to [] rather than null.
	children := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: scanning child id: %w", err)
		}
		children = append(children, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating children: %w", err)
	}

	return children, nil
}
