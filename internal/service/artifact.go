// Package service — artifact tree management.
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

// ArtifactService handles the artifact tree: geolocated items optionally
// nested under a parent artifact.
//
// The owner always comes from the authenticated request context, never
// from the request body — a client cannot create artifacts on someone
// else's behalf.
type ArtifactService struct {
	artifacts repository.ArtifactRepository
	logger    *slog.Logger
}

// NewArtifactService creates an ArtifactService.
func NewArtifactService(artifacts repository.ArtifactRepository, logger *slog.Logger) *ArtifactService {
	return &ArtifactService{
		artifacts: artifacts,
		logger:    logger,
	}
}

// Create validates and saves a new artifact for the given owner.
//
// PARENT EXISTENCE:
// A non-nil parentId must reference an existing artifact — checked here so
// the caller gets a 404 naming the parent, with the foreign key in the
// repository as the race backstop. Because the parent is immutable after
// create, this check is also all it takes to keep the tree acyclic: a
// brand-new node can't be anyone's ancestor.
func (s *ArtifactService) Create(ctx context.Context, ownerID string, req dto.ArtifactCreate) (*dto.ArtifactResponse, error) {
	if ownerID == "" {
		return nil, apperror.Unauthorized("valid authentication required")
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.artifacts.GetArtifactByID(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	artifact := &model.Artifact{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Lat:         req.Location.Lat,
		Lon:         req.Location.Lon,
		Alt:         req.Location.Alt,
		OwnerID:     ownerID,
		ParentID:    req.ParentID,
	}

	if err := s.artifacts.CreateArtifact(ctx, artifact); err != nil {
		return nil, fmt.Errorf("creating artifact: %w", err)
	}

	s.logger.Info("artifact created",
		slog.String("id", artifact.ID),
		slog.String("ownerID", ownerID),
	)

	// A freshly created artifact has no children by definition.
	return toArtifactResponse(artifact, []string{}), nil
}

// Get retrieves an artifact with the IDs of its direct children.
func (s *ArtifactService) Get(ctx context.Context, id string) (*dto.ArtifactResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "artifact ID is required")
	}

	artifact, err := s.artifacts.GetArtifactByID(ctx, id)
	if err != nil {
		return nil, err
	}

	children, err := s.artifacts.ListArtifactChildren(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing artifact children: %w", err)
	}

	return toArtifactResponse(artifact, children), nil
}

// Children returns the IDs of the direct children of the given artifact.
// The artifact itself must exist — asking for the children of a missing
// artifact is 404, not an empty list.
func (s *ArtifactService) Children(ctx context.Context, id string) ([]string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "artifact ID is required")
	}

	if _, err := s.artifacts.GetArtifactByID(ctx, id); err != nil {
		return nil, err
	}

	children, err := s.artifacts.ListArtifactChildren(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing artifact children: %w", err)
	}

	return children, nil
}

func toArtifactResponse(a *model.Artifact, children []string) *dto.ArtifactResponse {
	return &dto.ArtifactResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Location: dto.GeoPoint{
			Lat: a.Lat,
			Lon: a.Lon,
			Alt: a.Alt,
		},
		OwnerID:  a.OwnerID,
		ParentID: a.ParentID,
		Children: children,
	}
}
