package dto

// GeoPoint is a shared value object — a validated coordinate pair with an
// optional altitude. Nested structs are validated recursively, so the
// range tags here fire whenever a GeoPoint appears inside a request.
type GeoPoint struct {
	Lat float64  `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64  `json:"lon" validate:"gte=-180,lte=180"`
	Alt *float64 `json:"alt,omitempty"`
}

// ArtifactCreate is the body of POST /api/artifacts.
//
// ParentID is optional — nil creates a root artifact. When present it must
// reference an existing artifact; the service checks that, not the schema,
// because it requires a database lookup.
type ArtifactCreate struct {
	Name        string   `json:"name"        validate:"required,min=1,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Location    GeoPoint `json:"location"`
	ParentID    *string  `json:"parentId,omitempty"`
}

// ArtifactResponse is the body returned for a single artifact. It extends
// the stored record with the IDs of its direct children, which the service
// resolves with one extra query — the original API contract exposes the
// child list on every artifact read.
type ArtifactResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    GeoPoint `json:"location"`
	OwnerID     string   `json:"ownerId"`
	ParentID    *string  `json:"parentId,omitempty"`
	Children    []string `json:"children"`
}

// ArtifactChildren is the body of GET /api/artifacts/{id}/children.
type ArtifactChildren struct {
	Children []string `json:"children"`
}
