package model

import "time"

// Artifact represents a geolocated item that can be nested inside another
// artifact, forming a tree via the self-referential ParentID.
//
// INVARIANTS:
//   - ParentID, when non-nil, must reference an existing artifact. The
//     service checks this before insert.
//   - ParentID is immutable after create. Because a new artifact can never
//     be an ancestor of an existing one, the parent chain can't form a
//     cycle — there is no update path that could introduce one.
//
// Alt is a pointer because altitude is genuinely optional (NULL in the DB),
// unlike Lat/Lon which are always present and range-checked at the schema
// layer (-90..90 and -180..180).
type Artifact struct {
	ID          string    `json:"id"                 db:"id"`
	Name        string    `json:"name"               db:"name"`
	Description string    `json:"description"        db:"description"`
	Lat         float64   `json:"lat"                db:"lat"`
	Lon         float64   `json:"lon"                db:"lon"`
	Alt         *float64  `json:"alt,omitempty"      db:"alt"`
	OwnerID     string    `json:"ownerId"            db:"owner_id"`
	ParentID    *string   `json:"parentId,omitempty" db:"parent_id"`
	CreatedAt   time.Time `json:"createdAt"          db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"          db:"updated_at"`
}
