// Package domain defines the types and ports of the sync pipeline
package domain

import (
	"time"

	"github.com/google/uuid"
)

// RowVersion is an {id, modified} pair read from a source table
type RowVersion struct {
	ID       uuid.UUID
	Modified time.Time
}

// FilmRow is one flat film x person x role x genre combination as the
// enricher projects it. Pointer fields carry NULLs from the LEFT JOINs
type FilmRow struct {
	FilmID      uuid.UUID
	Title       string
	Description *string
	Rating      *float64
	Type        string
	Created     time.Time
	Modified    time.Time
	Role        *string
	PersonID    *uuid.UUID
	PersonName  *string
	Genre       *string
}

// PersonRow is one flat person x film x role combination.
// Film and role are NULL for people with no credited work
type PersonRow struct {
	PersonID uuid.UUID
	FullName string
	Role     *string
	FilmID   *uuid.UUID
	Title    *string
}

// JoinSpec describes the M:N hop from a changed side table to the films
// it touches: changed ids match mergeID in the link table, the link joins
// back to the base table through mergeFK = baseID
type JoinSpec struct {
	BaseTable  string
	BaseID     string
	MergeTable string
	MergeID    string
	MergeFK    string
}
