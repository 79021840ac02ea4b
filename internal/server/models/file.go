package models

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/timex"
)

// File is an uploaded resource record. It belongs to exactly one class.
type File struct {
	ID           FileID       `json:"id"`
	MarkerID     ArMarkerID   `json:"markerID"`
	ResourceInfo ResourceInfo `json:"resourceInfo"`
}

// ResourceInfo describes the uploaded resource.
type ResourceInfo struct {
	FileName  string             `json:"fileName"`
	CreatedAt timex.EpochSeconds `json:"createdAt"`
}

// NewFile builds a file record whose id is unused by any class in the store
// reached through p.
func NewFile(ctx context.Context, p Prober, marker ArMarkerID, fileName string, createdAt time.Time) (File, error) {
	return DefaultGenerator.NewFile(ctx, p, marker, fileName, createdAt)
}

func (g Generator) NewFile(ctx context.Context, p Prober, marker ArMarkerID, fileName string, createdAt time.Time) (File, error) {
	id, err := g.UniqueFileID(ctx, p)
	if err != nil {
		return File{}, fmt.Errorf("generate file id: %w", err)
	}
	return File{
		ID:       id,
		MarkerID: marker,
		ResourceInfo: ResourceInfo{
			FileName:  fileName,
			CreatedAt: timex.NewEpochSeconds(createdAt),
		},
	}, nil
}
