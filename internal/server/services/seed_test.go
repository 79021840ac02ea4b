package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/classkeeper/internal/server/models"
	"github.com/dmitrijs2005/classkeeper/internal/server/repositories/classes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	svc := NewClassService(classes.NewSynced(classes.NewMemoryRepository()), nil)

	seeded, err := svc.Seed(ctx)
	require.NoError(t, err)
	require.Len(t, seeded, 3)

	list, err := svc.ListClasses(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.Name)
	}
	assert.Equal(t, DemoClasses, names)

	for _, c := range seeded {
		files, err := svc.ListFiles(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.Files, files)

		markers := make([]models.ArMarkerID, 0, len(files))
		for _, f := range files {
			markers = append(markers, f.MarkerID)
		}
		assert.Equal(t, []models.ArMarkerID{"foo", "bar", "baz"}, markers)
	}
}
