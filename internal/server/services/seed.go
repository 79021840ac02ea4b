package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/classkeeper/internal/server/models"
)

// DemoClasses are the class names Seed creates.
var DemoClasses = []string{"理科", "社会", "体育"}

// demoFiles are attached to every demo class as marker/file name pairs.
var demoFiles = [][2]string{{"foo", "ffoo"}, {"bar", "fbar"}, {"baz", "fbaz"}}

// Seed creates the demo classes with their files and returns them as stored.
func (s *ClassService) Seed(ctx context.Context) ([]models.Class, error) {
	out := make([]models.Class, 0, len(DemoClasses))
	for _, name := range DemoClasses {
		c, err := s.CreateClass(ctx, name)
		if err != nil {
			return out, fmt.Errorf("seed class %s: %w", name, err)
		}
		for _, df := range demoFiles {
			f, err := s.AddFile(ctx, c.ID, models.ArMarkerID(df[0]), df[1], s.now())
			if err != nil {
				return out, fmt.Errorf("seed file %s: %w", df[1], err)
			}
			c.Files = append(c.Files, f)
		}
		out = append(out, c)
	}
	return out, nil
}
