package classes

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/server/models"
)

// MemoryRepository keeps classes in insertion order in a single slice.
// Lookups are linear scans; every call holds mu for its whole duration.
type MemoryRepository struct {
	mu      sync.Mutex
	classes []models.Class
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) indexOfClass(id models.ClassID) int {
	return slices.IndexFunc(r.classes, func(c models.Class) bool { return c.ID == id })
}

// locateFile returns the class and file index of id, or -1, -1.
func (r *MemoryRepository) locateFile(id models.FileID) (int, int) {
	for ci, c := range r.classes {
		if fi := slices.IndexFunc(c.Files, func(f models.File) bool { return f.ID == id }); fi >= 0 {
			return ci, fi
		}
	}
	return -1, -1
}

func (r *MemoryRepository) GetAllClasses(_ context.Context) ([]models.ClassSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.ClassSummary, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c.Summary())
	}
	return out, nil
}

func (r *MemoryRepository) SaveNewClass(_ context.Context, c models.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.classes {
		if existing.ID == c.ID || existing.PassPhrase == c.PassPhrase {
			return common.ErrAlreadyExists
		}
	}
	r.classes = append(r.classes, c.Clone())
	return nil
}

func (r *MemoryRepository) GetClassByID(_ context.Context, id models.ClassID) (models.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfClass(id)
	if i < 0 {
		return models.Class{}, common.ErrClassNotFound
	}
	return r.classes[i].Clone(), nil
}

func (r *MemoryRepository) GetClassByPassPhrase(_ context.Context, p models.PassPhrase) (models.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.classes, func(c models.Class) bool { return c.PassPhrase == p })
	if i < 0 {
		return models.Class{}, common.ErrClassNotFound
	}
	return r.classes[i].Clone(), nil
}

func (r *MemoryRepository) RenameClass(_ context.Context, id models.ClassID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfClass(id)
	if i < 0 {
		return common.ErrClassNotFound
	}
	r.classes[i].Name = name
	return nil
}

func (r *MemoryRepository) DeleteClass(_ context.Context, id models.ClassID) (models.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfClass(id)
	if i < 0 {
		return models.Class{}, common.ErrClassNotFound
	}
	removed := r.classes[i].Clone()
	r.classes = slices.Delete(r.classes, i, i+1)
	return removed, nil
}

func (r *MemoryRepository) ClassIDExists(_ context.Context, id models.ClassID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.indexOfClass(id) >= 0, nil
}

func (r *MemoryRepository) PassPhraseExists(_ context.Context, p models.PassPhrase) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.ContainsFunc(r.classes, func(c models.Class) bool { return c.PassPhrase == p }), nil
}

func (r *MemoryRepository) GetFiles(_ context.Context, id models.ClassID) ([]models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfClass(id)
	if i < 0 {
		return nil, common.ErrClassNotFound
	}
	return r.classes[i].Clone().Files, nil
}

func (r *MemoryRepository) AddNewFile(_ context.Context, id models.ClassID, f models.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfClass(id)
	if i < 0 {
		return common.ErrClassNotFound
	}
	r.classes[i].Files = append(r.classes[i].Files, f)
	return nil
}

func (r *MemoryRepository) GetFileByID(_ context.Context, id models.FileID) (models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ci, fi := r.locateFile(id)
	if ci < 0 {
		return models.File{}, common.ErrFileNotFound
	}
	return r.classes[ci].Files[fi], nil
}

func (r *MemoryRepository) DeleteFile(_ context.Context, id models.FileID) (models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ci, fi := r.locateFile(id)
	if ci < 0 {
		return models.File{}, common.ErrFileNotFound
	}
	removed := r.classes[ci].Files[fi]
	r.classes[ci].Files = slices.Delete(r.classes[ci].Files, fi, fi+1)
	return removed, nil
}

func (r *MemoryRepository) FileIDExists(_ context.Context, id models.FileID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ci, _ := r.locateFile(id)
	return ci >= 0, nil
}

func (r *MemoryRepository) Ping(_ context.Context) error { return nil }
