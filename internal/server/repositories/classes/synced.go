package classes

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/classkeeper/internal/server/models"
)

// Synced serializes every call into the wrapped repository behind one
// mutex. Readers and writers contend equally. Generation probes go through
// the same handle, so the lock is held per probe and released between them.
type Synced struct {
	mu   sync.Mutex
	repo Repository
}

var _ Repository = (*Synced)(nil)

func NewSynced(repo Repository) *Synced {
	return &Synced{repo: repo}
}

func (s *Synced) GetAllClasses(ctx context.Context) ([]models.ClassSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.GetAllClasses(ctx)
}

func (s *Synced) SaveNewClass(ctx context.Context, c models.Class) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.SaveNewClass(ctx, c)
}

func (s *Synced) GetClassByID(ctx context.Context, id models.ClassID) (models.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.GetClassByID(ctx, id)
}

func (s *Synced) GetClassByPassPhrase(ctx context.Context, p models.PassPhrase) (models.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.GetClassByPassPhrase(ctx, p)
}

func (s *Synced) RenameClass(ctx context.Context, id models.ClassID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.RenameClass(ctx, id, name)
}

func (s *Synced) DeleteClass(ctx context.Context, id models.ClassID) (models.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.DeleteClass(ctx, id)
}

func (s *Synced) ClassIDExists(ctx context.Context, id models.ClassID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.ClassIDExists(ctx, id)
}

func (s *Synced) PassPhraseExists(ctx context.Context, p models.PassPhrase) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.PassPhraseExists(ctx, p)
}

func (s *Synced) GetFiles(ctx context.Context, id models.ClassID) ([]models.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.GetFiles(ctx, id)
}

func (s *Synced) AddNewFile(ctx context.Context, id models.ClassID, f models.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.AddNewFile(ctx, id, f)
}

func (s *Synced) GetFileByID(ctx context.Context, id models.FileID) (models.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.GetFileByID(ctx, id)
}

func (s *Synced) DeleteFile(ctx context.Context, id models.FileID) (models.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.DeleteFile(ctx, id)
}

func (s *Synced) FileIDExists(ctx context.Context, id models.FileID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.FileIDExists(ctx, id)
}

func (s *Synced) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Ping(ctx)
}
