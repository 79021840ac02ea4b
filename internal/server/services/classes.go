// Package services contains server-side business logic. ClassService runs
// the id generation protocol and makes exactly one persistence call per
// operation, except AddFile and UploadURL which generate or look up first.
package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/server/models"
	"github.com/dmitrijs2005/classkeeper/internal/server/objectstore"
	"github.com/dmitrijs2005/classkeeper/internal/server/repositories/classes"
)

// ClassService is shared by all request handlers. repo must already be
// synchronized (classes.Synced).
type ClassService struct {
	repo      classes.Repository
	presigner objectstore.Presigner
	gen       models.Generator
	now       func() time.Time
}

// NewClassService wires the service. A nil presigner disables upload URLs.
func NewClassService(repo classes.Repository, presigner objectstore.Presigner) *ClassService {
	if presigner == nil {
		presigner = objectstore.Disabled{}
	}
	return &ClassService{
		repo:      repo,
		presigner: presigner,
		gen:       models.DefaultGenerator,
		now:       time.Now,
	}
}

func (s *ClassService) ListClasses(ctx context.Context) ([]models.ClassSummary, error) {
	return s.repo.GetAllClasses(ctx)
}

// CreateClass generates an id and pass phrase, then saves the class.
func (s *ClassService) CreateClass(ctx context.Context, name string) (models.Class, error) {
	if name == "" {
		return models.Class{}, fmt.Errorf("%w: name is required", common.ErrInvalidInput)
	}
	c, err := s.gen.NewClass(ctx, s.repo, name)
	if err != nil {
		return models.Class{}, err
	}
	if err := s.repo.SaveNewClass(ctx, c); err != nil {
		return models.Class{}, err
	}
	return c, nil
}

func (s *ClassService) GetClass(ctx context.Context, id models.ClassID) (models.Class, error) {
	return s.repo.GetClassByID(ctx, id)
}

func (s *ClassService) GetClassByPassPhrase(ctx context.Context, p models.PassPhrase) (models.Class, error) {
	return s.repo.GetClassByPassPhrase(ctx, p)
}

func (s *ClassService) RenameClass(ctx context.Context, id models.ClassID, name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", common.ErrInvalidInput)
	}
	return s.repo.RenameClass(ctx, id, name)
}

func (s *ClassService) DeleteClass(ctx context.Context, id models.ClassID) (models.Class, error) {
	return s.repo.DeleteClass(ctx, id)
}

func (s *ClassService) ListFiles(ctx context.Context, id models.ClassID) ([]models.File, error) {
	return s.repo.GetFiles(ctx, id)
}

// AddFile generates a file id, then appends the file to the class. A zero
// createdAt is replaced with the current time.
func (s *ClassService) AddFile(ctx context.Context, id models.ClassID, marker models.ArMarkerID, fileName string, createdAt time.Time) (models.File, error) {
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	f, err := s.gen.NewFile(ctx, s.repo, marker, fileName, createdAt)
	if err != nil {
		return models.File{}, err
	}
	if err := s.repo.AddNewFile(ctx, id, f); err != nil {
		return models.File{}, err
	}
	return f, nil
}

func (s *ClassService) GetFile(ctx context.Context, id models.FileID) (models.File, error) {
	return s.repo.GetFileByID(ctx, id)
}

func (s *ClassService) DeleteFile(ctx context.Context, id models.FileID) (models.File, error) {
	return s.repo.DeleteFile(ctx, id)
}

// UploadURL presigns an upload for a file that must belong to classID.
func (s *ClassService) UploadURL(ctx context.Context, classID models.ClassID, fileID models.FileID) (objectstore.UploadURL, error) {
	files, err := s.repo.GetFiles(ctx, classID)
	if err != nil {
		return objectstore.UploadURL{}, err
	}
	i := slices.IndexFunc(files, func(f models.File) bool { return f.ID == fileID })
	if i < 0 {
		return objectstore.UploadURL{}, common.ErrFileNotFound
	}
	return s.presigner.PresignUpload(ctx, classID, files[i])
}

// Ping checks the backing store.
func (s *ClassService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
