// Package repomanager opens the configured storage backend and vends its
// class repository.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/server/config"
	"github.com/dmitrijs2005/classkeeper/internal/server/repositories/classes"
)

// RepositoryManager owns a storage backend for the lifetime of the process.
type RepositoryManager interface {
	// Classes returns the backend repository. It is not synchronized;
	// wrap it with classes.NewSynced before sharing it.
	Classes() classes.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}

// New opens the backend named by cfg.StorageBackend and brings its schema
// up to date.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (RepositoryManager, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory, "":
		logger.Warn(ctx, "Using in-memory storage, data is lost on restart")
		return NewInMemoryRepositoryManager(), nil
	case config.BackendPostgres:
		logger.Info(ctx, "Using PostgreSQL storage")
		return NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	case config.BackendBadger:
		logger.Info(ctx, "Using badger storage", "path", cfg.BadgerPath)
		return NewBadgerRepositoryManager(cfg.BadgerPath, logger)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownBackend, cfg.StorageBackend)
	}
}

// InMemoryRepositoryManager keeps everything in process memory.
type InMemoryRepositoryManager struct {
	repo *classes.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{repo: classes.NewMemoryRepository()}
}

func (m *InMemoryRepositoryManager) Classes() classes.Repository { return m.repo }

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Close() error { return nil }
