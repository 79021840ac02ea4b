package repomanager

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/filex"
	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/server/repositories/classes"
)

// BadgerRepositoryManager keeps classes in an embedded badger store.
type BadgerRepositoryManager struct {
	db *badger.DB
}

// NewBadgerRepositoryManager opens the store at path. An empty path opens
// an in-memory store. Badger's own log lines go to logger.
func NewBadgerRepositoryManager(path string, logger logging.Logger) (*BadgerRepositoryManager, error) {
	if path != "" {
		dir, err := filex.EnsureDir(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrConnection, err)
		}
		path = dir
	}

	opts := badger.DefaultOptions(path).
		WithLogger(logging.BadgerAdapter{L: logger.With("module", "badger")})
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open badger: %w", common.ErrConnection, err)
	}
	return &BadgerRepositoryManager{db: db}, nil
}

func (m *BadgerRepositoryManager) Classes() classes.Repository {
	return classes.NewBadgerRepository(m.db)
}

// RunMigrations is a no-op: the key layout needs no schema.
func (m *BadgerRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *BadgerRepositoryManager) Close() error {
	return m.db.Close()
}
