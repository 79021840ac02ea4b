// Package classes stores classes together with their embedded files.
// Backends: MemoryRepository, PostgresRepository (JSONB documents) and
// BadgerRepository (embedded key-value store).
package classes

import (
	"context"

	"github.com/dmitrijs2005/classkeeper/internal/server/models"
)

// Repository is implemented by every storage backend. Not-found conditions
// are reported with common.ErrClassNotFound or common.ErrFileNotFound;
// transport failures wrap common.ErrConnection.
type Repository interface {
	models.Prober

	// GetAllClasses returns summaries without file payloads, in backend order.
	GetAllClasses(ctx context.Context) ([]models.ClassSummary, error)
	// SaveNewClass stores a fully built class. A colliding id or pass phrase
	// yields common.ErrAlreadyExists.
	SaveNewClass(ctx context.Context, c models.Class) error
	GetClassByID(ctx context.Context, id models.ClassID) (models.Class, error)
	GetClassByPassPhrase(ctx context.Context, p models.PassPhrase) (models.Class, error)
	RenameClass(ctx context.Context, id models.ClassID, name string) error
	// DeleteClass removes the class and returns the removed record.
	DeleteClass(ctx context.Context, id models.ClassID) (models.Class, error)

	GetFiles(ctx context.Context, id models.ClassID) ([]models.File, error)
	AddNewFile(ctx context.Context, id models.ClassID, f models.File) error
	// GetFileByID and DeleteFile search across all classes.
	GetFileByID(ctx context.Context, id models.FileID) (models.File, error)
	DeleteFile(ctx context.Context, id models.FileID) (models.File, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
