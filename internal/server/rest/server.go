// Package rest is the HTTP surface of classkeeper: JSON in and out, plain
// text errors, CORS open to every origin.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/server/models"
	"github.com/dmitrijs2005/classkeeper/internal/server/objectstore"
)

const shutdownTimeout = 30 * time.Second

// ClassService is the business layer the handlers call.
type ClassService interface {
	ListClasses(ctx context.Context) ([]models.ClassSummary, error)
	CreateClass(ctx context.Context, name string) (models.Class, error)
	GetClass(ctx context.Context, id models.ClassID) (models.Class, error)
	GetClassByPassPhrase(ctx context.Context, p models.PassPhrase) (models.Class, error)
	RenameClass(ctx context.Context, id models.ClassID, name string) error
	DeleteClass(ctx context.Context, id models.ClassID) (models.Class, error)
	ListFiles(ctx context.Context, id models.ClassID) ([]models.File, error)
	AddFile(ctx context.Context, id models.ClassID, marker models.ArMarkerID, fileName string, createdAt time.Time) (models.File, error)
	GetFile(ctx context.Context, id models.FileID) (models.File, error)
	DeleteFile(ctx context.Context, id models.FileID) (models.File, error)
	UploadURL(ctx context.Context, classID models.ClassID, fileID models.FileID) (objectstore.UploadURL, error)
	Ping(ctx context.Context) error
}

// Options tune the handler chain.
type Options struct {
	// SecretKey enables bearer auth on POST, PUT and DELETE when non-empty.
	SecretKey    string
	MaxBodyBytes int64
}

type Server struct {
	address string
	logger  logging.Logger
	handler http.Handler
}

func NewServer(address string, l logging.Logger, svc ClassService, opts Options) *Server {
	l = l.With("module", "http_server")
	return &Server{
		address: address,
		logger:  l,
		handler: NewHandler(svc, l, opts),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
