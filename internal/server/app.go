// Package server wires configuration, storage, the class service and the
// HTTP and gRPC health servers into one runnable application.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/server/config"
	"github.com/dmitrijs2005/classkeeper/internal/server/objectstore"
	"github.com/dmitrijs2005/classkeeper/internal/server/repositories/classes"
	"github.com/dmitrijs2005/classkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/classkeeper/internal/server/rest"
	"github.com/dmitrijs2005/classkeeper/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/classkeeper/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager repomanager.RepositoryManager
	service *services.ClassService
}

// NewApp opens storage and builds the service. The caller must Run the app
// (which closes storage on exit) or Close it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	m, err := repomanager.New(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	presigner, err := newPresigner(ctx, c, logger)
	if err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	svc := services.NewClassService(classes.NewSynced(m.Classes()), presigner)
	return &App{config: c, logger: logger, manager: m, service: svc}, nil
}

func newPresigner(ctx context.Context, c *config.Config, logger logging.Logger) (objectstore.Presigner, error) {
	if !c.UploadsEnabled() {
		logger.Info(ctx, "Upload URLs disabled, no S3 bucket configured")
		return objectstore.Disabled{}, nil
	}
	return objectstore.NewS3Presigner(ctx, objectstore.Settings{
		User:         c.S3RootUser,
		Password:     c.S3RootPassword,
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		Validity:     c.UploadURLValidity,
	})
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP and gRPC health until a signal arrives, ctx is cancelled
// or either server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "auth", app.config.AuthEnabled())
	app.initSignalHandler(cancelFunc)

	httpServer := rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.service, rest.Options{
		SecretKey:    app.config.SecretKey,
		MaxBodyBytes: app.config.MaxBodyBytes,
	})
	healthServer := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger, app.service, app.config.HealthCheckInterval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpServer.Run(gctx) })
	g.Go(func() error { return healthServer.Run(gctx) })

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, err.Error())
	}

	app.logger.Info(ctx, "App stopped")
	return errors.Join(err, app.Close())
}

// Close releases the storage backend.
func (app *App) Close() error {
	if err := app.manager.Close(); err != nil {
		return fmt.Errorf("%w: close storage: %w", common.ErrConnection, err)
	}
	return nil
}
