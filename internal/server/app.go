// Package server initializes and runs the AuthVault server: it selects and
// prepares the storage backend, wires the authentication service, and hosts
// the HTTP API until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/authvault/internal/logging"
	"github.com/dmitrijs2005/authvault/internal/server/auth"
	"github.com/dmitrijs2005/authvault/internal/server/config"
	"github.com/dmitrijs2005/authvault/internal/server/httpapi"
	"github.com/dmitrijs2005/authvault/internal/server/migrations"
	"github.com/dmitrijs2005/authvault/internal/server/repositories/users"
	"github.com/dmitrijs2005/authvault/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout)

	repo, err := newRepository(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	authService := services.NewAuthService(repo, hasher, cfg, logger)
	server := httpapi.NewServer(cfg.EndpointAddr, logger, authService)

	return &App{config: cfg, logger: logger, server: server}, nil
}

// newRepository builds the user store selected by the config.
func newRepository(ctx context.Context, cfg *config.Config, logger logging.Logger) (users.Repository, error) {
	switch cfg.StorageBackend {
	case config.StorageFile:
		return users.NewFileRepository(cfg.UsersFilePath, cfg.StoreFailOpen, logger)

	case config.StoragePostgres:
		db, err := sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		if err := migrations.Up(ctx, db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
		return users.NewPostgresRepository(db), nil

	case config.StorageS3:
		client, err := users.NewS3Client(ctx, users.S3Options{
			Region:       cfg.S3Region,
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
		if err != nil {
			return nil, err
		}
		return users.NewS3Repository(client, cfg.S3Bucket, cfg.S3ObjectKey, cfg.StoreFailOpen, logger), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app",
		"address", app.config.EndpointAddr,
		"storage", app.config.StorageBackend)

	if app.config.UsingDefaultSecret() {
		app.logger.Warn(ctx, "JWT_SECRET is not set: running with the built-in "+
			"demo secret; issued tokens are forgeable, do not use in production")
	}

	app.initSignalHandler(cancelFunc)

	return app.server.Run(ctx)
}
