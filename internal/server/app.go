// Package server initializes and runs the photo service: it loads
// configuration, opens the database and runs migrations, connects the
// object store, and starts the HTTP API with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/musefuse/internal/logging"
	"github.com/dmitrijs2005/musefuse/internal/server/config"
	"github.com/dmitrijs2005/musefuse/internal/server/httpapi"
	"github.com/dmitrijs2005/musefuse/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/musefuse/internal/server/services"
	"github.com/dmitrijs2005/musefuse/internal/server/storage"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	userService  *services.UserService
	photoService *services.PhotoService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.New(cfg.LogFormat)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store, err := storage.NewS3Store(ctx, storage.Config{
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		BaseEndpoint:    cfg.S3BaseEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	us := services.NewUserService(db, m, cfg)
	ps := services.NewPhotoService(db, m, store, logger)

	return &App{
		config:       cfg,
		logger:       logger,
		db:           db,
		userService:  us,
		photoService: ps,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	handler := httpapi.NewHandler(httpapi.Config{
		SecretKey:          app.config.SecretKey,
		CORSAllowedOrigins: app.config.CORSAllowedOrigins,
	}, app.userService, app.photoService, app.logger)

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, handler.Router(), app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
