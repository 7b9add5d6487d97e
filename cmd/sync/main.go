// Command sync rebuilds the photo metadata table from the contents of the
// object storage bucket, regenerating thumbnails for every object found.
package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/dmitrijs2005/musefuse/internal/logging"
	"github.com/dmitrijs2005/musefuse/internal/server/config"
	"github.com/dmitrijs2005/musefuse/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/musefuse/internal/server/services"
	"github.com/dmitrijs2005/musefuse/internal/server/storage"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogFormat)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	store, err := storage.NewS3Store(ctx, storage.Config{
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		BaseEndpoint:    cfg.S3BaseEndpoint,
	})
	if err != nil {
		log.Fatalf("object store init error: %v", err)
	}

	s := services.NewSyncService(db, m, store, logger)

	logger.Info(ctx, "Starting bucket sync", "bucket", cfg.S3Bucket)

	added, skipped, err := s.Reconcile(ctx)
	if err != nil {
		logger.Error(ctx, "sync failed", "error", err)
		return
	}

	logger.Info(ctx, "Sync complete", "added", added, "skipped", skipped)
}
