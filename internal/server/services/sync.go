package services

import (
	"context"
	"database/sql"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/musefuse/internal/filex"
	"github.com/dmitrijs2005/musefuse/internal/imagex"
	"github.com/dmitrijs2005/musefuse/internal/logging"
	"github.com/dmitrijs2005/musefuse/internal/server/models"
	"github.com/dmitrijs2005/musefuse/internal/server/repositories/photos"
	"github.com/dmitrijs2005/musefuse/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/musefuse/internal/server/storage"
)

// Sync-path policy: larger thumbnails at higher quality than the
// interactive upload path, and a fixed owner for every recovered photo.
const (
	syncThumbMaxDim    = 1080
	syncThumbQuality   = 95
	syncDefaultOwnerID = 1
)

// allowedExtensions are the only root-level object kinds the reconciler
// picks up; everything under originals/ is taken as-is.
var allowedExtensions = []string{".jpg", ".jpeg", ".png"}

// SyncService rebuilds the photo metadata table from a bucket listing,
// regenerating thumbnails along the way.
type SyncService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	logger      logging.Logger
}

func NewSyncService(db *sql.DB, m repomanager.RepositoryManager, store storage.ObjectStore, logger logging.Logger) *SyncService {
	return &SyncService{db: db, repomanager: m, store: store, logger: logger}
}

// Reconcile wipes the photos table and repopulates it from the bucket.
// Candidates are root-level image objects (by extension) plus everything
// under originals/. Failures are handled per object: an undecodable or
// unreachable blob is logged and skipped while the rest proceed.
// Re-running against an unchanged bucket yields the same filename/owner
// set; only timestamps differ.
func (s *SyncService) Reconcile(ctx context.Context) (added, skipped int, err error) {
	repo := s.repomanager.Photos(s.db)

	if err := repo.DeleteAll(ctx); err != nil {
		return 0, 0, err
	}

	keys, err := s.listCandidates(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, key := range keys {
		if err := s.processObject(ctx, repo, key); err != nil {
			s.logger.Error(ctx, "skipping object", "key", key, "error", err)
			skipped++
			continue
		}
		added++
	}

	return added, skipped, nil
}

func (s *SyncService) listCandidates(ctx context.Context) ([]string, error) {
	var keys []string

	rootKeys, err := s.store.List(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, key := range rootKeys {
		if strings.HasPrefix(key, storage.OriginalsPrefix) || strings.HasPrefix(key, storage.ThumbnailsPrefix) {
			continue
		}
		if !hasAllowedExtension(key) {
			continue
		}
		keys = append(keys, key)
	}

	originalKeys, err := s.store.List(ctx, storage.OriginalsPrefix)
	if err != nil {
		return nil, err
	}
	for _, key := range originalKeys {
		// skip the prefix marker itself
		if strings.HasSuffix(key, "/") {
			continue
		}
		keys = append(keys, key)
	}

	return keys, nil
}

func (s *SyncService) processObject(ctx context.Context, repo photos.Repository, key string) error {
	raw, err := s.store.Download(ctx, key)
	if err != nil {
		return err
	}

	img, err := imagex.Decode(raw)
	if err != nil {
		return err
	}

	thumbnail, err := imagex.EncodeJPEG(imagex.Thumbnail(imagex.Normalize(img), syncThumbMaxDim), syncThumbQuality)
	if err != nil {
		return err
	}

	// thumbnails are always stored as .jpg, whatever the source extension
	thumbnailKey := storage.ThumbnailsPrefix + filex.BaseNameAsJPEG(key)
	if err := s.store.Upload(ctx, thumbnailKey, thumbnail, jpegContentType); err != nil {
		return err
	}

	_, err = repo.Create(ctx, &models.Photo{
		Filename:     path.Base(key),
		S3URL:        s.store.ObjectURL(key),
		ThumbnailURL: s.store.ObjectURL(thumbnailKey),
		UserID:       syncDefaultOwnerID,
		UploadTime:   time.Now().UTC(),
	})
	return err
}

func hasAllowedExtension(key string) bool {
	ext := strings.ToLower(path.Ext(key))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
