package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/musefuse/internal/common"
	"github.com/dmitrijs2005/musefuse/internal/filex"
	"github.com/dmitrijs2005/musefuse/internal/imagex"
	"github.com/dmitrijs2005/musefuse/internal/logging"
	"github.com/dmitrijs2005/musefuse/internal/server/models"
	"github.com/dmitrijs2005/musefuse/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/musefuse/internal/server/storage"
)

// Upload-path encoding policy. The sync path uses its own constants in
// sync.go; the two differ on purpose.
const (
	originalJPEGQuality = 95
	uploadThumbMaxDim   = 800
	uploadThumbQuality  = 90
	jpegContentType     = "image/jpeg"
)

// PhotoService coordinates the image processor, the object store and the
// metadata table for uploads, listings and deletes.
type PhotoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	logger      logging.Logger
}

func NewPhotoService(db *sql.DB, m repomanager.RepositoryManager, store storage.ObjectStore, logger logging.Logger) *PhotoService {
	return &PhotoService{db: db, repomanager: m, store: store, logger: logger}
}

// Upload normalizes raw image bytes into a full-resolution JPEG plus a
// thumbnail, stores both blobs and records the metadata row. On failure no
// row is written; blobs uploaded before the failing step are not
// compensated.
func (s *PhotoService) Upload(ctx context.Context, userID int64, filename string, raw []byte) (*models.Photo, error) {
	if filename == "" || len(raw) == 0 {
		return nil, common.ErrNoFile
	}

	name := filex.SanitizeFilename(filename)
	if name == "" {
		return nil, common.ErrNoFile
	}

	img, err := imagex.Decode(raw)
	if err != nil {
		return nil, err
	}
	rgb := imagex.Normalize(img)

	original, err := imagex.EncodeJPEG(rgb, originalJPEGQuality)
	if err != nil {
		return nil, err
	}
	thumbnail, err := imagex.EncodeJPEG(imagex.Thumbnail(rgb, uploadThumbMaxDim), uploadThumbQuality)
	if err != nil {
		return nil, err
	}

	originalKey := storage.OriginalsPrefix + name
	thumbnailKey := storage.ThumbnailsPrefix + name

	// Original first; a failure here or on the thumbnail aborts before any
	// metadata is written.
	if err := s.store.Upload(ctx, originalKey, original, jpegContentType); err != nil {
		return nil, fmt.Errorf("uploading original: %w", err)
	}
	if err := s.store.Upload(ctx, thumbnailKey, thumbnail, jpegContentType); err != nil {
		return nil, fmt.Errorf("uploading thumbnail: %w", err)
	}

	photo := &models.Photo{
		Filename:     name,
		S3URL:        s.store.ObjectURL(originalKey),
		ThumbnailURL: s.store.ObjectURL(thumbnailKey),
		UserID:       userID,
		UploadTime:   time.Now().UTC(),
	}

	repo := s.repomanager.Photos(s.db)
	created, err := repo.Create(ctx, photo)
	if err != nil {
		return nil, fmt.Errorf("error creating photo: %w", err)
	}
	return created, nil
}

// List returns every photo with its owner's username.
func (s *PhotoService) List(ctx context.Context) ([]*models.PhotoWithOwner, error) {
	repo := s.repomanager.Photos(s.db)
	return repo.ListWithOwner(ctx)
}

// Resolve returns the original blob URL for a filename, for the public
// redirect endpoint. No ownership check: originals are world-readable.
func (s *PhotoService) Resolve(ctx context.Context, filename string) (string, error) {
	repo := s.repomanager.Photos(s.db)
	photo, err := repo.GetByFilename(ctx, filename)
	if err != nil {
		return "", err
	}
	return photo.S3URL, nil
}

// Delete removes the caller's photo. A filename owned by someone else is
// reported as common.ErrorNotFound, same as an absent one, so callers
// cannot probe other users' photos. Blob deletion is best effort: storage
// failures are logged and the metadata row is removed regardless.
func (s *PhotoService) Delete(ctx context.Context, userID int64, filename string) error {
	repo := s.repomanager.Photos(s.db)

	if _, err := repo.GetOwned(ctx, filename, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error looking up photo: %w", err)
	}

	for _, key := range []string{storage.OriginalsPrefix + filename, storage.ThumbnailsPrefix + filename} {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Error(ctx, "blob deletion failed", "key", key, "error", err)
		}
	}

	if err := repo.DeleteOwned(ctx, filename, userID); err != nil {
		return fmt.Errorf("error deleting photo: %w", err)
	}
	return nil
}
