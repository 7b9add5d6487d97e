package services

import (
	"bytes"
	"context"
	"database/sql"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/musefuse/internal/common"
	"github.com/dmitrijs2005/musefuse/internal/dbx"
	"github.com/dmitrijs2005/musefuse/internal/logging"
	"github.com/dmitrijs2005/musefuse/internal/server/models"
	"github.com/dmitrijs2005/musefuse/internal/server/repositories/photos"
	"github.com/dmitrijs2005/musefuse/internal/server/repositories/users"
)

// fakeUserRepo is an in-memory users.Repository.
type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := r.users[user.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u := *user
	u.ID = r.nextID
	r.nextID++
	r.users[u.Username] = &u
	return &u, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

// fakePhotoRepo is an in-memory photos.Repository keyed by filename.
type fakePhotoRepo struct {
	photos    map[string]*models.Photo
	nextID    int64
	createErr error
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: make(map[string]*models.Photo), nextID: 1}
}

func (r *fakePhotoRepo) Create(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	p := *photo
	p.ID = r.nextID
	r.nextID++
	r.photos[p.Filename] = &p
	return &p, nil
}

func (r *fakePhotoRepo) ListWithOwner(ctx context.Context) ([]*models.PhotoWithOwner, error) {
	result := []*models.PhotoWithOwner{}
	for _, p := range r.photos {
		result = append(result, &models.PhotoWithOwner{
			Filename:     p.Filename,
			S3URL:        p.S3URL,
			ThumbnailURL: p.ThumbnailURL,
			UploadTime:   p.UploadTime,
			Owner:        "alice",
		})
	}
	return result, nil
}

func (r *fakePhotoRepo) GetByFilename(ctx context.Context, filename string) (*models.Photo, error) {
	p, ok := r.photos[filename]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (r *fakePhotoRepo) GetOwned(ctx context.Context, filename string, userID int64) (*models.Photo, error) {
	p, ok := r.photos[filename]
	if !ok || p.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (r *fakePhotoRepo) DeleteOwned(ctx context.Context, filename string, userID int64) error {
	p, ok := r.photos[filename]
	if !ok || p.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.photos, filename)
	return nil
}

func (r *fakePhotoRepo) DeleteAll(ctx context.Context) error {
	r.photos = make(map[string]*models.Photo)
	return nil
}

// fakeRepoManager vends the fakes above regardless of the DB handle.
type fakeRepoManager struct {
	userRepo  *fakeUserRepo
	photoRepo *fakePhotoRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{userRepo: newFakeUserRepo(), photoRepo: newFakePhotoRepo()}
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository   { return m.userRepo }
func (m *fakeRepoManager) Photos(db dbx.DBTX) photos.Repository { return m.photoRepo }
func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

// fakeObjectStore records uploads and deletes and serves canned downloads.
type fakeObjectStore struct {
	objects   map[string][]byte
	deleted   []string
	uploadErr error
	deleteErr error
	listErr   error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (s *fakeObjectStore) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.objects[key] = body
	return nil
}

func (s *fakeObjectStore) Delete(ctx context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, key)
	delete(s.objects, key)
	return nil
}

func (s *fakeObjectStore) Download(ctx context.Context, key string) ([]byte, error) {
	body, ok := s.objects[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return body, nil
}

func (s *fakeObjectStore) List(ctx context.Context, prefix string) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var keys []string
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *fakeObjectStore) ObjectURL(key string) string {
	return "https://bucket.s3.eu-west-1.amazonaws.com/" + key
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (l nopLogger) With(args ...any) logging.Logger                  { return l }

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// makePNG encodes a solid-colored PNG of the given size.
func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.Set(0, 0, color.NRGBA{R: 0xff, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return buf.Bytes()
}
