package photos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/musefuse/internal/common"
	"github.com/dmitrijs2005/musefuse/internal/dbx"
	"github.com/dmitrijs2005/musefuse/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, photo *models.Photo) (*models.Photo, error) {

	query :=
		`INSERT INTO photos (filename, s3_url, thumbnail_url, user_id, upload_time)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		photo.Filename, photo.S3URL, photo.ThumbnailURL, photo.UserID, photo.UploadTime).Scan(&photo.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return photo, nil
}

func (r *PostgresRepository) ListWithOwner(ctx context.Context) ([]*models.PhotoWithOwner, error) {
	query :=
		`SELECT p.filename, p.s3_url, p.thumbnail_url, p.upload_time, u.username
		 FROM photos p
		 JOIN users u ON p.user_id = u.id
		 ORDER BY p.upload_time
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := make([]*models.PhotoWithOwner, 0)
	for rows.Next() {
		p := &models.PhotoWithOwner{}
		if err := rows.Scan(&p.Filename, &p.S3URL, &p.ThumbnailURL, &p.UploadTime, &p.Owner); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

func (r *PostgresRepository) GetByFilename(ctx context.Context, filename string) (*models.Photo, error) {
	query :=
		`SELECT id, filename, s3_url, thumbnail_url, user_id, upload_time FROM photos
		 WHERE filename = $1
		 LIMIT 1
		 `

	return r.scanPhoto(r.db.QueryRowContext(ctx, query, filename))
}

// GetOwned filters by both filename and owner; a row that exists under a
// different owner is reported as not found, same as an absent row.
func (r *PostgresRepository) GetOwned(ctx context.Context, filename string, userID int64) (*models.Photo, error) {
	query :=
		`SELECT id, filename, s3_url, thumbnail_url, user_id, upload_time FROM photos
		 WHERE filename = $1 AND user_id = $2
		 LIMIT 1
		 `

	return r.scanPhoto(r.db.QueryRowContext(ctx, query, filename, userID))
}

func (r *PostgresRepository) DeleteOwned(ctx context.Context, filename string, userID int64) error {
	query :=
		`DELETE FROM photos
		 WHERE filename = $1 AND user_id = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, filename, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM photos`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanPhoto(row *sql.Row) (*models.Photo, error) {
	p := &models.Photo{}
	err := row.Scan(&p.ID, &p.Filename, &p.S3URL, &p.ThumbnailURL, &p.UserID, &p.UploadTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}
