package photos

import (
	"context"

	"github.com/dmitrijs2005/musefuse/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, photo *models.Photo) (*models.Photo, error)
	ListWithOwner(ctx context.Context) ([]*models.PhotoWithOwner, error)
	GetByFilename(ctx context.Context, filename string) (*models.Photo, error)
	GetOwned(ctx context.Context, filename string, userID int64) (*models.Photo, error)
	DeleteOwned(ctx context.Context, filename string, userID int64) error
	DeleteAll(ctx context.Context) error
}
