// Package storage wraps the S3-compatible object store where photo blobs
// live. Originals and thumbnails sit under fixed key prefixes in a flat
// bucket; public URLs follow the standard bucket URL template.
package storage

import "context"

// Key prefixes for the two blob families.
const (
	OriginalsPrefix  = "originals/"
	ThumbnailsPrefix = "thumbnails/"
)

// ObjectStore is the object-storage contract consumed by the services.
// The S3 implementation is the only production one; tests substitute fakes.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	Download(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	ObjectURL(key string) string
}
