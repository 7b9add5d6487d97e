package models

import "time"

// Photo is the metadata row for one stored picture: the sanitized filename,
// the object-storage URLs of the full-resolution JPEG and its thumbnail,
// the owning user and the upload timestamp (UTC).
type Photo struct {
	ID           int64
	Filename     string
	S3URL        string
	ThumbnailURL string
	UserID       int64
	UploadTime   time.Time
}

// PhotoWithOwner is a Photo joined with its owner's username, as returned
// by the listing endpoint.
type PhotoWithOwner struct {
	Filename     string
	S3URL        string
	ThumbnailURL string
	UploadTime   time.Time
	Owner        string
}
