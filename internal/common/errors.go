// Package common contains shared constants and sentinel errors used across
// MuseFuse components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Upload validation errors.
	ErrNoFile           = errors.New("no file provided")
	ErrUnsupportedImage = errors.New("unsupported image")

	// Token errors. ParseToken reports the specific failure kind so callers
	// can log it; all of them map to 401 at the HTTP boundary.
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenMalformed   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
)
