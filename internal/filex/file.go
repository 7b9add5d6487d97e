// Package filex contains filename helpers for user-supplied uploads.
package filex

import (
	"path"
	"strings"
)

// SanitizeFilename reduces a client-supplied filename to a safe basename.
// Directory components (both slash styles) are stripped, spaces become
// underscores, and any rune outside [A-Za-z0-9._-] is dropped. Leading and
// trailing dots and underscores are trimmed so the result can never point
// outside the storage prefix. The mapping is deterministic: the same input
// always yields the same output. An unusable name sanitizes to "".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}

	return strings.Trim(b.String(), "._")
}

// BaseNameAsJPEG returns the basename of an object key with its extension
// replaced by ".jpg". Thumbnails are always re-encoded to JPEG regardless
// of the source format.
func BaseNameAsJPEG(key string) string {
	base := path.Base(key)
	ext := path.Ext(base)
	return strings.TrimSuffix(base, ext) + ".jpg"
}
