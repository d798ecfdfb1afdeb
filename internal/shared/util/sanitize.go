package util

import (
	"errors"
	"strings"

	"github.com/gosimple/slug"
)

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// SlugFileName turns a display name into a lowercase ASCII file name with
// the given extension. Names with nothing usable fall back to "resume".
func SlugFileName(name, ext string) string {
	base := slug.Make(name)
	if base == "" {
		base = "resume"
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return base
	}
	return base + "." + ext
}
