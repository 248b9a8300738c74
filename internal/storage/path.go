package storage

import (
	"fmt"
	"strings"

	"github.com/apkship/apkship/internal/errors"
)

// FolderPath is an ordered list of folder names describing a nested remote
// directory location, root to leaf (e.g. ["Apk", "MyApp", "2026-08-25"]).
// A FolderPath is immutable once constructed.
type FolderPath []string

// NewFolderPath validates the given segments and returns them as a FolderPath.
// The path must contain at least one segment and no segment may be empty or
// contain a path separator.
func NewFolderPath(segments ...string) (FolderPath, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("empty path: %w", errors.ErrInvalidPath)
	}
	for _, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("empty path segment: %w", errors.ErrInvalidPath)
		}
		if strings.Contains(s, "/") {
			return nil, fmt.Errorf("path segment %q contains '/': %w", s, errors.ErrInvalidPath)
		}
		if s == "." || s == ".." {
			return nil, fmt.Errorf("relative path components are not allowed: %w", errors.ErrInvalidPath)
		}
	}
	path := make(FolderPath, len(segments))
	copy(path, segments)
	return path, nil
}

// ParseFolderPath splits a slash-separated absolute path (e.g. "/Apk/MyApp")
// into a FolderPath. Relative path components like "." and ".." are not allowed.
func ParseFolderPath(path string) (FolderPath, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path: %w", errors.ErrInvalidPath)
	}
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("path must be absolute and start with '/': %w", errors.ErrInvalidPath)
	}

	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p == "." || p == ".." {
			return nil, fmt.Errorf("relative path components are not allowed: %w", errors.ErrInvalidPath)
		}
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("path has no segments: %w", errors.ErrInvalidPath)
	}
	return FolderPath(parts), nil
}

// String renders the path as a slash-separated absolute path.
func (p FolderPath) String() string {
	return "/" + strings.Join(p, "/")
}
