// Package fsblob implements the blobstore port on the local filesystem.
// Uploaded logos land under a configured root directory and are served
// back through the HTTP static file route under /uploads/.
package fsblob

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// extByType maps accepted image content types to file extensions. The
// upload service has already vetted the type; anything else falls back
// to the extension of the original file name.
var extByType = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// Store writes objects to a directory on disk.
type Store struct {
	root    string
	baseURL string
}

// New creates a filesystem blob store rooted at dir. baseURL is the URL
// prefix under which the directory is served, e.g. "/uploads".
func New(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &Store{root: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Put stores data under a fresh random name and returns its URL. The
// original name only contributes its extension when the content type is
// unknown, so caller-supplied paths can never escape the root.
func (s *Store) Put(_ context.Context, name, contentType string, data []byte) (string, error) {
	ext, ok := extByType[contentType]
	if !ok {
		ext = strings.ToLower(filepath.Ext(filepath.Base(name)))
	}
	objName := uuid.NewString() + ext

	dst := filepath.Join(s.root, objName)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob %s: %w", objName, err)
	}
	return s.baseURL + path.Join("/", objName), nil
}

// Dir returns the root directory, for wiring the static file route.
func (s *Store) Dir() string {
	return s.root
}
