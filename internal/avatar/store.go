// Package avatar stores uploaded avatar images on local disk and
// serves them back by URL.
package avatar

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the path avatars are served under by the router.
const URLPrefix = "/static/avatars/"

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// Store writes avatar images into a base directory.
type Store struct {
	dir string
}

// NewStore ensures the base directory exists and returns the store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create avatar directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the base directory, for the router's file server.
func (s *Store) Dir() string { return s.dir }

// Save stores the image under a fresh name and returns the URL it
// will be served under. The original file name only contributes its
// extension, which must be a known image type.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported avatar file type %q", ext)
	}

	name := uuid.New().String() + ext
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write avatar file: %w", err)
	}
	return URLPrefix + name, nil
}
