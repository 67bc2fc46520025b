// Package upload persists profile images outside the relational store.
// Files are written under generated names so client-supplied filenames never
// touch the filesystem: no collisions between users, no path traversal.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedExtension reports a filename whose extension is outside the
// allowed set.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

type Store struct {
	dir     string
	allowed map[string]struct{}
}

// NewStore creates the upload directory if needed. allowedExts are compared
// case-insensitively and without the leading dot ("png", "jpg", "jpeg").
func NewStore(dir string, allowedExts []string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}
	allowed := make(map[string]struct{}, len(allowedExts))
	for _, ext := range allowedExts {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return &Store{dir: dir, allowed: allowed}, nil
}

// Ext extracts the extension of a client filename, lowercased and without
// the dot. Returns ErrUnsupportedExtension when the extension is missing or
// not in the allowed set.
func (s *Store) Ext(filename string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	if ext == "" {
		return "", ErrUnsupportedExtension
	}
	if _, ok := s.allowed[ext]; !ok {
		return "", ErrUnsupportedExtension
	}
	return ext, nil
}

// Save validates the extension of origName, then streams r into a freshly
// generated file and returns its name.
func (s *Store) Save(userID uint, origName string, r io.Reader) (string, error) {
	ext, err := s.Ext(origName)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("u%d_%s.%s", userID, uuid.NewString(), ext)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file failed: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file failed: %w", err)
	}
	return name, nil
}

// Remove deletes a previously stored file. A missing file is not an error.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	// Stored names are generated by Save, but re-base anyway.
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload file failed: %w", err)
	}
	return nil
}

// Path returns the on-disk location of a stored file.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Dir returns the upload directory, used to serve files statically.
func (s *Store) Dir() string {
	return s.dir
}
