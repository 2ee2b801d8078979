package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is where uploaded question images live. Stored paths follow the
// /uploads/<generated-name>.<ext> convention regardless of backend, so records
// stay valid when the backend changes.
type Store interface {
	// Save writes the file and returns its public path.
	Save(name string, data []byte, contentType string) (string, error)
	ReadFile(path string) ([]byte, error)
	Remove(path string) error
}

// DiskStore keeps uploads in a local directory served at /uploads.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating upload directory: %v", err)
	}
	return &DiskStore{Dir: dir}, nil
}

func (s *DiskStore) Save(name string, data []byte, contentType string) (string, error) {
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("error writing upload: %v", err)
	}
	return "/uploads/" + name, nil
}

func (s *DiskStore) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, fileName(path)))
}

func (s *DiskStore) Remove(path string) error {
	err := os.Remove(filepath.Join(s.Dir, fileName(path)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// fileName maps a stored public path back to the bare file name.
func fileName(path string) string {
	return strings.TrimPrefix(strings.TrimPrefix(path, "/uploads/"), "uploads/")
}
