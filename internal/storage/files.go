package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists uploaded attachments flat under one directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Save writes content under the base name of the supplied filename and
// returns the stored path. The name is flattened to its final path
// element so a crafted filename cannot escape the upload directory.
// A repeated name silently overwrites the previous upload.
func (s *FileStore) Save(filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", errors.New("file data is empty")
	}

	name := filepath.Base(filepath.Clean(strings.TrimSpace(filename)))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename %q", filename)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
