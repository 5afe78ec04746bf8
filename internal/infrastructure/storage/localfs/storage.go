package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrArtifactNotFound = errors.New("artifact not found")

// Storage serves model artifacts from a local directory.
type Storage struct {
	basePath string
}

func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "./artifacts"
	}
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("stat artifact dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("artifact dir %s is not a directory", basePath)
	}
	return &Storage{basePath: basePath}, nil
}

func (s *Storage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if !filepath.IsLocal(key) {
		return nil, fmt.Errorf("artifact key %q escapes %s", key, s.basePath)
	}
	path := filepath.Join(s.basePath, key)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

func (s *Storage) String() string {
	return "file://" + s.basePath
}
