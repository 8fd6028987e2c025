package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalStore writes under root and serves files from baseURL.
type LocalStore struct {
	root    string
	baseURL string
	log     *zap.Logger
}

func NewLocalStore(root, baseURL string, log *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", root, err)
	}
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log.With(zap.String("storage", "local")),
	}, nil
}

// Root is the directory served under /storage.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Save(_ context.Context, folder, ext string, data []byte) (*StoredFile, error) {
	dir := filepath.Join(s.root, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create folder %s: %w", folder, err)
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		s.log.Error("Failed to write file", zap.Error(err), zap.String("folder", folder))
		return nil, fmt.Errorf("write %s/%s: %w", folder, name, err)
	}

	key := path.Join(folder, name)
	return &StoredFile{Key: key, URL: s.URL(key)}, nil
}

func (s *LocalStore) URL(key string) string {
	if isAbsoluteURL(key) {
		return key
	}
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}

// Delete ignores files that are already gone.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	if key == "" || isAbsoluteURL(key) {
		return nil
	}
	clean := path.Clean("/" + key)
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
