package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

type LocalBackend struct {
	root      string
	urlPrefix string
}

// NewLocalBackend stores files under root. urlPrefix is where the HTTP layer
// serves root from, e.g. "/media".
func NewLocalBackend(root, urlPrefix string) (*LocalBackend, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalBackend{root: root, urlPrefix: urlPrefix}, nil
}

func (b *LocalBackend) Put(_ context.Context, key string, data []byte, _ string) error {
	full := filepath.Join(b.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	tmp := full + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (b *LocalBackend) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.Join(b.root, filepath.FromSlash(key)))
}

func (b *LocalBackend) URL(key string) string {
	return path.Join(b.urlPrefix, key)
}

func (b *LocalBackend) Root() string {
	return b.root
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
