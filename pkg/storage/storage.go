package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/komodohub/internal/domain"
)

const (
	prefix        = "uploads"
	removeWorkers = 4
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

var ErrInvalidPath = errors.New("invalid storage path")

// Backend is where stored bytes end up. Delete must return an error wrapping
// fs.ErrNotExist for a missing key.
type Backend interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

type FileStorage struct {
	backend Backend
	maxSize int64
	now     func() time.Time
	newID   func() string
}

func New(backend Backend, maxSize int64) *FileStorage {
	return &FileStorage{
		backend: backend,
		maxSize: maxSize,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
}

// Store checks the upload's type and size and saves it under
// uploads/YYYY/MM/<uuid><ext>. The returned path is relative to the backend.
// The content type is sniffed from the bytes; a declared type that disagrees
// with them is rejected.
func (s *FileStorage) Store(ctx context.Context, data []byte, declaredMime, filename string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file %q", domain.ErrValidation, filename)
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return "", fmt.Errorf("%w: %q is %d bytes, limit %d", domain.ErrTooLarge, filename, len(data), s.maxSize)
	}

	detected := mimetype.Detect(data).String()
	ext, ok := allowedTypes[detected]
	if !ok {
		return "", fmt.Errorf("%w: %q is %s", domain.ErrUnsupportedType, filename, detected)
	}
	if declared := normalizeMime(declaredMime); declared != "" && declared != detected {
		return "", fmt.Errorf("%w: %q declared %s but is %s", domain.ErrUnsupportedType, filename, declared, detected)
	}

	now := s.now().UTC()
	key := path.Join(prefix, now.Format("2006"), now.Format("01"), s.newID()+ext)
	if err := s.backend.Put(ctx, key, data, detected); err != nil {
		zap.L().Error("failed to store upload", zap.String("file", filename), zap.Error(err))
		return "", fmt.Errorf("can't store %q: %w", filename, err)
	}
	return key, nil
}

// Remove deletes a stored file. It reports whether something was removed and
// never fails: a missing file or a path outside the upload area is a no-op.
func (s *FileStorage) Remove(ctx context.Context, p string) bool {
	key, err := cleanKey(p)
	if err != nil {
		zap.L().Warn("refusing to remove file", zap.String("path", p), zap.Error(err))
		return false
	}
	if err := s.backend.Delete(ctx, key); err != nil {
		if !isNotExist(err) {
			zap.L().Warn("failed to remove file", zap.String("path", key), zap.Error(err))
		}
		return false
	}
	return true
}

// RemoveAll removes paths concurrently and returns how many were removed.
func (s *FileStorage) RemoveAll(ctx context.Context, paths []string) int {
	removed := make([]bool, len(paths))
	var g errgroup.Group
	g.SetLimit(removeWorkers)
	for i, p := range paths {
		g.Go(func() error {
			removed[i] = s.Remove(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	n := 0
	for _, ok := range removed {
		if ok {
			n++
		}
	}
	return n
}

func (s *FileStorage) URL(p string) string {
	return s.backend.URL(p)
}

func normalizeMime(m string) string {
	m = strings.ToLower(strings.TrimSpace(m))
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	if m == "image/jpg" || m == "image/pjpeg" {
		return "image/jpeg"
	}
	return m
}

func cleanKey(p string) (string, error) {
	p = strings.TrimPrefix(strings.TrimSpace(p), "/")
	if p == "" {
		return "", ErrInvalidPath
	}
	clean := path.Clean(p)
	if clean != p || !strings.HasPrefix(clean, prefix+"/") {
		return "", ErrInvalidPath
	}
	return clean, nil
}
