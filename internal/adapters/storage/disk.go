package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/ports"
)

// DiskStorage writes media blobs under a root directory and serves them back
// as /media/... URLs. It stands in for an external blob store behind the
// MediaStorage port.
type DiskStorage struct {
	root string
}

func NewDiskStorage(root string) (*DiskStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &DiskStorage{root: root}, nil
}

func (s *DiskStorage) Save(ctx context.Context, kind, name string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	// Client-supplied names are untrusted; only the extension survives.
	fileName := uuid.New().String() + strings.ToLower(filepath.Ext(name))
	path := filepath.Join(dir, fileName)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}

	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close media file: %w", err)
	}

	return "/media/" + kind + "/" + fileName, nil
}

func (s *DiskStorage) Remove(ctx context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, "/media/")
	if !ok {
		return fmt.Errorf("unexpected media url: %s", url)
	}

	path := filepath.Join(s.root, filepath.FromSlash(rel))
	if !strings.HasPrefix(path, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return fmt.Errorf("media url escapes storage root: %s", url)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove media file: %w", err)
	}
	return nil
}

var _ ports.MediaStorage = (*DiskStorage)(nil)
