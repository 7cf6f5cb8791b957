package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Storage reads user documents in place and relocates them for the sorter.
type Storage struct{}

func New() *Storage {
	return &Storage{}
}

func (s *Storage) ReadFile(_ context.Context, path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// List returns the regular files directly inside dir, sorted by name.
func (s *Storage) List(_ context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Move places src inside dstDir, creating it when needed, and returns the new path.
func (s *Storage) Move(_ context.Context, src, dstDir string) (string, error) {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", fmt.Errorf("create target dir: %w", err)
	}
	dst := filepath.Join(dstDir, filepath.Base(src))
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("target %s already exists", dst)
	}

	err := os.Rename(src, dst)
	if err == nil {
		return dst, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("move file: %w", err)
	}

	// Rename fails across devices; fall back to copy and remove.
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("move file: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return "", fmt.Errorf("remove source after copy: %w", err)
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("write target: %w", err)
	}
	return out.Close()
}
