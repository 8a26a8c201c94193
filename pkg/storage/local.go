package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Local stages files in a directory on the local filesystem. Staged names are
// random, so concurrent uploads of the same statement never collide.
type Local struct {
	dir string
}

// NewLocal creates the staging directory if needed and returns a store over it.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir %s: %w", dir, err)
	}
	return &Local{dir: dir}, nil
}

// Dir returns the staging directory path.
func (l *Local) Dir() string { return l.dir }

// Stage writes the stream to a new file in the staging directory. Only the
// original extension survives into the staged name.
func (l *Local) Stage(filename string, r io.Reader) (string, error) {
	path := filepath.Join(l.dir, uuid.NewString()+filepath.Ext(filename))

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("stage upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("stage upload: %w", err)
	}
	return path, nil
}

// Remove deletes a staged file.
func (l *Local) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove staged file: %w", err)
	}
	return nil
}

// SweepOlderThan removes staged files whose modification time is older than
// maxAge.
func (l *Local) SweepOlderThan(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return 0, fmt.Errorf("read staging dir: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(l.dir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

var _ Store = (*Local)(nil)
