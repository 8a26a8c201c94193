// Package storage stages uploaded statement documents on disk. Staged files
// live only for the duration of the extraction request; a periodic sweep
// removes anything a crashed request left behind.
package storage

import (
	"io"
	"time"
)

// Store stages uploaded documents for processing.
type Store interface {
	// Stage writes the stream to scratch space and returns the staged path.
	// The caller owns the file and removes it when done.
	Stage(filename string, r io.Reader) (string, error)

	// Remove deletes a staged file. Removing an already-gone file is not an
	// error.
	Remove(path string) error

	// SweepOlderThan removes staged files older than maxAge and reports how
	// many were deleted.
	SweepOlderThan(maxAge time.Duration) (int, error)
}
