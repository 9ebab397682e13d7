// Package runner counts tokens across input paths, one fresh frequency
// table per path.
package runner

import (
	"github.com/yaklabco/wordfreq/pkg/walk"
)

// EmitFunc receives each completed input path, in input order.
// A non-nil return stops the run.
type EmitFunc func(result PathResult) error

// ErrorFunc receives per-entry failures. path is the input path being
// processed; err carries the failing entry.
type ErrorFunc func(path string, err error)

// Options controls a counting run.
type Options struct {
	// Paths are the input paths (files or directories) to process, in order.
	// If empty, defaults to the current working directory.
	Paths []string

	// Walk controls traversal (symlinks, ignore globs).
	Walk walk.Options

	// MaxBufferBytes caps the per-path content buffer. 0 means no cap.
	MaxBufferBytes int64

	// Jobs is the number of input paths processed concurrently.
	// 0 or 1 processes paths one at a time.
	Jobs int

	// Emit receives each completed path. Required.
	Emit EmitFunc

	// OnError receives per-entry errors. Nil discards them.
	OnError ErrorFunc
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) reportError(path string, err error) {
	if o.OnError != nil {
		o.OnError(path, err)
	}
}
