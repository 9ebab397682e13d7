// Package walk enumerates the regular files reachable from a root path.
//
// Directories are visited with an explicit work stack rather than recursion,
// so tree depth is bounded by memory, not by the goroutine stack. Entries are
// read with os.ReadDir, which closes the directory before returning; at most
// one directory handle is open at any time.
package walk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/yaklabco/wordfreq/pkg/fsutil"
)

// File is a regular file discovered during a walk.
type File struct {
	// Path is the file path, joined onto the root as given.
	Path string

	// Info describes the file. For a followed symlink it describes the target.
	// Nil when the File accompanies an error.
	Info fs.FileInfo
}

// Options controls traversal.
type Options struct {
	// FollowSymlinks traverses symlinks to directories as those directories
	// and treats symlinks to regular files as regular files.
	// When false, symlinks are skipped.
	FollowSymlinks bool

	// Ignore holds glob patterns matched against slash-separated paths
	// relative to the root. Matching directories are not entered and
	// matching files are not visited.
	Ignore []string
}

// WalkFunc is called once per regular file, and once per entry that could
// not be examined. In the latter case err is non-nil (an *fsutil.IOError or
// a *LoopError) and file carries only the path.
//
// Returning nil continues the walk, skipping the failed entry or subtree.
// Returning fs.SkipAll stops the walk without error. Any other error stops
// the walk and is returned by Walk.
type WalkFunc func(file File, err error) error

// LoopError reports a symlinked directory that resolves to one of its own
// ancestors.
type LoopError struct {
	// Path is the symlink path that closes the loop.
	Path string
	// Ancestor is the directory it resolves to.
	Ancestor string
}

func (e *LoopError) Error() string {
	return fmt.Sprintf("filesystem loop: %s points to ancestor %s", e.Path, e.Ancestor)
}

// dirJob is a directory waiting on the work stack.
type dirJob struct {
	path string
	rel  string

	// ancestors holds the chain from the root down to and including this
	// directory. Only tracked when following symlinks.
	ancestors []ancestor
}

type ancestor struct {
	path string
	info fs.FileInfo
}

// Walk visits every regular file reachable from root, calling fn for each.
//
// A root that is a regular file is visited directly. A root that is a
// directory is enumerated depth-first in lexical order. The root itself is
// always resolved through symlinks. Other entry types (devices, sockets,
// FIFOs, and symlinks when not following) are skipped silently.
func Walk(ctx context.Context, root string, opts Options, fn WalkFunc) error {
	info, err := os.Stat(root)
	if err != nil {
		return done(fn(File{Path: root}, fsutil.NewIOError("stat", root, err)))
	}

	if info.Mode().IsRegular() {
		return done(fn(File{Path: root, Info: info}, nil))
	}

	if !info.IsDir() {
		return nil
	}

	walker := &walker{opts: opts, fn: fn}

	stack := []dirJob{{path: root, rel: "."}}
	if opts.FollowSymlinks {
		stack[0].ancestors = []ancestor{{path: root, info: info}}
	}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("walk %s: %w", root, err)
		}

		job := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		subdirs, err := walker.visitDir(ctx, job)
		if err != nil {
			return done(err)
		}

		// Push in reverse so the lexically first subdirectory is popped next.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	return nil
}

// done maps the callback's stop signal onto Walk's return value.
func done(err error) error {
	if errors.Is(err, fs.SkipAll) {
		return nil
	}
	return err
}

type walker struct {
	opts Options
	fn   WalkFunc
}

// visitDir reads one directory, visits its files, and returns its
// subdirectories in lexical order. A non-nil error stops the walk.
func (w *walker) visitDir(ctx context.Context, job dirJob) ([]dirJob, error) {
	entries, err := os.ReadDir(job.path)
	if err != nil {
		return nil, w.fn(File{Path: job.path}, fsutil.NewIOError("readdir", job.path, err))
	}

	var subdirs []dirJob

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("walk %s: %w", job.path, err)
		}

		name := entry.Name()
		path := filepath.Join(job.path, name)
		rel := joinRel(job.rel, name)

		if matchesAny(rel, w.opts.Ignore) {
			continue
		}

		typ := entry.Type()

		switch {
		case typ.IsDir():
			sub, err := w.subdir(job, path, rel, entry.Info)
			if err != nil {
				return nil, err
			}
			if sub != nil {
				subdirs = append(subdirs, *sub)
			}

		case typ.IsRegular():
			info, err := entry.Info()
			if err != nil {
				if cbErr := w.fn(File{Path: path}, fsutil.NewIOError("stat", path, err)); cbErr != nil {
					return nil, cbErr
				}
				continue
			}
			if err := w.fn(File{Path: path, Info: info}, nil); err != nil {
				return nil, err
			}

		case typ&fs.ModeSymlink != 0:
			if !w.opts.FollowSymlinks {
				continue
			}
			sub, err := w.symlink(job, path, rel)
			if err != nil {
				return nil, err
			}
			if sub != nil {
				subdirs = append(subdirs, *sub)
			}
		}
	}

	return subdirs, nil
}

// symlink resolves a symlink entry. Targets that are regular files are
// visited immediately; targets that are directories are returned for the
// work stack.
func (w *walker) symlink(parent dirJob, path, rel string) (*dirJob, error) {
	target, err := os.Stat(path)
	if err != nil {
		return nil, w.fn(File{Path: path}, fsutil.NewIOError("resolve", path, err))
	}

	switch {
	case target.Mode().IsRegular():
		return nil, w.fn(File{Path: path, Info: target}, nil)
	case target.IsDir():
		return w.subdir(parent, path, rel, func() (fs.FileInfo, error) { return target, nil })
	default:
		return nil, nil
	}
}

// subdir builds the work item for a directory entry, checking for loops
// when following symlinks. A nil job with a nil error means the entry was
// reported and skipped.
func (w *walker) subdir(
	parent dirJob,
	path, rel string,
	stat func() (fs.FileInfo, error),
) (*dirJob, error) {
	job := &dirJob{path: path, rel: rel}

	if !w.opts.FollowSymlinks {
		return job, nil
	}

	info, err := stat()
	if err != nil {
		return nil, w.fn(File{Path: path}, fsutil.NewIOError("stat", path, err))
	}

	for _, anc := range parent.ancestors {
		if os.SameFile(anc.info, info) {
			return nil, w.fn(File{Path: path}, &LoopError{Path: path, Ancestor: anc.path})
		}
	}

	job.ancestors = append(slices.Clip(parent.ancestors), ancestor{path: path, info: info})

	return job, nil
}

// joinRel joins a slash-separated relative path.
func joinRel(dir, name string) string {
	if dir == "." {
		return name
	}
	return dir + "/" + name
}
