package runner

import "github.com/yaklabco/wordfreq/pkg/tally"

// Stats captures counters for one input path or a whole run.
type Stats struct {
	// FilesDiscovered is the number of regular files the walker yielded.
	FilesDiscovered int

	// FilesProcessed is the number of files read and scanned.
	FilesProcessed int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// EntriesErrored is the number of traversal failures (unreadable
	// directories, failed stats, unresolvable symlinks, loops).
	EntriesErrored int

	// Tokens is the total number of token occurrences counted.
	Tokens uint64

	// Distinct is the number of distinct tokens. For a whole run it is the
	// sum of per-path values.
	Distinct int

	// BytesRead is the number of content bytes scanned.
	BytesRead int64
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.FilesDiscovered += other.FilesDiscovered
	s.FilesProcessed += other.FilesProcessed
	s.FilesErrored += other.FilesErrored
	s.EntriesErrored += other.EntriesErrored
	s.Tokens += other.Tokens
	s.Distinct += other.Distinct
	s.BytesRead += other.BytesRead
}

// PathResult is the outcome of one input path.
type PathResult struct {
	// Path is the input path as given.
	Path string

	// Table holds the token counts. It is nil once the result has been
	// emitted and recorded in a Result.
	Table *tally.Table

	// Stats contains counters for this path.
	Stats Stats

	// Aborted is set when an allocation failure stopped the path early.
	// Aborted paths are not emitted.
	Aborted bool

	// Err is the error that aborted the path, if any.
	Err error
}

// Result is the overall runner result.
type Result struct {
	// Paths contains the outcome of each input path, in input order,
	// without their tables.
	Paths []PathResult

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// Aborted returns the input paths that were stopped by an allocation failure.
func (r *Result) Aborted() []string {
	if r == nil {
		return nil
	}

	var paths []string
	for _, p := range r.Paths {
		if p.Aborted {
			paths = append(paths, p.Path)
		}
	}
	return paths
}

// HasErrors reports whether any entry, file, or path failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.EntriesErrored > 0 || len(r.Aborted()) > 0
}

// accumulate records a finished path, dropping its table.
func (r *Result) accumulate(pr PathResult) {
	pr.Table = nil
	r.Paths = append(r.Paths, pr)
	r.Stats.Add(pr.Stats)
}
