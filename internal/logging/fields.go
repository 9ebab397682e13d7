// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOp         = "op"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Counting options.
	FieldPattern        = "pattern"
	FieldSort           = "sort"
	FieldFollowSymlinks = "follow_symlinks"
	FieldFormat         = "format"
	FieldJobs           = "jobs"
	FieldMaxBufferBytes = "max_buffer_bytes"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesErrored    = "files_errored"
	FieldEntriesErrored  = "entries_errored"
	FieldTokens          = "tokens"
	FieldDistinct        = "distinct"
	FieldBytesRead       = "bytes_read"
	FieldBufferCap       = "buffer_cap"
	FieldAborted         = "aborted"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
