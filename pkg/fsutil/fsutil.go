// Package fsutil reads file content into a reusable, exactly sized buffer.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ReadInto reads the whole file at path into buf, replacing its content.
//
// The buffer is sized from the open handle's metadata; when the size cannot
// be determined it is treated as zero and the buffer grows while reading.
// Errors opening or reading the file are returned as *IOError and leave buf
// empty. Errors sizing the buffer wrap ErrAllocation.
func ReadInto(ctx context.Context, path string, buf *Buffer) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		buf.Truncate()
		return NewIOError("open", path, err)
	}
	defer func() { _ = file.Close() }()

	var size int64
	if info, statErr := file.Stat(); statErr == nil {
		size = info.Size()
	}

	if err := buf.Reset(size); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if _, err := buf.ReadFrom(file); err != nil {
		buf.Truncate()
		if errors.Is(err, ErrAllocation) {
			return fmt.Errorf("%s: %w", path, err)
		}
		return NewIOError("read", path, err)
	}

	return nil
}
