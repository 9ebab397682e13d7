package fsutil

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// minGrowth is the smallest capacity allocated when a file outgrows the size
// it reported before reading.
const minGrowth = 512

// errOverLimit is the cause reported when a size exceeds Buffer.Limit.
var errOverLimit = errors.New("size exceeds buffer limit")

// Buffer is a reusable content buffer holding one file's bytes at a time.
//
// Reset sizes the buffer to exactly the next file's length instead of
// relying on amortized growth, so peak memory tracks the current file and
// bytes from a previous file are never visible through Bytes.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	// Limit caps the capacity the buffer may take, in bytes.
	// Sizes above it fail with ErrAllocation. Zero means no limit.
	Limit int64

	data []byte
}

// NewBuffer returns an empty Buffer with the given limit.
func NewBuffer(limit int64) *Buffer {
	return &Buffer{Limit: limit}
}

// Bytes returns the content read since the last Reset.
// The slice aliases the buffer and is only valid until the next Reset.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of content bytes held.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap returns the current capacity.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Truncate discards the content while keeping the capacity.
func (b *Buffer) Truncate() {
	b.data = b.data[:0]
}

// Reset clears the content and sets the capacity to exactly size bytes.
//
// When the allocation fails the capacity is left as it was by the failed
// attempt, then shrunk to half as pressure relief, and an error wrapping
// ErrAllocation is returned. A runtime out-of-memory condition is fatal in
// Go; Limit is the recoverable bound.
func (b *Buffer) Reset(size int64) error {
	b.data = b.data[:0]

	if size < 0 {
		size = 0
	}

	if b.Limit > 0 && size > b.Limit {
		return b.fail(size, errOverLimit)
	}

	if size > math.MaxInt {
		return b.fail(size, fmt.Errorf("size %d exceeds address space", size))
	}

	if int64(cap(b.data)) == size {
		return nil
	}

	data, err := allocate(int(size))
	if err != nil {
		return b.fail(size, err)
	}
	b.data = data

	return nil
}

// ReadFrom appends everything r yields until EOF.
//
// The capacity set by Reset is filled first. Reaching it triggers a one-byte
// read that tells an exact fit apart from a file that grew since it was
// sized; only the latter grows the buffer.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64

	for {
		if len(b.data) == cap(b.data) {
			var extra [1]byte

			n, err := r.Read(extra[:])
			if n > 0 {
				if growErr := b.grow(); growErr != nil {
					return total, growErr
				}
				b.data = append(b.data, extra[0])
				total++
			}

			if errors.Is(err, io.EOF) {
				return total, nil
			}
			if err != nil {
				return total, err
			}

			continue
		}

		n, err := r.Read(b.data[len(b.data):cap(b.data)])
		b.data = b.data[:len(b.data)+n]
		total += int64(n)

		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// grow doubles the capacity, bounded by Limit, keeping the content.
func (b *Buffer) grow() error {
	needed := int64(len(b.data)) + 1
	next := max(int64(cap(b.data))*2, minGrowth)

	if b.Limit > 0 {
		if needed > b.Limit {
			return b.fail(needed, errOverLimit)
		}
		next = min(next, b.Limit)
	}

	if next > math.MaxInt {
		return b.fail(next, fmt.Errorf("size %d exceeds address space", next))
	}

	data, err := allocate(int(next))
	if err != nil {
		return b.fail(next, err)
	}
	b.data = append(data, b.data...)

	return nil
}

// fail shrinks the buffer to half its capacity and reports the failure.
func (b *Buffer) fail(size int64, cause error) error {
	prev := cap(b.data)
	b.shrink((prev + 1) / 2)
	return fmt.Errorf("%w: reserve %d bytes (capacity %d): %w", ErrAllocation, size, prev, cause)
}

// shrink replaces the backing array with an empty one of capacity n.
func (b *Buffer) shrink(n int) {
	if n == 0 {
		b.data = nil
		return
	}

	data, err := allocate(n)
	if err != nil {
		b.data = nil
		return
	}
	b.data = data
}

// allocate makes an empty slice with capacity n, converting the runtime
// panic for impossible sizes into an error.
func allocate(n int) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = rerr
				return
			}
			err = fmt.Errorf("allocate %d bytes: %v", n, r)
		}
	}()

	return make([]byte, 0, n), nil
}
