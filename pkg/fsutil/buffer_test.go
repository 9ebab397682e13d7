package fsutil_test

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wordfreq/pkg/fsutil"
)

func TestBuffer_ResetExactCapacity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int64
		want int
	}{
		{name: "zero", size: 0, want: 0},
		{name: "small", size: 10, want: 10},
		{name: "odd", size: 4097, want: 4097},
		{name: "negative treated as zero", size: -5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := fsutil.NewBuffer(0)
			require.NoError(t, buf.Reset(tt.size))
			assert.Equal(t, tt.want, buf.Cap())
			assert.Equal(t, 0, buf.Len())
		})
	}
}

func TestBuffer_ResetShrinksToNextSize(t *testing.T) {
	t.Parallel()

	buf := fsutil.NewBuffer(0)
	require.NoError(t, buf.Reset(100))
	_, err := buf.ReadFrom(strings.NewReader(strings.Repeat("a", 100)))
	require.NoError(t, err)

	require.NoError(t, buf.Reset(10))
	assert.Equal(t, 10, buf.Cap(), "capacity must not be retained from a larger file")
	assert.Empty(t, buf.Bytes())
}

func TestBuffer_ResetReusesSameSize(t *testing.T) {
	t.Parallel()

	buf := fsutil.NewBuffer(0)
	require.NoError(t, buf.Reset(8))
	_, err := buf.ReadFrom(strings.NewReader("12345678"))
	require.NoError(t, err)
	first := &buf.Bytes()[0]

	require.NoError(t, buf.Reset(8))
	_, err = buf.ReadFrom(strings.NewReader("abcdefgh"))
	require.NoError(t, err)

	assert.Same(t, first, &buf.Bytes()[0])
	assert.Equal(t, "abcdefgh", string(buf.Bytes()))
}

func TestBuffer_ResetOverLimit(t *testing.T) {
	t.Parallel()

	buf := fsutil.NewBuffer(64)
	require.NoError(t, buf.Reset(64))
	require.Equal(t, 64, buf.Cap())

	err := buf.Reset(65)
	require.ErrorIs(t, err, fsutil.ErrAllocation)
	assert.Equal(t, 32, buf.Cap(), "capacity is halved after a failed reservation")
	assert.Equal(t, 0, buf.Len())
}

func TestBuffer_ResetImpossibleSize(t *testing.T) {
	t.Parallel()

	buf := fsutil.NewBuffer(0)
	require.NoError(t, buf.Reset(7))

	err := buf.Reset(math.MaxInt64)
	require.ErrorIs(t, err, fsutil.ErrAllocation)
	assert.Equal(t, 4, buf.Cap())
}

func TestBuffer_ResetFailureOnEmptyBuffer(t *testing.T) {
	t.Parallel()

	buf := fsutil.NewBuffer(1)
	err := buf.Reset(2)
	require.ErrorIs(t, err, fsutil.ErrAllocation)
	assert.Equal(t, 0, buf.Cap())
}

func TestBuffer_ReadFromExactFit(t *testing.T) {
	t.Parallel()

	buf := fsutil.NewBuffer(0)
	require.NoError(t, buf.Reset(5))

	n, err := buf.ReadFrom(strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, "hello", string(buf.Bytes()))
	assert.Equal(t, 5, buf.Cap(), "exact fit must not grow")
}

func TestBuffer_ReadFromGrowsWhenContentExceedsSize(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("xyz", 400)
	buf := fsutil.NewBuffer(0)
	require.NoError(t, buf.Reset(3))

	n, err := buf.ReadFrom(iotest.OneByteReader(strings.NewReader(content)))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)
	assert.Equal(t, content, string(buf.Bytes()))
}

func TestBuffer_ReadFromGrowthRespectsLimit(t *testing.T) {
	t.Parallel()

	buf := fsutil.NewBuffer(16)
	require.NoError(t, buf.Reset(4))

	_, err := buf.ReadFrom(strings.NewReader(strings.Repeat("a", 17)))
	require.ErrorIs(t, err, fsutil.ErrAllocation)
}

func TestBuffer_ReadFromError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	buf := fsutil.NewBuffer(0)
	require.NoError(t, buf.Reset(10))

	_, err := buf.ReadFrom(io.MultiReader(strings.NewReader("abc"), iotest.ErrReader(boom)))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "abc", string(buf.Bytes()))
}

func TestBuffer_Truncate(t *testing.T) {
	t.Parallel()

	buf := fsutil.NewBuffer(0)
	require.NoError(t, buf.Reset(3))
	_, err := buf.ReadFrom(strings.NewReader("abc"))
	require.NoError(t, err)

	buf.Truncate()
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, 3, buf.Cap())
}
