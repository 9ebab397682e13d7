package walk_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wordfreq/pkg/fsutil"
	"github.com/yaklabco/wordfreq/pkg/walk"
)

// collector records visited files (relative to root) and reported errors.
type collector struct {
	root  string
	files []string
	errs  []error
}

func (c *collector) visit(file walk.File, err error) error {
	if err != nil {
		c.errs = append(c.errs, err)
		return nil
	}
	rel, relErr := filepath.Rel(c.root, file.Path)
	if relErr != nil {
		rel = file.Path
	}
	c.files = append(c.files, filepath.ToSlash(rel))
	return nil
}

// makeTree creates files (with content "x") under root. Paths ending in "/"
// create empty directories.
func makeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0644))
	}
}

func run(t *testing.T, root string, opts walk.Options) *collector {
	t.Helper()
	c := &collector{root: root}
	require.NoError(t, walk.Walk(context.Background(), root, opts, c.visit))
	return c
}

func TestWalk_RootFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "only.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0644))

	var got []walk.File
	err := walk.Walk(context.Background(), path, walk.Options{}, func(file walk.File, err error) error {
		require.NoError(t, err)
		got = append(got, file)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, path, got[0].Path)
	assert.Equal(t, int64(2), got[0].Info.Size())
}

func TestWalk_MissingRoot(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "missing")
	c := run(t, root, walk.Options{})

	assert.Empty(t, c.files)
	require.Len(t, c.errs, 1)

	var ioErr *fsutil.IOError
	require.ErrorAs(t, c.errs[0], &ioErr)
	assert.Equal(t, "stat", ioErr.Op)
	assert.ErrorIs(t, c.errs[0], fsutil.ErrNotFound)
}

func TestWalk_Tree(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	makeTree(t, root, "a.txt", "z.txt", "b/c.txt", "b/d/e.txt", "empty/")

	c := run(t, root, walk.Options{})

	assert.Empty(t, c.errs)
	assert.Equal(t, []string{"a.txt", "z.txt", "b/c.txt", "b/d/e.txt"}, c.files)
}

func TestWalk_HiddenFilesIncluded(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	makeTree(t, root, ".hidden", ".git/config", "visible")

	c := run(t, root, walk.Options{})
	assert.ElementsMatch(t, []string{".hidden", ".git/config", "visible"}, c.files)
}

func TestWalk_DeepTree(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	deep := strings.Repeat("d/", 200) + "leaf.txt"
	makeTree(t, root, deep)

	c := run(t, root, walk.Options{})
	assert.Equal(t, []string{deep}, c.files)
}

func TestWalk_UnreadableDirectory(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	root := t.TempDir()
	makeTree(t, root, "one.txt", "two.txt", "three.txt", "locked/inner.txt")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	c := run(t, root, walk.Options{})

	assert.ElementsMatch(t, []string{"one.txt", "two.txt", "three.txt"}, c.files)
	require.Len(t, c.errs, 1)

	var ioErr *fsutil.IOError
	require.ErrorAs(t, c.errs[0], &ioErr)
	assert.Equal(t, "readdir", ioErr.Op)
	assert.Equal(t, locked, ioErr.Path)
	assert.ErrorIs(t, c.errs[0], fsutil.ErrPermissionDenied)
}

func TestWalk_Symlinks(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	makeTree(t, outside, "target.txt", "dir/inner.txt")

	root := t.TempDir()
	makeTree(t, root, "real.txt")
	require.NoError(t, os.Symlink(filepath.Join(outside, "target.txt"), filepath.Join(root, "file-link")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "dir"), filepath.Join(root, "dir-link")))

	t.Run("followed", func(t *testing.T) {
		t.Parallel()

		c := run(t, root, walk.Options{FollowSymlinks: true})
		assert.Empty(t, c.errs)
		assert.ElementsMatch(t, []string{"real.txt", "file-link", "dir-link/inner.txt"}, c.files)
	})

	t.Run("not followed", func(t *testing.T) {
		t.Parallel()

		c := run(t, root, walk.Options{FollowSymlinks: false})
		assert.Empty(t, c.errs)
		assert.Equal(t, []string{"real.txt"}, c.files)
	})
}

func TestWalk_FollowedSymlinkInfoDescribesTarget(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	target := filepath.Join(root, "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("12345"), 0644))
	require.NoError(t, os.Symlink(target, filepath.Join(root, "link")))

	sizes := map[string]int64{}
	err := walk.Walk(context.Background(), root, walk.Options{FollowSymlinks: true}, func(file walk.File, err error) error {
		require.NoError(t, err)
		sizes[filepath.Base(file.Path)] = file.Info.Size()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"target.txt": 5, "link": 5}, sizes)
}

func TestWalk_BrokenSymlink(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	makeTree(t, root, "ok.txt")
	broken := filepath.Join(root, "broken")
	require.NoError(t, os.Symlink(filepath.Join(root, "nowhere"), broken))

	c := run(t, root, walk.Options{FollowSymlinks: true})

	assert.Equal(t, []string{"ok.txt"}, c.files)
	require.Len(t, c.errs, 1)

	var ioErr *fsutil.IOError
	require.ErrorAs(t, c.errs[0], &ioErr)
	assert.Equal(t, "resolve", ioErr.Op)
	assert.Equal(t, broken, ioErr.Path)
}

func TestWalk_SymlinkLoop(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	makeTree(t, root, "top.txt", "sub/inner.txt")
	require.NoError(t, os.Symlink(root, filepath.Join(root, "sub", "back")))

	c := run(t, root, walk.Options{FollowSymlinks: true})

	assert.ElementsMatch(t, []string{"top.txt", "sub/inner.txt"}, c.files)
	require.Len(t, c.errs, 1)

	var loopErr *walk.LoopError
	require.ErrorAs(t, c.errs[0], &loopErr)
	assert.Equal(t, filepath.Join(root, "sub", "back"), loopErr.Path)
	assert.Equal(t, root, loopErr.Ancestor)
}

func TestWalk_Ignore(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	makeTree(t, root, "keep.txt", "drop.log", "vendor/lib.txt", "src/vendor.txt", "src/deep/x.log")

	c := run(t, root, walk.Options{Ignore: []string{"*.log", "vendor/**"}})
	assert.ElementsMatch(t, []string{"keep.txt", "src/vendor.txt"}, c.files)
}

func TestWalk_SkipAll(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	makeTree(t, root, "a.txt", "b.txt", "c.txt")

	var seen int
	err := walk.Walk(context.Background(), root, walk.Options{}, func(_ walk.File, _ error) error {
		seen++
		return fs.SkipAll
	})
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}

func TestWalk_CallbackErrorStops(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	makeTree(t, root, "a.txt", "sub/b.txt")

	stop := errors.New("stop")
	var seen int
	err := walk.Walk(context.Background(), root, walk.Options{}, func(_ walk.File, _ error) error {
		seen++
		return stop
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 1, seen)
}

func TestWalk_CallbackErrorFromFailedEntryStops(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "missing")
	stop := errors.New("stop")

	err := walk.Walk(context.Background(), root, walk.Options{}, func(_ walk.File, err error) error {
		require.Error(t, err)
		return stop
	})
	require.ErrorIs(t, err, stop)
}

func TestWalk_Cancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	makeTree(t, root, "a.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := walk.Walk(ctx, root, walk.Options{}, func(_ walk.File, _ error) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}
