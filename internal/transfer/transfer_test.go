package transfer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.BufferSize <= 0 {
		t.Errorf("expected positive BufferSize, got %d", opts.BufferSize)
	}
}

func TestCopyPreservesContentAndModTime(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := filepath.Join(t.TempDir(), "out") // created by Copy

	src := filepath.Join(srcDir, "Daily Hedging P&L Summary for WB 2024_06_28.msg")
	content := []byte("message bytes")
	require.NoError(t, os.WriteFile(src, content, 0644))

	mtime := time.Date(2024, 6, 28, 17, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	res, err := NewCopier(DefaultOptions()).Copy(src, dstDir)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, int64(len(content)), res.BytesCopied)

	dst := filepath.Join(dstDir, filepath.Base(src))
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "mtime %v not preserved", info.ModTime())
}

func TestCopyOverwritesExisting(t *testing.T) {
	srcDir, dstDir := t.TempDir(), t.TempDir()

	src := filepath.Join(srcDir, "a.msg")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dstDir, "a.msg"), []byte("old stale bytes"), 0644))

	_, err := NewCopier(DefaultOptions()).Copy(src, dstDir)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dstDir, "a.msg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestCopySourceMissing(t *testing.T) {
	_, err := NewCopier(DefaultOptions()).Copy(filepath.Join(t.TempDir(), "gone.msg"), t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestCopyDestinationNotWritable(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "a.msg")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	// A file where the destination directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewCopier(DefaultOptions()).Copy(src, filepath.Join(blocker, "sub"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDestinationNotWritable)
}

func TestCopierZeroBufferGetsDefault(t *testing.T) {
	c := NewCopier(Options{})
	assert.Equal(t, DefaultOptions().BufferSize, c.opts.BufferSize)
}
