package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMsgFiles(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"Daily Hedging P&L Summary for WB 2024_06_28.msg":     "aaa",
		"RE_ Daily Hedging P&L Summary for WB 2024_06_28.msg": "bbbb",
		"UPPERCASE.MSG": "c",
		"notes.txt":     "ignored",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.msg"), 0755)) // dir, ignored

	entries, err := ListMsgFiles(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Sorted by name
	assert.Equal(t, "Daily Hedging P&L Summary for WB 2024_06_28.msg", entries[0].Name)
	assert.Equal(t, "RE_ Daily Hedging P&L Summary for WB 2024_06_28.msg", entries[1].Name)
	assert.Equal(t, "UPPERCASE.MSG", entries[2].Name)

	for _, e := range entries {
		assert.Equal(t, filepath.Join(dir, e.Name), e.Path)
		assert.False(t, e.ModTime.IsZero())
	}

	assert.Equal(t, int64(3+4+1), TotalSize(entries))

	paths := Paths(entries)
	require.Len(t, paths, 3)
	assert.Equal(t, entries[0].Path, paths[0])
}

func TestListMsgFilesEmptyDir(t *testing.T) {
	entries, err := ListMsgFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListMsgFilesMissingDir(t *testing.T) {
	_, err := ListMsgFiles(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
