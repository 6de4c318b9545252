// Package scanner enumerates candidate .msg files in a source directory.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is one candidate file found in the source directory.
type Entry struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// ListMsgFiles returns the .msg files directly inside dir, sorted by name
// so a rerun over an unchanged directory visits files in the same order.
// Subdirectories are not descended into. An unreadable directory is the
// one fatal condition; an entry that vanishes between listing and stat is
// just skipped.
func ListMsgFiles(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read source directory %s: %w", dir, err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(de.Name()), ".msg") {
			continue
		}

		info, err := de.Info()
		if err != nil {
			continue
		}

		entries = append(entries, Entry{
			Name:    de.Name(),
			Path:    filepath.Join(dir, de.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Paths returns just the file paths of entries, in order.
func Paths(entries []Entry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths
}

// TotalSize sums the sizes of entries.
func TotalSize(entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	return total
}
