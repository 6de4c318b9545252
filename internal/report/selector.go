package report

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/libra-ai/msgfilter/internal/logging"
)

// Winner is the file chosen for one group.
type Winner struct {
	Filename   string
	Path       string
	Resolution Resolution
	Contenders int // group size, including the winner
}

// Stats summarizes one selection pass.
type Stats struct {
	Total      int // files offered
	Matched    int // files with a valid key and timestamp
	Unmatched  int // filenames not following the naming convention
	Unresolved int // matched names whose timestamp could not be resolved
	Fallbacks  int // matched files ranked by modification time
	Groups     int
}

// Selector partitions files into (product, date) groups and picks the
// latest file per group.
type Selector struct {
	log *logging.Logger
}

func NewSelector(log *logging.Logger) *Selector {
	if log == nil {
		log = logging.Nop()
	}
	return &Selector{log: log}
}

// Select runs one pass over paths in the given order. On exact timestamp
// ties the first-seen file wins, so a sorted input listing makes reruns
// deterministic. Files that fail the pattern or whose timestamp cannot be
// resolved are excluded and counted, never fatal.
func (s *Selector) Select(paths []string, resolver Resolver) (map[Key]Winner, Stats) {
	winners := make(map[Key]Winner)
	var stats Stats

	for _, path := range paths {
		stats.Total++
		name := filepath.Base(path)

		key, ok := Parse(name)
		if !ok {
			stats.Unmatched++
			s.log.Info("selector", "skipping file that doesn't match pattern",
				logging.F("file", name))
			continue
		}

		res, err := resolver.Resolve(path)
		if err != nil {
			stats.Unresolved++
			s.log.Warn("selector", "excluding file with unresolvable timestamp",
				logging.F("file", name),
				logging.F("error", err))
			continue
		}

		stats.Matched++
		if res.Source == SourceModified {
			stats.Fallbacks++
		}
		s.log.Info("selector", "found file",
			logging.F("file", name),
			logging.F("product", key.Product),
			logging.F("date", key.Date))

		cur, exists := winners[key]
		if !exists {
			winners[key] = Winner{Filename: name, Path: path, Resolution: res, Contenders: 1}
			continue
		}

		cur.Contenders++
		if res.Time.After(cur.Resolution.Time) {
			cur.Filename = name
			cur.Path = path
			cur.Resolution = res
		}
		winners[key] = cur
	}

	stats.Groups = len(winners)

	for _, key := range SortedKeys(winners) {
		w := winners[key]
		s.log.Info("selector", "latest file selected",
			logging.F("product", key.Product),
			logging.F("date", key.Date),
			logging.F("file", w.Filename),
			logging.F("sent", w.Resolution.Time.Format(time.RFC3339)),
			logging.F("source", w.Resolution.Source),
			logging.F("contenders", w.Contenders))
	}

	return winners, stats
}

// SortedKeys returns the group keys ordered by product then date.
func SortedKeys(winners map[Key]Winner) []Key {
	keys := make([]Key, 0, len(winners))
	for k := range winners {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Product != keys[j].Product {
			return keys[i].Product < keys[j].Product
		}
		return keys[i].Date < keys[j].Date
	})
	return keys
}
