package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/libra-ai/msgfilter/internal/logging"
)

// TimeSource records which tier produced a resolved timestamp.
type TimeSource int

const (
	// SourceEmbedded is the send time read from the message file itself.
	SourceEmbedded TimeSource = iota
	// SourceModified is the filesystem modification time fallback.
	SourceModified
)

func (s TimeSource) String() string {
	switch s {
	case SourceEmbedded:
		return "embedded"
	case SourceModified:
		return "modified"
	default:
		return "unknown"
	}
}

// Resolution is a successfully resolved timestamp tagged with its source.
type Resolution struct {
	Time   time.Time
	Source TimeSource
}

// Resolver resolves a file path to its authoritative timestamp.
type Resolver interface {
	Resolve(path string) (Resolution, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(path string) (Resolution, error)

func (f ResolverFunc) Resolve(path string) (Resolution, error) {
	return f(path)
}

// TwoTier resolves timestamps by first asking the embedded reader for the
// message send time, then degrading to the file's modification time. Both
// tiers failing leaves the file unresolved.
type TwoTier struct {
	embedded func(path string) (time.Time, error)
	log      *logging.Logger
}

// NewTwoTier creates a resolver. embedded may be nil, in which case only
// the modification-time tier is used.
func NewTwoTier(embedded func(path string) (time.Time, error), log *logging.Logger) *TwoTier {
	if log == nil {
		log = logging.Nop()
	}
	return &TwoTier{embedded: embedded, log: log}
}

// Resolve returns the embedded send time when readable, otherwise the
// file's modification time. A tier-1 failure is logged as a fallback
// event; only a tier-2 failure is an error.
func (r *TwoTier) Resolve(path string) (Resolution, error) {
	if r.embedded != nil {
		t, err := r.embedded(path)
		if err == nil {
			return Resolution{Time: t, Source: SourceEmbedded}, nil
		}
		r.log.Warn("resolve", "could not extract send time, using file modification time",
			logging.F("file", filepath.Base(path)),
			logging.F("reason", err))
	}

	info, err := os.Stat(path)
	if err != nil {
		return Resolution{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return Resolution{Time: info.ModTime(), Source: SourceModified}, nil
}
