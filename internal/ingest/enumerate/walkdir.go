package enumerate

import (
	"context"
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
)

// WalkDirEnumerator is the unfiltered walker spec.md §4.2 names: a
// depth-first recursive walk over a real filesystem root that emits
// every entry it can read and skips ones it cannot (logging a warning
// when Logger is set), grounded in
// the plain os-based traversal idiom used throughout the teacher (no
// third-party walker library appears anywhere in the retrieved pack).
type WalkDirEnumerator struct {
	Root   string
	Logger arbor.ILogger
}

// All returns a pull-based sequence of every WalkDir-origin encounterable
// resource under Root, in the underlying walker's (platform-dependent
// but per-run deterministic) order.
func (e *WalkDirEnumerator) All(ctx context.Context) iter.Seq[resource.Encounterable] {
	return func(yield func(resource.Encounterable) bool) {
		stopped := false
		_ = filepath.WalkDir(e.Root, func(path string, d fs.DirEntry, err error) error {
			if stopped {
				return fs.SkipAll
			}
			if ctx.Err() != nil {
				stopped = true
				return fs.SkipAll
			}
			if err != nil {
				if e.Logger != nil {
					e.Logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
				}
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if !yield(newFSOrigin(resource.KindWalkDir, path)) {
				stopped = true
				return fs.SkipAll
			}
			return nil
		})
	}
}
