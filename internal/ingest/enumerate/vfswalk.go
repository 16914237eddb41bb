package enumerate

import (
	"context"
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
)

// VFSEnumerator drives a mounted afero.Fs whose root is treated as the
// canonical OS root, per spec.md §4.2. Each input path is canonicalized
// first; on failure the original path is used and a warning logged.
type VFSEnumerator struct {
	FS     afero.Fs
	Paths  []string
	Logger arbor.ILogger
}

// All returns a pull-based sequence of VFS-origin encounterable
// resources for every file/directory found while walking each of Paths.
func (e *VFSEnumerator) All(ctx context.Context) iter.Seq[resource.Encounterable] {
	return func(yield func(resource.Encounterable) bool) {
		for _, p := range e.Paths {
			if ctx.Err() != nil {
				return
			}
			resolved := e.canonicalize(p)
			stopped := false
			_ = afero.Walk(e.FS, resolved, func(path string, info fs.FileInfo, err error) error {
				if stopped || ctx.Err() != nil {
					return filepath.SkipAll
				}
				if err != nil {
					if e.Logger != nil {
						e.Logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable vfs entry")
					}
					return nil
				}
				if !yield(newVFSOrigin(e.FS, path)) {
					stopped = true
					return filepath.SkipAll
				}
				return nil
			})
		}
	}
}

func (e *VFSEnumerator) canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn().Err(err).Str("path", path).Msg("failed to canonicalize path, using as-is")
		}
		return path
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// Not an error worth failing the whole walk over: the path may
		// simply not exist yet under the mount.
		if e.Logger != nil {
			e.Logger.Warn().Err(err).Str("path", path).Msg("failed to resolve symlinks, using path as-is")
		}
		return path
	}
	return resolved
}
