// Package metadata implements the metadata probe: reading size, times,
// and file-kind flags from a resource's originating source.
package metadata

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/ternarybob/surveilr/internal/ingest/flags"
)

// Info is what the probe reports for one resource.
type Info struct {
	Flags      flags.Set // IS_FILE / IS_DIRECTORY / IS_SYMLINK only, empty for task lines
	Nature     *string   // extension-derived fallback nature, if any
	Size       int64
	CreatedAt  *time.Time
	ModifiedAt *time.Time
}

// FromFSPath stats a real filesystem path. Symlinks are reported via
// Lstat so IS_SYMLINK reflects the link itself rather than its target.
func FromFSPath(path string) (Info, error) {
	lst, err := os.Lstat(path)
	if err != nil {
		return Info{}, err
	}

	info := Info{Nature: extNature(path)}
	switch {
	case lst.Mode()&os.ModeSymlink != 0:
		info.Flags = flags.IsSymlink
	case lst.IsDir():
		info.Flags = flags.IsDirectory
	default:
		info.Flags = flags.IsFile
	}

	info.Size = lst.Size()
	mtime := lst.ModTime()
	info.ModifiedAt = &mtime
	// os.FileInfo exposes no portable birth time; mtime stands in as the
	// best-effort created_at the way the rest of the probe is best-effort.
	created := mtime
	info.CreatedAt = &created

	return info, nil
}

// FromVFSPath stats a path inside a mounted afero.Fs. Only size and
// file-kind are available; afero does not expose creation/modification
// times uniformly across backends, so both time fields stay nil.
func FromVFSPath(fsys afero.Fs, path string) (Info, error) {
	st, err := fsys.Stat(path)
	if err != nil {
		return Info{}, err
	}

	info := Info{Nature: extNature(path), Size: st.Size()}
	if st.IsDir() {
		info.Flags = flags.IsDirectory
	} else {
		info.Flags = flags.IsFile
	}
	return info, nil
}

// ForTaskLine returns the zero-size, flagless metadata a task-line source
// always reports, carrying only its declared nature.
func ForTaskLine(declaredNature string) Info {
	return Info{Nature: &declaredNature}
}

// extNature returns the substring after the final '.' in uri, or nil if
// there is none — the extension fallback nature precedence names.
func extNature(uri string) *string {
	idx := strings.LastIndex(uri, ".")
	if idx < 0 || idx == len(uri)-1 {
		return nil
	}
	ext := uri[idx+1:]
	return &ext
}
