// Package enumerate implements the four EncounterableResource sources
// spec.md §4.2 names and the concrete Encounterable kinds they produce.
package enumerate

import (
	"context"
	"io"
	"os"

	"github.com/ternarybob/surveilr/internal/ingest/flags"
	"github.com/ternarybob/surveilr/internal/ingest/metadata"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
)

// fsOrigin is the shared Encounterable implementation for both the
// unfiltered WalkDir origin and the gitignore-honoring SmartIgnore
// origin — they differ only in how the enumerator discovers paths, not
// in how a discovered path is read or stat'd.
type fsOrigin struct {
	path string
	kind resource.Kind
}

var _ resource.Encounterable = fsOrigin{}

func newFSOrigin(kind resource.Kind, path string) fsOrigin {
	return fsOrigin{path: path, kind: kind}
}

func (o fsOrigin) Kind() resource.Kind         { return o.kind }
func (o fsOrigin) URI() string                 { return o.path }
func (o fsOrigin) IsFilesystemOrigin() bool    { return true }
func (o fsOrigin) MetaInfo(context.Context) (metadata.Info, error) {
	return metadata.FromFSPath(o.path)
}

func (o fsOrigin) Open(context.Context) (io.ReadCloser, error) {
	return os.Open(o.path)
}

func (o fsOrigin) BuildCapturable(class resource.Class, factory resource.ShellExecutiveFactory) resource.CapturableExecutable {
	return buildFileBackedCapturable(o.path, class, factory)
}

// buildFileBackedCapturable verifies the OS execute bit before handing
// back an invokable executable, per spec.md §4.6's construction-time
// requirement for file-backed capturable executables.
func buildFileBackedCapturable(path string, class resource.Class, factory resource.ShellExecutiveFactory) resource.CapturableExecutable {
	st, err := os.Stat(path)
	if err != nil || !isExecutable(st) {
		return resource.CapturableExecutable{Kind: resource.CapturableRequestedNotExecutable, URI: path}
	}

	return resource.CapturableExecutable{
		Kind:              resource.CapturableInvokable,
		URI:               path,
		InterpretableCode: path,
		Nature:            class.NatureOr("?nature"),
		IsBatchedSQL:      class.Flags.Has(flags.CapturableSQL),
		Shell:             factory.ForPath(path),
	}
}

// isExecutable reports whether any execute bit is set. Go's standard
// library already exposes this via os.FileMode, so there is no need for
// a third-party "is this file executable" helper.
func isExecutable(st os.FileInfo) bool {
	return !st.IsDir() && st.Mode()&0o111 != 0
}
