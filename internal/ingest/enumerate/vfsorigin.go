package enumerate

import (
	"context"
	"io"

	"github.com/spf13/afero"
	"github.com/ternarybob/surveilr/internal/ingest/flags"
	"github.com/ternarybob/surveilr/internal/ingest/metadata"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
)

// vfsOrigin is the Encounterable for a path resolved against a mounted
// afero.Fs. Unlike fsOrigin, it never gates on an execute-permission bit
// before treating a matched path as invokable — afero backends (memory
// maps, overlays) do not reliably expose POSIX permission bits, so a VFS
// capturable executable is trusted by path pattern alone, exactly as
// spec.md's "requested-but-not-executable" split only applies to
// file-backed origins.
type vfsOrigin struct {
	fs   afero.Fs
	path string
}

var _ resource.Encounterable = vfsOrigin{}

func newVFSOrigin(fs afero.Fs, path string) vfsOrigin {
	return vfsOrigin{fs: fs, path: path}
}

func (o vfsOrigin) Kind() resource.Kind      { return resource.KindVFS }
func (o vfsOrigin) URI() string              { return o.path }
func (o vfsOrigin) IsFilesystemOrigin() bool { return true }

func (o vfsOrigin) MetaInfo(context.Context) (metadata.Info, error) {
	return metadata.FromVFSPath(o.fs, o.path)
}

func (o vfsOrigin) Open(context.Context) (io.ReadCloser, error) {
	return o.fs.Open(o.path)
}

func (o vfsOrigin) BuildCapturable(class resource.Class, factory resource.ShellExecutiveFactory) resource.CapturableExecutable {
	return resource.CapturableExecutable{
		Kind:              resource.CapturableInvokable,
		URI:               o.path,
		InterpretableCode: o.path,
		Nature:            class.NatureOr("?nature"),
		IsBatchedSQL:      class.Flags.Has(flags.CapturableSQL),
		Shell:             factory.ForPath(o.path),
	}
}
