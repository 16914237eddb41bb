package collection

import (
	"context"
	"io"
	"iter"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/surveilr/internal/ingest/classify"
	"github.com/ternarybob/surveilr/internal/ingest/flags"
	"github.com/ternarybob/surveilr/internal/ingest/metadata"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
	"github.com/ternarybob/surveilr/internal/ingest/rules"
	"github.com/ternarybob/surveilr/internal/ingest/shellexec"
)

func setupFixture(t *testing.T) *Collection {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "config"), []byte(""), 0o644))

	classifier := classify.New(rules.Default())
	enumerator := fsWalkEnumerator{root: dir}
	return New(enumerator, classifier, shellexec.OSFactory{})
}

// fsWalkEnumerator is a tiny stand-in for internal/ingest/enumerate's
// WalkDirEnumerator, built against the real filesystem so collection's
// composition with a real Encounterable implementation is exercised
// without reaching into enumerate's unexported fsOrigin type.
type fsWalkEnumerator struct {
	root string
}

func (e fsWalkEnumerator) All(ctx context.Context) iter.Seq[resource.Encounterable] {
	return func(yield func(resource.Encounterable) bool) {
		_ = filepath.Walk(e.root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if !yield(fsEntry{path: path}) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

type fsEntry struct {
	path string
}

func (e fsEntry) Kind() resource.Kind      { return resource.KindWalkDir }
func (e fsEntry) URI() string              { return e.path }
func (e fsEntry) IsFilesystemOrigin() bool { return true }

func (e fsEntry) MetaInfo(context.Context) (metadata.Info, error) {
	return metadata.FromFSPath(e.path)
}

func (e fsEntry) Open(context.Context) (io.ReadCloser, error) {
	return os.Open(e.path)
}

func (e fsEntry) BuildCapturable(class resource.Class, factory resource.ShellExecutiveFactory) resource.CapturableExecutable {
	return resource.CapturableExecutable{
		Kind:              resource.CapturableInvokable,
		URI:               e.path,
		InterpretableCode: e.path,
		Nature:            class.NatureOr("?nature"),
		IsBatchedSQL:      class.Flags.Has(flags.CapturableSQL),
		Shell:             factory.ForPath(e.path),
	}
}

func TestCollectionIgnoredAndNotIgnored(t *testing.T) {
	col := setupFixture(t)
	ctx := context.Background()

	var ignoredCount, notIgnoredCount int
	for range col.Ignored(ctx) {
		ignoredCount++
	}
	for range col.NotIgnored(ctx) {
		notIgnoredCount++
	}

	assert.GreaterOrEqual(t, ignoredCount, 1)
	assert.GreaterOrEqual(t, notIgnoredCount, 1)
}

func TestCollectionUniformResourcesDispatchesMarkdown(t *testing.T) {
	col := setupFixture(t)

	found := false
	for res := range col.UniformResources(context.Background()) {
		require.NoError(t, res.Err)
		if res.Value.Resource != nil && res.Value.Resource.Nature != nil && *res.Value.Resource.Nature == "md" {
			found = true
		}
	}

	assert.True(t, found)
}
