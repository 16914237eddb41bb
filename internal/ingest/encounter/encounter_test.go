package encounter

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/surveilr/internal/ingest/classify"
	"github.com/ternarybob/surveilr/internal/ingest/flags"
	"github.com/ternarybob/surveilr/internal/ingest/metadata"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
	"github.com/ternarybob/surveilr/internal/ingest/rules"
)

// stubOrigin is a minimal resource.Encounterable for exercising the
// encounter state machine without touching the real filesystem.
type stubOrigin struct {
	uri         string
	content     string
	isFile      bool
	fsOrigin    bool
	metaErr     error
	openErr     error
	taskLineKnd bool
}

func (s stubOrigin) Kind() resource.Kind {
	if s.taskLineKnd {
		return resource.KindTaskLine
	}
	return resource.KindWalkDir
}
func (s stubOrigin) URI() string              { return s.uri }
func (s stubOrigin) IsFilesystemOrigin() bool { return s.fsOrigin }

func (s stubOrigin) MetaInfo(context.Context) (metadata.Info, error) {
	if s.metaErr != nil {
		return metadata.Info{}, s.metaErr
	}
	info := metadata.Info{Size: int64(len(s.content))}
	if s.isFile {
		info.Flags = flags.IsFile
	} else {
		info.Flags = flags.IsDirectory
	}
	return info, nil
}

func (s stubOrigin) Open(context.Context) (io.ReadCloser, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return io.NopCloser(strings.NewReader(s.content)), nil
}

func (s stubOrigin) BuildCapturable(class resource.Class, factory resource.ShellExecutiveFactory) resource.CapturableExecutable {
	return resource.CapturableExecutable{
		Kind:              resource.CapturableInvokable,
		URI:               s.uri,
		InterpretableCode: s.uri,
		Nature:            class.NatureOr("json"),
		IsBatchedSQL:      class.Flags.Has(flags.CapturableSQL),
		Shell:             factory.ForPath(s.uri),
	}
}

type stubShellFactory struct{}

func (stubShellFactory) ForPath(path string) resource.ShellExecutive       { return stubShell{} }
func (stubShellFactory) ForScript(script string, id *string) resource.ShellExecutive { return stubShell{} }

type stubShell struct{}

func (stubShell) Execute(context.Context, string) (resource.ShellResult, error) {
	return resource.ShellResult{Stdout: "{}", Status: 0}, nil
}

func TestEncounterIgnoreShortCircuit(t *testing.T) {
	c := classify.New(rules.Default())
	origin := stubOrigin{uri: ".git/config", isFile: true, fsOrigin: true}

	var class resource.Class
	c.Classify(origin.URI(), &class, nil)

	outcome := Encounter(context.Background(), origin, class, stubShellFactory{})

	assert.Equal(t, resource.Ignored, outcome.Kind)
	assert.True(t, outcome.Class.Flags.Has(flags.IgnoreResource))
	assert.Equal(t, flags.IgnoreResource, outcome.Class.Flags)
}

func TestEncounterMarkdownAcquire(t *testing.T) {
	c := classify.New(rules.Default())
	origin := stubOrigin{uri: "README.md", content: "hi", isFile: true, fsOrigin: true}

	var class resource.Class
	c.Classify(origin.URI(), &class, nil)

	outcome := Encounter(context.Background(), origin, class, stubShellFactory{})

	require.Equal(t, resource.ResourceOutcome, outcome.Kind)
	require.NotNil(t, outcome.Content)
	require.NotNil(t, outcome.Content.Nature)
	assert.Equal(t, "md", *outcome.Content.Nature)
	assert.True(t, outcome.Content.Flags.Has(flags.ContentAcquirable))

	textResult, err := outcome.Content.Text(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hi", textResult.Text)
	assert.Equal(t, "c22b5f9178342609428d6f51b2c5af4c0bde6a42", textResult.Hash)
}

func TestEncounterTAPRewrite(t *testing.T) {
	c := classify.New(rules.Default())
	origin := stubOrigin{uri: "x.tap", content: "ok", isFile: true, fsOrigin: true}

	var class resource.Class
	c.Classify(origin.URI(), &class, nil)

	outcome := Encounter(context.Background(), origin, class, stubShellFactory{})

	require.NotNil(t, outcome.Content.Nature)
	assert.Equal(t, "text/plain", *outcome.Content.Nature)
}

func TestEncounterCapturableWithNature(t *testing.T) {
	c := classify.New(rules.Default())
	origin := stubOrigin{uri: "run.surveilr[json].sh", isFile: true, fsOrigin: true}

	var class resource.Class
	c.Classify(origin.URI(), &class, nil)

	outcome := Encounter(context.Background(), origin, class, stubShellFactory{})

	require.Equal(t, resource.CapturableExecOutcome, outcome.Kind)
	require.NotNil(t, outcome.Exec)
	assert.Equal(t, "json", outcome.Exec.Nature)
	assert.False(t, outcome.Exec.IsBatchedSQL)
	assert.True(t, outcome.Exec.Invokable())
}

func TestEncounterBatchSQL(t *testing.T) {
	c := classify.New(rules.Default())
	origin := stubOrigin{uri: "surveilr-SQL-report.sh", isFile: true, fsOrigin: true}

	var class resource.Class
	c.Classify(origin.URI(), &class, nil)

	outcome := Encounter(context.Background(), origin, class, stubShellFactory{})

	require.Equal(t, resource.CapturableExecOutcome, outcome.Kind)
	require.NotNil(t, outcome.Exec)
	assert.True(t, outcome.Exec.IsBatchedSQL)
}

func TestEncounterNotFileForDirectory(t *testing.T) {
	origin := stubOrigin{uri: "somedir", isFile: false, fsOrigin: true}
	class := resource.Class{}

	outcome := Encounter(context.Background(), origin, class, stubShellFactory{})

	assert.Equal(t, resource.NotFile, outcome.Kind)
}

func TestEncounterNotFoundOnMetaError(t *testing.T) {
	origin := stubOrigin{uri: "missing", fsOrigin: true, metaErr: assertErr{}}
	class := resource.Class{}

	outcome := Encounter(context.Background(), origin, class, stubShellFactory{})

	assert.Equal(t, resource.NotFound, outcome.Kind)
}

func TestResolveNaturePrecedence(t *testing.T) {
	nature := "explicit"
	extNature := "ext"

	assert.Equal(t, "explicit", resolveNature(resource.Class{Nature: &nature}, metadata.Info{Nature: &extNature}))
	assert.Equal(t, "ext", resolveNature(resource.Class{}, metadata.Info{Nature: &extNature}))
	assert.Equal(t, "json", resolveNature(resource.Class{}, metadata.Info{}))
}

type assertErr struct{}

func (assertErr) Error() string { return "stat failed" }
