package shellexec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
)

func TestOSFactoryForPathRunsCat(t *testing.T) {
	shell := OSFactory{}.ForPath("cat")

	result, err := shell.Execute(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", result.Stdout)
	assert.True(t, result.Success())
}

func TestOSFactoryForScriptRunsShell(t *testing.T) {
	shell := OSFactory{}.ForScript("cat", nil)

	result, err := shell.Execute(context.Background(), "from script")
	require.NoError(t, err)
	assert.Equal(t, "from script", result.Stdout)
}

func TestOSFactoryNonzeroExitIsNotAGoError(t *testing.T) {
	shell := OSFactory{}.ForScript("exit 7", nil)

	result, err := shell.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 7, result.Status)
	assert.False(t, result.Success())
}

func TestAsTextRefusesNotExecutable(t *testing.T) {
	ce := resource.CapturableExecutable{Kind: resource.CapturableRequestedNotExecutable, URI: "script.sh"}

	_, _, _, diag := AsText(context.Background(), ce, "")

	require.NotNil(t, diag)
	assert.Equal(t, "script.sh", diag.Src)
	assert.Contains(t, diag.Issue, "not executable")
}

func TestAsTextRunsInvokableExecutable(t *testing.T) {
	ce := resource.CapturableExecutable{
		Kind:  resource.CapturableInvokable,
		URI:   "echo.sh",
		Nature: "text/plain",
		Shell: OSFactory{}.ForScript("cat", nil),
	}

	stdout, nature, isBatched, diag := AsText(context.Background(), ce, "payload")

	require.Nil(t, diag)
	assert.Equal(t, "payload", stdout)
	assert.Equal(t, "text/plain", nature)
	assert.False(t, isBatched)
}

func TestAsJSONParsesStdout(t *testing.T) {
	ce := resource.CapturableExecutable{
		Kind:  resource.CapturableInvokable,
		URI:   "report.sh",
		Shell: OSFactory{}.ForScript("cat", nil),
	}

	parsed, _, _, diag := AsJSON(context.Background(), ce, `{"ok":true}`)

	require.Nil(t, diag)
	m, ok := parsed.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, m["ok"])
}

func TestAsJSONDiagnosesInvalidJSON(t *testing.T) {
	ce := resource.CapturableExecutable{
		Kind:  resource.CapturableInvokable,
		URI:   "report.sh",
		Shell: OSFactory{}.ForScript("cat", nil),
	}

	_, _, _, diag := AsJSON(context.Background(), ce, "not json")

	require.NotNil(t, diag)
	assert.Contains(t, diag.Issue, "not valid JSON")
}

func TestAsSQLRefusesNonBatchSQL(t *testing.T) {
	ce := resource.CapturableExecutable{Kind: resource.CapturableInvokable, URI: "x.sh", IsBatchedSQL: false}

	_, _, diag := AsSQL(context.Background(), ce, "")

	require.NotNil(t, diag)
	assert.Contains(t, diag.Issue, "not classified as batch SQL")
}

func TestAsSQLRunsWhenBatchSQL(t *testing.T) {
	ce := resource.CapturableExecutable{
		Kind:         resource.CapturableInvokable,
		URI:          "x.sh",
		IsBatchedSQL: true,
		Shell:        OSFactory{}.ForScript("cat", nil),
	}

	stdout, _, diag := AsSQL(context.Background(), ce, "INSERT INTO t VALUES (1);")

	require.Nil(t, diag)
	assert.Equal(t, "INSERT INTO t VALUES (1);", stdout)
}

func TestDiagnosticValidateRequiresSrcAndIssue(t *testing.T) {
	d := &Diagnostic{}
	assert.Error(t, d.Validate())

	d = &Diagnostic{Src: "x", Issue: "y"}
	assert.NoError(t, d.Validate())
}
