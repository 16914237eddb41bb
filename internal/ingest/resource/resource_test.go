package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/surveilr/internal/ingest/flags"
)

func TestClassWithNature(t *testing.T) {
	c := Class{}.WithNature("md")

	assert.Equal(t, "md", c.NatureOr("fallback"))
}

func TestClassNatureOrFallback(t *testing.T) {
	c := Class{}

	assert.Equal(t, "fallback", c.NatureOr("fallback"))
}

type stubShell struct{}

func (stubShell) Execute(context.Context, string) (ShellResult, error) {
	return ShellResult{}, nil
}

func TestCapturableExecutableInvokable(t *testing.T) {
	invokable := CapturableExecutable{Kind: CapturableInvokable, Shell: stubShell{}}
	assert.True(t, invokable.Invokable())

	notExecutable := CapturableExecutable{Kind: CapturableRequestedNotExecutable}
	assert.False(t, notExecutable.Invokable())

	nilShell := CapturableExecutable{Kind: CapturableInvokable}
	assert.False(t, nilShell.Invokable())
}

func TestShellResultSuccess(t *testing.T) {
	assert.True(t, ShellResult{Status: 0}.Success())
	assert.False(t, ShellResult{Status: 1}.Success())
}

func TestEncounteredKindString(t *testing.T) {
	assert.Equal(t, "Ignored", Ignored.String())
	assert.Equal(t, "Resource", ResourceOutcome.String())
	assert.Equal(t, "CapturableExec", CapturableExecOutcome.String())
}

func TestContentResourceHasSuppliers(t *testing.T) {
	cr := ContentResource{Flags: flags.ContentAcquirable}
	assert.False(t, cr.HasSuppliers())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "walkdir", KindWalkDir.String())
	assert.Equal(t, "task-line", KindTaskLine.String())
}
