package resource

import "context"

// ShellResult is what the shell-executive contract returns for one
// invocation (spec.md §6).
type ShellResult struct {
	Stdout string
	Stderr string
	Status int
}

// Success reports whether the invocation exited zero.
func (r ShellResult) Success() bool { return r.Status == 0 }

// ShellExecutive is the external collaborator contract spec.md §6 names:
// given a stdin payload, run the command/script this instance was bound
// to and report the outcome. The core never implements sandboxing or
// timeouts itself — that is this collaborator's concern.
type ShellExecutive interface {
	Execute(ctx context.Context, stdinPayload string) (ShellResult, error)
}

// ShellExecutiveFactory binds a ShellExecutive to a specific source: a
// file path to run, or an inline script body (optionally named by a
// task-line identity). Encounterable.BuildCapturable uses this to obtain
// the handle a CapturableExecutable carries.
type ShellExecutiveFactory interface {
	ForPath(path string) ShellExecutive
	ForScript(script string, identity *string) ShellExecutive
}

// CapturableKind distinguishes an invokable capturable executable from
// one that was requested but is not actually runnable.
type CapturableKind uint8

const (
	CapturableInvokable CapturableKind = iota
	CapturableRequestedNotExecutable
)

// CapturableExecutable is the tagged union spec.md §3 names: either an
// invokable form carrying a shell-executive handle, or a
// requested-but-not-executable marker carrying just the source URI.
type CapturableExecutable struct {
	Kind CapturableKind

	// URI is always populated: the source path/identity for both kinds.
	URI string

	// The following are populated only when Kind == CapturableInvokable.
	InterpretableCode string // the URI or the inline script body to run
	Nature            string
	IsBatchedSQL      bool
	Shell             ShellExecutive
}

// Invokable reports whether this executable can actually be run.
func (ce CapturableExecutable) Invokable() bool {
	return ce.Kind == CapturableInvokable && ce.Shell != nil
}
