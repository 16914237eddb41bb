// Package shellexec implements the shell-executive contract (spec.md §6)
// and the capturable-executable invoker (spec.md §4.6) on top of it.
// Grounded in the teacher's two os/exec call sites —
// internal/queue/workers/github_git_worker.go and
// internal/services/llm/offline/llama.go — which both use
// exec.CommandContext with captured stdout/stderr buffers.
package shellexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/ternarybob/surveilr/internal/ingest/resource"
)

// pathExecutive runs a file path as a command, feeding it stdin.
type pathExecutive struct {
	path string
}

func (p pathExecutive) Execute(ctx context.Context, stdinPayload string) (resource.ShellResult, error) {
	return run(ctx, stdinPayload, p.path)
}

// scriptExecutive runs an inline shell command/script, feeding it stdin.
// identity is stored alongside the script; the shell never sees it.
type scriptExecutive struct {
	script   string
	identity *string
}

func (s scriptExecutive) Execute(ctx context.Context, stdinPayload string) (resource.ShellResult, error) {
	return run(ctx, stdinPayload, "/bin/sh", "-c", s.script)
}

func run(ctx context.Context, stdinPayload string, name string, args ...string) (resource.ShellResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewBufferString(stdinPayload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	status := 0
	if cmd.ProcessState != nil {
		status = cmd.ProcessState.ExitCode()
	} else if runErr != nil {
		status = -1
	}

	result := resource.ShellResult{Stdout: stdout.String(), Stderr: stderr.String(), Status: status}

	if runErr != nil {
		if _, ok := runErr.(*exec.ExitError); ok {
			// Nonzero exit is a normal outcome the invoker turns into a
			// diagnostic, not a Go error.
			return result, nil
		}
		return result, fmt.Errorf("surveilr/shellexec: run %q: %w", name, runErr)
	}

	return result, nil
}

// OSFactory is the default resource.ShellExecutiveFactory, binding each
// capturable executable to a real subprocess invocation.
type OSFactory struct{}

func (OSFactory) ForPath(path string) resource.ShellExecutive {
	return pathExecutive{path: path}
}

func (OSFactory) ForScript(script string, identity *string) resource.ShellExecutive {
	return scriptExecutive{script: script, identity: identity}
}

var _ resource.ShellExecutiveFactory = OSFactory{}
