package shellexec

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
)

// Diagnostic is the structured failure shape spec.md §6 names, returned
// by every invocation method on failure. Field tags match the spec's
// hyphenated JSON names exactly.
type Diagnostic struct {
	Src               string `json:"src" validate:"required"`
	InterpretableCode string `json:"interpretable-code,omitempty"`
	Issue             string `json:"issue" validate:"required"`
	Remediation       string `json:"remediation,omitempty"`
	Nature            string `json:"nature,omitempty"`
	IsBatchedSQL      *bool  `json:"is-batched-sql,omitempty"`
	ExitStatus        *int   `json:"exit-status,omitempty"`
	Stdout            string `json:"stdout,omitempty"`
	Stderr            string `json:"stderr,omitempty"`
	RustErr           string `json:"rust-err,omitempty"`
}

func (d *Diagnostic) Error() string { return fmt.Sprintf("%s: %s", d.Src, d.Issue) }

// Validate checks the mandatory fields (src, issue) are populated.
func (d *Diagnostic) Validate() error {
	return validator.New().Struct(d)
}

const remediationNotExecutable = "grant the file execute permission (chmod +x) or remove the surveilr[...] marker"

func notExecutableDiagnostic(ce resource.CapturableExecutable) *Diagnostic {
	return &Diagnostic{
		Src:         ce.URI,
		Issue:       "capturable executable is requested but not executable",
		Remediation: remediationNotExecutable,
	}
}

// AsText runs ce and returns its stdout verbatim alongside its declared
// nature and batch-SQL flag, or a diagnostic on failure (spec.md §4.6).
func AsText(ctx context.Context, ce resource.CapturableExecutable, stdinPayload string) (stdout string, nature string, isBatchedSQL bool, diag *Diagnostic) {
	if !ce.Invokable() {
		return "", "", false, notExecutableDiagnostic(ce)
	}

	result, err := ce.Shell.Execute(ctx, stdinPayload)
	if err != nil {
		return "", "", false, &Diagnostic{
			Src:               ce.URI,
			InterpretableCode: ce.InterpretableCode,
			Issue:             fmt.Sprintf("failed to execute: %v", err),
			Nature:            ce.Nature,
			RustErr:           err.Error(),
		}
	}
	if !result.Success() {
		status := result.Status
		return "", "", false, &Diagnostic{
			Src:               ce.URI,
			InterpretableCode: ce.InterpretableCode,
			Issue:             "executable exited with nonzero status",
			Remediation:       "inspect stderr and the script's exit code handling",
			Nature:            ce.Nature,
			IsBatchedSQL:      &ce.IsBatchedSQL,
			ExitStatus:        &status,
			Stdout:            result.Stdout,
			Stderr:            result.Stderr,
		}
	}

	return result.Stdout, ce.Nature, ce.IsBatchedSQL, nil
}

// AsJSON is AsText plus a JSON parse of stdout; the returned value is the
// decoded JSON document. A JSON parse failure yields its own diagnostic
// (different remediation) carrying the raw stdout.
func AsJSON(ctx context.Context, ce resource.CapturableExecutable, stdinPayload string) (parsed interface{}, nature string, isBatchedSQL bool, diag *Diagnostic) {
	stdout, nature, isBatchedSQL, diag := AsText(ctx, ce, stdinPayload)
	if diag != nil {
		return nil, "", false, diag
	}

	if !gjson.Valid(stdout) {
		return nil, "", false, &Diagnostic{
			Src:               ce.URI,
			InterpretableCode: ce.InterpretableCode,
			Issue:             "stdout is not valid JSON",
			Remediation:       "ensure executable is emitting JSON",
			Nature:            nature,
			IsBatchedSQL:      &isBatchedSQL,
			Stdout:            stdout,
		}
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(stdout), &decoded); err != nil {
		return nil, "", false, &Diagnostic{
			Src:               ce.URI,
			InterpretableCode: ce.InterpretableCode,
			Issue:             "stdout is not valid JSON",
			Remediation:       "ensure executable is emitting JSON",
			Nature:            nature,
			IsBatchedSQL:      &isBatchedSQL,
			Stdout:            stdout,
			RustErr:           err.Error(),
		}
	}

	return decoded, nature, isBatchedSQL, nil
}

// AsSQL is AsText but refuses to run unless the executable was classified
// CAPTURABLE_SQL.
func AsSQL(ctx context.Context, ce resource.CapturableExecutable, stdinPayload string) (stdout string, nature string, diag *Diagnostic) {
	if !ce.IsBatchedSQL {
		return "", "", &Diagnostic{
			Src:         ce.URI,
			Issue:       "not classified as batch SQL",
			Remediation: "match the batch-SQL pattern (default: surveilr-SQL) or do not call AsSQL",
			Nature:      ce.Nature,
		}
	}

	out, nat, _, d := AsText(ctx, ce, stdinPayload)
	if d != nil {
		return "", "", d
	}
	return out, nat, nil
}
