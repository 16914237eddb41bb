package enumerate

import (
	"context"
	"iter"
	"strings"

	"github.com/ternarybob/surveilr/internal/ingest/resource"
)

// TaskLineEnumerator accepts an ordered list of lines (spec.md §4.2):
// comments (leading '#') and blank lines are skipped, everything else is
// parsed per the task-line grammar and yielded in input order.
type TaskLineEnumerator struct {
	Lines []string
}

// All returns a pull-based sequence of TaskLine-origin encounterable
// resources, preserving input order with comments/blanks removed.
func (e *TaskLineEnumerator) All(ctx context.Context) iter.Seq[resource.Encounterable] {
	return func(yield func(resource.Encounterable) bool) {
		for _, line := range e.Lines {
			if ctx.Err() != nil {
				return
			}
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			if !yield(parseTaskLine(trimmed)) {
				return
			}
		}
	}
}
