// Package collection is the façade spec.md §4.8 describes: wrap one
// enumerator and one classifier and expose the encountered/ignored/
// capturable/uniform views as lazy iter.Seq streams, so a caller never
// materializes the whole resource set to look at one slice of it.
package collection

import (
	"context"
	"iter"

	"github.com/ternarybob/surveilr/internal/ingest/classify"
	"github.com/ternarybob/surveilr/internal/ingest/encounter"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
	"github.com/ternarybob/surveilr/internal/ingest/uniform"
)

// Enumerator is anything that can drive a pull-based sequence of
// candidate origins; every concrete type under internal/ingest/enumerate
// satisfies this with its All method.
type Enumerator interface {
	All(ctx context.Context) iter.Seq[resource.Encounterable]
}

// Collection binds a single enumerator to a single classifier. The
// classifier is stateless, so every item is reclassified independently
// as the caller pulls it — nothing about one item's classification
// depends on any other item's.
type Collection struct {
	Enumerator Enumerator
	Classifier *classify.Classifier
	ShellFactory resource.ShellExecutiveFactory
}

// New builds a Collection over an enumerator, a classifier, and the
// shell-executive factory used to bind any CAPTURABLE_EXECUTABLE origins
// encountered along the way.
func New(e Enumerator, c *classify.Classifier, shellFactory resource.ShellExecutiveFactory) *Collection {
	return &Collection{Enumerator: e, Classifier: c, ShellFactory: shellFactory}
}

// Encountered yields every EncounteredResource outcome the enumerator
// produces, classified and run through the encounter state machine, in
// enumerator order.
func (col *Collection) Encountered(ctx context.Context) iter.Seq[resource.Encountered] {
	return func(yield func(resource.Encountered) bool) {
		for er := range col.Enumerator.All(ctx) {
			if ctx.Err() != nil {
				return
			}

			var class resource.Class
			col.Classifier.Classify(er.URI(), &class, nil)

			outcome := encounter.Encounter(ctx, er, class, col.ShellFactory)
			if !yield(outcome) {
				return
			}
		}
	}
}

// Ignored narrows Encountered to the Ignored outcomes only.
func (col *Collection) Ignored(ctx context.Context) iter.Seq[resource.Encountered] {
	return filterKind(col.Encountered(ctx), resource.Ignored)
}

// NotIgnored yields every outcome except Ignored.
func (col *Collection) NotIgnored(ctx context.Context) iter.Seq[resource.Encountered] {
	return func(yield func(resource.Encountered) bool) {
		for outcome := range col.Encountered(ctx) {
			if outcome.Kind == resource.Ignored {
				continue
			}
			if !yield(outcome) {
				return
			}
		}
	}
}

// CapturableExecutables narrows NotIgnored to outcomes carrying a
// CapturableExecutable (spec.md §4.8).
func (col *Collection) CapturableExecutables(ctx context.Context) iter.Seq[resource.CapturableExecutable] {
	return func(yield func(resource.CapturableExecutable) bool) {
		for outcome := range col.Encountered(ctx) {
			if outcome.Kind != resource.CapturableExecOutcome || outcome.Exec == nil {
				continue
			}
			if !yield(*outcome.Exec) {
				return
			}
		}
	}
}

// UniformResources dispatches every non-ignored, non-capturable outcome's
// ContentResource through uniform.Dispatch, and every capturable outcome
// through uniform.DispatchExec, yielding the typed union spec.md §4.7/§4.8
// describe. Dispatch failure (spec.md §4.7: a resource with no nature) is
// surfaced as a Result with Err set rather than aborting the stream, per
// spec.md §7's propagation policy that a single bad resource never
// poisons the stream.
func (col *Collection) UniformResources(ctx context.Context) iter.Seq[uniform.Result] {
	return func(yield func(uniform.Result) bool) {
		for outcome := range col.NotIgnored(ctx) {
			switch outcome.Kind {
			case resource.CapturableExecOutcome:
				if outcome.Exec == nil {
					continue
				}
				if !yield(uniform.Result{Value: uniform.DispatchExec(outcome.Exec)}) {
					return
				}
			case resource.ResourceOutcome:
				if outcome.Content == nil {
					continue
				}
				value, err := uniform.Dispatch(outcome.Content)
				if !yield(uniform.Result{Value: value, Err: err}) {
					return
				}
			default:
				// NotFound/NotFile carry no content to dispatch.
				continue
			}
		}
	}
}

func filterKind(src iter.Seq[resource.Encountered], kind resource.EncounteredKind) iter.Seq[resource.Encountered] {
	return func(yield func(resource.Encountered) bool) {
		for outcome := range src {
			if outcome.Kind != kind {
				continue
			}
			if !yield(outcome) {
				return
			}
		}
	}
}
