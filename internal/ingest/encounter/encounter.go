// Package encounter implements the encounter state machine: combining a
// classified EncounterableResource into an EncounteredResource outcome
// (spec.md §4.5).
package encounter

import (
	"context"

	"github.com/ternarybob/surveilr/internal/ingest/flags"
	"github.com/ternarybob/surveilr/internal/ingest/metadata"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
	"github.com/ternarybob/surveilr/internal/ingest/supplier"
)

// Encounter runs the state machine shown in spec.md §4.5 against an
// already-classified resource. The caller classifies by URI first (see
// classify.Classifier.Classify) and passes the resulting class in.
func Encounter(ctx context.Context, er resource.Encounterable, class resource.Class, shellFactory resource.ShellExecutiveFactory) resource.Encountered {
	uri := er.URI()

	if class.Flags.Has(flags.IgnoreResource) {
		return resource.Encountered{Kind: resource.Ignored, URI: uri, Class: class}
	}

	info, err := er.MetaInfo(ctx)
	if err != nil {
		return resource.Encountered{Kind: resource.NotFound, URI: uri, Class: class}
	}

	if er.IsFilesystemOrigin() && !info.Flags.Has(flags.IsFile) {
		return resource.Encountered{Kind: resource.NotFile, URI: uri, Class: class}
	}

	pair := supplier.Pair{}
	if class.Flags.Has(flags.ContentAcquirable) {
		pair = supplier.NewPair(er.Open)
	}

	nature := resolveNature(class, info)

	cr := &resource.ContentResource{
		URI:         uri,
		Nature:      &nature,
		Size:        ptr(info.Size),
		CreatedAt:   info.CreatedAt,
		ModifiedAt:  info.ModifiedAt,
		Flags:       class.Flags.AsContentResource(),
		Binary:      pair.Binary,
		Text:        pair.Text,
		Frontmatter: pair.Frontmatter,
	}

	if er.Kind() == resource.KindTaskLine || class.Flags.Has(flags.CapturableExecutable) {
		ce := er.BuildCapturable(class, shellFactory)
		return resource.Encountered{Kind: resource.CapturableExecOutcome, URI: uri, Class: class, Content: cr, Exec: &ce}
	}

	return resource.Encountered{Kind: resource.ResourceOutcome, URI: uri, Class: class, Content: cr}
}

// resolveNature applies the precedence spec.md §3 invariant 6 names:
// classifier-assigned nature, then filesystem extension, then the literal
// fallback "json".
func resolveNature(class resource.Class, info metadata.Info) string {
	if class.Nature != nil {
		return *class.Nature
	}
	if info.Nature != nil {
		return *info.Nature
	}
	return "json"
}

func ptr[T any](v T) *T { return &v }
