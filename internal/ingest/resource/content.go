package resource

import (
	"time"

	"github.com/ternarybob/surveilr/internal/ingest/flags"
	"github.com/ternarybob/surveilr/internal/ingest/supplier"
)

// ContentResource is the materialized record spec.md §3 describes: a
// stable URI, optional nature, optional size/times, and the two optional
// content suppliers. It owns these exclusively — the suppliers close over
// a clone of whatever the origin needed, so the originating enumerator is
// free to move on.
type ContentResource struct {
	URI        string
	Nature     *string
	Size       *int64
	CreatedAt  *time.Time
	ModifiedAt *time.Time

	// Flags carries the content-resource view: the encounterable bits,
	// unchanged, per the flags.Set subset contract.
	Flags flags.Set

	Binary      supplier.BinarySupplier
	Text        supplier.TextSupplier
	Frontmatter supplier.FrontmatterSupplier
}

// HasSuppliers reports whether CONTENT_ACQUIRABLE suppliers are present.
func (cr ContentResource) HasSuppliers() bool {
	return cr.Binary != nil && cr.Text != nil
}

// EncounteredKind is the outcome discriminant of the encounter state
// machine (spec.md §4.5): Ignored, NotFound, NotFile, Resource, or
// CapturableExec.
type EncounteredKind uint8

const (
	Ignored EncounteredKind = iota
	NotFound
	NotFile
	ResourceOutcome
	CapturableExecOutcome
)

func (k EncounteredKind) String() string {
	switch k {
	case Ignored:
		return "Ignored"
	case NotFound:
		return "NotFound"
	case NotFile:
		return "NotFile"
	case ResourceOutcome:
		return "Resource"
	case CapturableExecOutcome:
		return "CapturableExec"
	default:
		return "Unknown"
	}
}

// Encountered is the tagged outcome of encounter(): every variant carries
// the originating URI and class; Resource/CapturableExec additionally
// carry the materialized ContentResource, and CapturableExec additionally
// carries the CapturableExecutable.
type Encountered struct {
	Kind    EncounteredKind
	URI     string
	Class   Class
	Content *ContentResource
	Exec    *CapturableExecutable
}
