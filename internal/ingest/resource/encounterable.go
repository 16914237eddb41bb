package resource

import (
	"context"
	"io"

	"github.com/ternarybob/surveilr/internal/ingest/metadata"
)

// Kind identifies which of the four EncounterableResource variants a
// value is. Operations dispatch on Kind rather than on a type hierarchy.
type Kind uint8

const (
	KindWalkDir Kind = iota
	KindSmartIgnore
	KindVFS
	KindTaskLine
)

func (k Kind) String() string {
	switch k {
	case KindWalkDir:
		return "walkdir"
	case KindSmartIgnore:
		return "smart-ignore"
	case KindVFS:
		return "vfs"
	case KindTaskLine:
		return "task-line"
	default:
		return "unknown"
	}
}

// Encounterable is the tagged union spec.md §3 names EncounterableResource:
// a real-FS WalkDir entry, a gitignore-honoring SmartIgnore entry, a
// virtual-FS path, or a task-shell line. Every operation dispatches on
// Kind(); there is no shared base type to inherit from.
type Encounterable interface {
	Kind() Kind
	URI() string
	IsFilesystemOrigin() bool

	// MetaInfo reads size/time/file-kind metadata from the origin.
	MetaInfo(ctx context.Context) (metadata.Info, error)

	// Open opens the origin for one content read. Task-line origins
	// return ErrContentNotSupported since they are never
	// CONTENT_ACQUIRABLE.
	Open(ctx context.Context) (io.ReadCloser, error)

	// BuildCapturable constructs the CapturableExecutable this origin
	// yields when classified CAPTURABLE_EXECUTABLE, verifying the OS
	// execute bit for file-backed origins at construction time.
	BuildCapturable(class Class, factory ShellExecutiveFactory) CapturableExecutable
}

// ErrContentNotSupported is returned by Open on origins that never carry
// readable content (currently: task-line origins).
var ErrContentNotSupported = errNotSupported("surveilr/resource: origin does not support content reads")

type errNotSupported string

func (e errNotSupported) Error() string { return string(e) }
