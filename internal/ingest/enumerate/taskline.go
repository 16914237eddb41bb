package enumerate

import (
	"context"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/ternarybob/surveilr/internal/ingest/flags"
	"github.com/ternarybob/surveilr/internal/ingest/metadata"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
)

const defaultTaskLineNature = "json"

// taskLineOrigin is the Encounterable for one parsed task-shell line. It
// is never CONTENT_ACQUIRABLE (Open always fails) and always resolves to
// CapturableExec regardless of classification, per spec.md §4.5.
type taskLineOrigin struct {
	uri      string
	identity *string
	command  string
	nature   string
}

var _ resource.Encounterable = taskLineOrigin{}

func (o taskLineOrigin) Kind() resource.Kind      { return resource.KindTaskLine }
func (o taskLineOrigin) URI() string              { return o.uri }
func (o taskLineOrigin) IsFilesystemOrigin() bool { return false }

func (o taskLineOrigin) MetaInfo(context.Context) (metadata.Info, error) {
	return metadata.ForTaskLine(o.nature), nil
}

func (o taskLineOrigin) Open(context.Context) (io.ReadCloser, error) {
	return nil, resource.ErrContentNotSupported
}

func (o taskLineOrigin) BuildCapturable(class resource.Class, factory resource.ShellExecutiveFactory) resource.CapturableExecutable {
	return resource.CapturableExecutable{
		Kind:              resource.CapturableInvokable,
		URI:               o.uri,
		InterpretableCode: o.command,
		Nature:            o.nature,
		IsBatchedSQL:      class.Flags.Has(flags.CapturableSQL),
		Shell:             factory.ForScript(o.command, o.identity),
	}
}

// parseTaskLine implements the task-line grammar spec.md §6 defines: a
// JSON object yields (identity, command) from its first non-"nature"
// string-valued field, with "nature" (default "json") read from the
// "nature" field; anything else is the raw command with no identity and
// nature "json". Uses gjson for a cheap "is this actually a JSON object"
// probe instead of a full encoding/json unmarshal into a typed struct.
func parseTaskLine(line string) taskLineOrigin {
	trimmed := strings.TrimSpace(line)
	if !gjson.Valid(trimmed) || !gjson.Parse(trimmed).IsObject() {
		return taskLineOrigin{uri: trimmed, command: trimmed, nature: defaultTaskLineNature}
	}

	nature := defaultTaskLineNature
	var identity *string
	command := "no task found"

	gjson.Parse(trimmed).ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			return true
		}
		k := key.String()
		if k == "nature" {
			nature = value.String()
			return true
		}
		if identity == nil {
			id := k
			identity = &id
			command = value.String()
		}
		return true
	})

	uri := trimmed
	if identity != nil {
		uri = *identity
	}

	return taskLineOrigin{uri: uri, identity: identity, command: command, nature: nature}
}
