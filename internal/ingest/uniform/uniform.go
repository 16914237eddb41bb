// Package uniform implements the typed UniformResource dispatch spec.md
// §4.7 names: given a materialized resource.ContentResource (or
// resource.CapturableExecutable), pick the narrow, nature-specific
// variant that downstream transformers can type-switch over. Modeled as
// a tagged union via a Kind() discriminant, matching resource's
// tagged-union style rather than an inheritance hierarchy.
package uniform

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
	"github.com/ternarybob/surveilr/internal/ingest/shellexec"
)

// Kind discriminates the UniformResource variants.
type Kind uint8

const (
	KindHtml Kind = iota
	KindImage
	KindJson
	KindJsonableText
	KindMarkdown
	KindPlainText
	KindSourceCode
	KindXml
	KindCapturableExec
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindHtml:
		return "Html"
	case KindImage:
		return "Image"
	case KindJson:
		return "Json"
	case KindJsonableText:
		return "JsonableText"
	case KindMarkdown:
		return "Markdown"
	case KindPlainText:
		return "PlainText"
	case KindSourceCode:
		return "SourceCode"
	case KindXml:
		return "Xml"
	case KindCapturableExec:
		return "CapturableExec"
	default:
		return "Unknown"
	}
}

// UniformResource is the tagged union spec.md §3/§4.7 describes. Only the
// fields relevant to Kind are meaningful; Format/Schema/Interpreter carry
// the per-variant refinement the nature string encoded, and Hint carries
// a best-effort mimetype guess for the Unknown variant only.
type UniformResource struct {
	Kind     Kind
	Resource *resource.ContentResource
	Exec     *resource.CapturableExecutable

	Format      string // Json
	Schema      string // JsonableText, Xml
	Interpreter string // SourceCode

	Hint string // Unknown: best-effort mimetype.Detect result
}

// exactNatureTable is the nature -> variant lookup spec.md §4.7 specifies,
// evaluated by exact match; Dispatch then consults imageExtensions and
// sourceCodeExtensions, also by exact match. No suffix matching is done.
var exactNatureTable = map[string]Kind{
	"text/html":             KindHtml,
	"html":                  KindHtml,
	"text/markdown":         KindMarkdown,
	"md":                    KindMarkdown,
	"mdx":                   KindMarkdown,
	"text/plain":            KindPlainText,
	"txt":                   KindPlainText,
	"text":                  KindPlainText,
	"application/xml":       KindXml,
	"text/xml":              KindXml,
	"xml":                   KindXml,
	"application/json":      KindJson,
	"json":                  KindJson,
	"jsonc":                 KindJson,
	"application/toml":      KindJsonableText,
	"toml":                  KindJsonableText,
	"application/yaml":      KindJsonableText,
	"yml":                   KindJsonableText,
	"tap":                   KindJsonableText,
	"svg":                   KindXml,
	"image/svg+xml":         KindXml,
}

// schemaOverride names the Schema value an exactNatureTable entry needs
// when it isn't simply the nature string itself (e.g. "svg" routes to
// Xml{Svg} rather than Xml{nature}).
var schemaOverride = map[string]string{
	"svg":           "svg",
	"image/svg+xml": "svg",
}

var imageExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "tiff": true, "webp": true, "bmp": true, "ico": true,
}

// sourceCodeExtensions is the closed SourceCode set spec.md §4.7 defines:
// js/ts/rs only, everything else falls through to Unknown.
var sourceCodeExtensions = map[string]string{
	"js": "JavaScript", "ts": "TypeScript", "rs": "Rust",
}

// Dispatch classifies a materialized ContentResource into its
// UniformResource variant by nature. A ContentResource with no nature
// fails dispatch outright (spec.md §4.7) with a diagnostic naming the
// URI; a nature none of the tables recognize yields KindUnknown. Dispatch
// does no content sniffing, so Hint is left empty; HintFor computes one
// from content the caller has already read.
func Dispatch(cr *resource.ContentResource) (UniformResource, error) {
	if cr.Nature == nil {
		return UniformResource{}, &shellexec.Diagnostic{
			Src:   cr.URI,
			Issue: fmt.Sprintf("unable to obtain nature for %s from supplied resource", cr.URI),
		}
	}
	nature := strings.ToLower(*cr.Nature)

	if kind, ok := exactNatureTable[nature]; ok {
		return UniformResource{Kind: kind, Resource: cr, Format: formatFor(kind, nature), Schema: schemaFor(kind, nature)}, nil
	}

	if imageExtensions[nature] {
		return UniformResource{Kind: KindImage, Resource: cr}, nil
	}

	if interp, ok := sourceCodeExtensions[nature]; ok {
		return UniformResource{Kind: KindSourceCode, Resource: cr, Interpreter: interp}, nil
	}

	return UniformResource{Kind: KindUnknown, Resource: cr, Hint: sniffHint(cr)}, nil
}

// Result pairs a dispatched UniformResource with any dispatch error, so
// collection.Collection.UniformResources can stream one failure without
// aborting the rest of the run (spec.md §7).
type Result struct {
	Value UniformResource
	Err   error
}

// DispatchExec wraps an invokable/requested capturable executable as the
// CapturableExec variant; there is no nature-based branching here since
// the classifier already decided this URI was capturable.
func DispatchExec(ce *resource.CapturableExecutable) UniformResource {
	return UniformResource{Kind: KindCapturableExec, Exec: ce}
}

func formatFor(kind Kind, nature string) string {
	if kind == KindJson {
		return nature
	}
	return ""
}

func schemaFor(kind Kind, nature string) string {
	if override, ok := schemaOverride[nature]; ok {
		return override
	}
	if kind == KindJsonableText || kind == KindXml {
		return nature
	}
	return ""
}

// sniffHint returns the Unknown-variant hint Dispatch attaches, which is
// always empty: it never reads the resource's content, whether or not a
// Binary supplier is present.
func sniffHint(cr *resource.ContentResource) string {
	if cr.Binary == nil {
		return ""
	}
	// Sniffing requires reading the content, which is exactly what the
	// lazy Binary supplier exists to defer; Dispatch stays synchronous and
	// non-I/O, so the hint is populated lazily by HintFor instead.
	return ""
}

// HintFor runs mimetype detection against already-read binary content.
// Callers that need the Unknown-variant hint call this after pulling the
// resource's Binary supplier, rather than Dispatch doing I/O implicitly.
func HintFor(content []byte) string {
	return mimetype.Detect(content).String()
}
