// Package frontmatter implements the frontmatter collaborator named in
// spec.md §6: given a text blob, return the declared nature tag (if any),
// the raw frontmatter block, its parsed form, and the remaining body.
//
// Grounded in internal/services/pdf/service.go's stripFrontmatter, which
// looks for a leading "---" delimiter pair; generalized here to also
// recognize TOML's "+++" delimiter and to parse rather than discard the
// block, using the teacher's own serialization dependencies
// (gopkg.in/yaml.v3, github.com/pelletier/go-toml/v2).
package frontmatter

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Result is the frontmatter collaborator's output.
type Result struct {
	NatureTag string // the "nature" key of the frontmatter, if present
	Raw       string // the raw frontmatter block, without delimiters
	Parsed    map[string]interface{}
	ParseErr  error
	Body      string // the text with its frontmatter block removed
}

const (
	yamlDelim = "---"
	tomlDelim = "+++"
)

// Extract locates a leading YAML (---) or TOML (+++) frontmatter block in
// text and parses it. Text with no recognizable frontmatter block is
// returned unchanged as Body with a zero-value Result otherwise.
func Extract(text string) Result {
	if block, body, ok := splitDelimited(text, yamlDelim); ok {
		var parsed map[string]interface{}
		err := yaml.Unmarshal([]byte(block), &parsed)
		return Result{
			NatureTag: natureOf(parsed),
			Raw:       block,
			Parsed:    parsed,
			ParseErr:  err,
			Body:      body,
		}
	}

	if block, body, ok := splitDelimited(text, tomlDelim); ok {
		var parsed map[string]interface{}
		err := toml.Unmarshal([]byte(block), &parsed)
		return Result{
			NatureTag: natureOf(parsed),
			Raw:       block,
			Parsed:    parsed,
			ParseErr:  err,
			Body:      body,
		}
	}

	return Result{Body: text}
}

// splitDelimited finds a leading `delim\n ... \ndelim` block and returns
// its inner text and the remainder of the document.
func splitDelimited(text, delim string) (block, body string, ok bool) {
	trimmed := strings.TrimLeft(text, "﻿ \t\r\n")
	if !strings.HasPrefix(trimmed, delim) {
		return "", text, false
	}

	rest := trimmed[len(delim):]
	rest = strings.TrimPrefix(rest, "\n")
	if strings.HasPrefix(rest, "\r\n") {
		rest = rest[2:]
	}

	closeIdx := strings.Index(rest, "\n"+delim)
	if closeIdx < 0 {
		return "", text, false
	}

	block = rest[:closeIdx]
	remainder := rest[closeIdx+1+len(delim):]
	remainder = strings.TrimPrefix(remainder, "\r\n")
	remainder = strings.TrimPrefix(remainder, "\n")
	return block, remainder, true
}

func natureOf(parsed map[string]interface{}) string {
	if parsed == nil {
		return ""
	}
	if v, ok := parsed["nature"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
