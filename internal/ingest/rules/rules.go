// Package rules holds the resource-path rule set: the ordered regex lists
// the classifier evaluates against a URI. Grounded in the teacher's
// internal/common/config.go TOML-backed configuration idiom and
// internal/services/crawler/filters.go's compile-and-warn pattern for
// turning caller-supplied pattern strings into *regexp.Regexp.
package rules

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"
)

// RewriteRule replaces a previously-assigned nature when its Pattern
// matches the URI under consideration.
type RewriteRule struct {
	Pattern string `toml:"pattern" validate:"required"`
	Nature  string `toml:"nature" validate:"required"`

	compiled *regexp.Regexp
}

// Regexp returns the rewrite rule's compiled pattern.
func (r RewriteRule) Regexp() *regexp.Regexp { return r.compiled }

// patternSet is the TOML-loadable shape of a Set before its regexes are
// compiled.
type patternSet struct {
	Ignore     []string      `toml:"ignore"`
	Acquire    []string      `toml:"acquire"`
	Capturable []string      `toml:"capturable"`
	BatchSQL   []string      `toml:"batch_sql"`
	Rewrite    []RewriteRule `toml:"rewrite"`
}

// Set is the compiled, ready-to-evaluate resource path rule set: five
// ordered regex lists as spec'd — ignore, content-acquire, capturable
// executable, batch-SQL executable, and nature-rewrite.
type Set struct {
	Ignore     []*regexp.Regexp
	Acquire    []*regexp.Regexp
	Capturable []*regexp.Regexp
	BatchSQL   []*regexp.Regexp
	Rewrite    []RewriteRule
}

// RewriteLogEntry records one nature rewrite applied during classification.
type RewriteLogEntry struct {
	URI       string
	Original  string
	Rewritten string
}

const natureGroup = "nature"

// Default returns the built-in rule set named in the specification:
// ignore git/node_modules trees, acquire common text formats, recognize
// the surveilr[...] capturable-executable marker and the surveilr-SQL
// batch marker, and rewrite .tap/.text files to text/plain.
func Default() *Set {
	s, err := New(
		[]string{`(\.git|node_modules)/`},
		[]string{`\.(?P<nature>md|mdx|html|json|jsonc|txt|toml|yaml|tap|text)$`},
		[]string{`surveilr\[(?P<nature>[^\]]*)\]`},
		[]string{`surveilr-SQL`},
		[]RewriteRule{{Pattern: `\.(tap|text)$`, Nature: "text/plain"}},
	)
	if err != nil {
		// Defaults are authored in-repo and covered by tests; a failure
		// here is a programmer error, not a runtime condition.
		panic(fmt.Sprintf("surveilr/rules: invalid default rule set: %v", err))
	}
	return s
}

// New compiles the five pattern lists into a Set. Acquire and Capturable
// patterns must each expose a named capture group called "nature" — spec
// requires it, so a pattern missing the group is a construction error,
// not a silent no-op.
func New(ignore, acquire, capturable, batchSQL []string, rewrite []RewriteRule) (*Set, error) {
	s := &Set{}

	var err error
	if s.Ignore, err = compileAll(ignore, false); err != nil {
		return nil, fmt.Errorf("surveilr/rules: ignore patterns: %w", err)
	}
	if s.Acquire, err = compileAll(acquire, true); err != nil {
		return nil, fmt.Errorf("surveilr/rules: acquire patterns: %w", err)
	}
	if s.Capturable, err = compileAll(capturable, true); err != nil {
		return nil, fmt.Errorf("surveilr/rules: capturable patterns: %w", err)
	}
	if s.BatchSQL, err = compileAll(batchSQL, false); err != nil {
		return nil, fmt.Errorf("surveilr/rules: batch-sql patterns: %w", err)
	}

	validate := validator.New()
	for i := range rewrite {
		if err := validate.Struct(rewrite[i]); err != nil {
			return nil, fmt.Errorf("surveilr/rules: rewrite rule %d: %w", i, err)
		}
		re, err := regexp.Compile(rewrite[i].Pattern)
		if err != nil {
			return nil, fmt.Errorf("surveilr/rules: rewrite pattern %q: %w", rewrite[i].Pattern, err)
		}
		rewrite[i].compiled = re
	}
	s.Rewrite = rewrite

	return s, nil
}

// LoadTOML parses a TOML document (plain string arrays `ignore`,
// `acquire`, `capturable`, `batch_sql`, plus a `[[rewrite]]`
// array-of-tables for the one list with structured entries) into a
// compiled Set, appending each list to the matching Default() list.
func LoadTOML(data []byte, logger arbor.ILogger) (*Set, error) {
	var parsed patternSet
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("surveilr/rules: parse toml: %w", err)
	}

	base := Default()
	merge := func(dst []*regexp.Regexp, add []string, needsNature bool) ([]*regexp.Regexp, error) {
		if len(add) == 0 {
			return dst, nil
		}
		compiled, err := compileAll(add, needsNature)
		if err != nil {
			return nil, err
		}
		return append(append([]*regexp.Regexp{}, dst...), compiled...), nil
	}

	var err error
	s := &Set{Rewrite: base.Rewrite}
	if s.Ignore, err = merge(base.Ignore, parsed.Ignore, false); err != nil {
		return nil, err
	}
	if s.Acquire, err = merge(base.Acquire, parsed.Acquire, true); err != nil {
		return nil, err
	}
	if s.Capturable, err = merge(base.Capturable, parsed.Capturable, true); err != nil {
		return nil, err
	}
	if s.BatchSQL, err = merge(base.BatchSQL, parsed.BatchSQL, false); err != nil {
		return nil, err
	}
	if len(parsed.Rewrite) > 0 {
		validate := validator.New()
		for i := range parsed.Rewrite {
			if err := validate.Struct(parsed.Rewrite[i]); err != nil {
				return nil, fmt.Errorf("surveilr/rules: rewrite rule %d: %w", i, err)
			}
			re, err := regexp.Compile(parsed.Rewrite[i].Pattern)
			if err != nil {
				return nil, fmt.Errorf("surveilr/rules: rewrite pattern %q: %w", parsed.Rewrite[i].Pattern, err)
			}
			parsed.Rewrite[i].compiled = re
		}
		s.Rewrite = append(append([]RewriteRule{}, base.Rewrite...), parsed.Rewrite...)
	}

	if logger != nil {
		logger.Debug().
			Int("ignore", len(s.Ignore)).
			Int("acquire", len(s.Acquire)).
			Int("capturable", len(s.Capturable)).
			Int("batch_sql", len(s.BatchSQL)).
			Int("rewrite", len(s.Rewrite)).
			Msg("loaded resource path rule set")
	}

	return s, nil
}

func compileAll(patterns []string, needsNature bool) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		if needsNature && re.SubexpIndex(natureGroup) == -1 {
			return nil, fmt.Errorf("pattern %q missing required named capture group %q", p, natureGroup)
		}
		out = append(out, re)
	}
	return out, nil
}
