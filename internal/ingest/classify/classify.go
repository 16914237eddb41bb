// Package classify implements the URI classifier: spec.md §4.1's
// classify(uri, &class, log?) -> bool, evaluated against a rules.Set.
package classify

import (
	"regexp"

	"github.com/ternarybob/surveilr/internal/ingest/flags"
	"github.com/ternarybob/surveilr/internal/ingest/resource"
	"github.com/ternarybob/surveilr/internal/ingest/rules"
)

// Classifier is stateless and read-only over its rule set once built, so
// a single instance may be shared across concurrently-driven iterators.
type Classifier struct {
	rules *rules.Set
}

// New builds a Classifier over a compiled rule set.
func New(rs *rules.Set) *Classifier {
	return &Classifier{rules: rs}
}

// Classify evaluates uri against the five rule families in the exact
// order spec.md §4.1 mandates, short-circuiting on the first match. log,
// if non-nil, receives a RewriteLogEntry for every nature rewrite the
// acquire/capturable branches apply. It returns true iff some rule
// matched; class is left untouched beyond what the caller passed in
// otherwise.
func (c *Classifier) Classify(uri string, class *resource.Class, log *[]rules.RewriteLogEntry) bool {
	for _, re := range c.rules.Ignore {
		if re.MatchString(uri) {
			class.Flags = class.Flags.Set(flags.IgnoreResource)
			return true
		}
	}

	if c.matchNatureCapture(uri, c.rules.Acquire, flags.ContentAcquirable, class, log) {
		return true
	}

	if c.matchNatureCapture(uri, c.rules.Capturable, flags.CapturableExecutable, class, log) {
		return true
	}

	for _, re := range c.rules.BatchSQL {
		if re.MatchString(uri) {
			class.Flags = class.Flags.Set(flags.CapturableExecutable | flags.CapturableSQL)
			return true
		}
	}

	return false
}

// matchNatureCapture tries each regex in patterns in order; on the first
// match whose regex has a "nature" capture group (an empty capture is
// accepted), it sets bit on class, applies the rewrite list, and returns
// true.
func (c *Classifier) matchNatureCapture(uri string, patterns []*regexp.Regexp, bit flags.Set, class *resource.Class, log *[]rules.RewriteLogEntry) bool {
	for _, re := range patterns {
		match := re.FindStringSubmatch(uri)
		if match == nil {
			continue
		}
		idx := re.SubexpIndex("nature")
		if idx == -1 || idx >= len(match) {
			continue
		}

		class.Flags = class.Flags.Set(bit)
		nature := match[idx]
		nature = c.applyRewrite(uri, nature, log)
		class.Nature = &nature
		return true
	}
	return false
}

// applyRewrite walks the rewrite list in order; the first regex matching
// uri replaces nature (once — invariant: the rewrite list never clears a
// nature, only replaces it, and it never runs before a nature is set).
func (c *Classifier) applyRewrite(uri, nature string, log *[]rules.RewriteLogEntry) string {
	for _, rw := range c.rules.Rewrite {
		if rw.Regexp().MatchString(uri) {
			if log != nil {
				*log = append(*log, rules.RewriteLogEntry{
					URI:       uri,
					Original:  nature,
					Rewritten: rw.Nature,
				})
			}
			return rw.Nature
		}
	}
	return nature
}
