// Package resource holds the core data model: the classification result,
// the polymorphic EncounterableResource tagged union, the materialized
// ContentResource, and the EncounteredResource outcome. Modeled as tagged
// unions (a kind enum plus per-kind fields) rather than inheritance, per
// the design note in spec.md §9.
package resource

import "github.com/ternarybob/surveilr/internal/ingest/flags"

// Class is the result of classifying a URI: a flag bitset plus the
// optional nature the classifier assigned.
type Class struct {
	Flags  flags.Set
	Nature *string
}

// WithNature returns a copy of c with Nature set.
func (c Class) WithNature(nature string) Class {
	c.Nature = &nature
	return c
}

// NatureOr returns the class's nature, or fallback if none was assigned.
func (c Class) NatureOr(fallback string) string {
	if c.Nature != nil {
		return *c.Nature
	}
	return fallback
}
