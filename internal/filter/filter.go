// Package filter evaluates combinable search criteria against in-memory
// collections. Criteria combine with AND semantics; an unset criterion is
// ignored rather than matching nothing, and evaluation preserves the
// collection's original order. The same engine serves job listings and
// interview questions.
package filter

import (
	"math"
	"strings"
)

// Criterion is one independent match condition over T. Inactive criteria
// are skipped during evaluation.
type Criterion[T any] interface {
	Active() bool
	Match(v T) bool
}

// Apply returns the ordered subsequence of items matching every active
// criterion. The input slice is never mutated.
func Apply[T any](items []T, criteria ...Criterion[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(item, criteria...) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether v satisfies every active criterion.
func Matches[T any](v T, criteria ...Criterion[T]) bool {
	for _, c := range criteria {
		if c == nil || !c.Active() {
			continue
		}
		if !c.Match(v) {
			return false
		}
	}
	return true
}

// Field adapts a single-valued accessor for use in a Substring criterion.
func Field[T any](get func(T) string) func(T) []string {
	return func(v T) []string { return []string{get(v)} }
}

// Substring matches when the term is contained, case-insensitively, in any
// value produced by any of the designated field accessors.
type Substring[T any] struct {
	Term   string
	Fields []func(T) []string
}

func (s Substring[T]) Active() bool {
	return strings.TrimSpace(s.Term) != "" && len(s.Fields) > 0
}

func (s Substring[T]) Match(v T) bool {
	term := strings.ToLower(strings.TrimSpace(s.Term))
	for _, get := range s.Fields {
		if get == nil {
			continue
		}
		for _, value := range get(v) {
			if strings.Contains(strings.ToLower(value), term) {
				return true
			}
		}
	}
	return false
}

// Membership matches when the entity's field value is an exact
// (case-sensitive) member of the candidate set. An empty candidate set
// deactivates the criterion.
type Membership[T any] struct {
	Candidates []string
	Field      func(T) string
}

func (m Membership[T]) Active() bool {
	return len(m.Candidates) > 0 && m.Field != nil
}

func (m Membership[T]) Match(v T) bool {
	value := m.Field(v)
	for _, candidate := range m.Candidates {
		if value == candidate {
			return true
		}
	}
	return false
}

// Range matches when the entity's own range overlaps the filter's, with
// touching boundaries counting as overlap. An entity without range data
// fails an active criterion. A zero Max means unbounded above.
type Range[T any] struct {
	Min    int
	Max    int
	Bounds func(T) (min, max int, ok bool)
}

func (r Range[T]) Active() bool {
	return (r.Min > 0 || r.Max > 0) && r.Bounds != nil
}

func (r Range[T]) Match(v T) bool {
	entityMin, entityMax, ok := r.Bounds(v)
	if !ok {
		return false
	}
	if entityMax <= 0 {
		entityMax = math.MaxInt
	}
	filterMax := r.Max
	if filterMax <= 0 {
		filterMax = math.MaxInt
	}
	return entityMax >= r.Min && entityMin <= filterMax
}

// Exact matches on case-sensitive equality. The empty string and the
// "all" sentinel deactivate the criterion, matching the UI's select
// controls.
type Exact[T any] struct {
	Value string
	Field func(T) string
}

func (e Exact[T]) Active() bool {
	return e.Value != "" && e.Value != "all" && e.Field != nil
}

func (e Exact[T]) Match(v T) bool {
	return e.Field(v) == e.Value
}
