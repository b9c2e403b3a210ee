// Package query implements the shared filter and free-text search engine the
// domain centers delegate to. Everything here is a pure function over a
// record slice: criteria compose as a conjunction of independent predicates,
// an absent criterion constrains nothing, and the input order (the store's
// default listing) is preserved in the output.
package query

import (
	"strings"
	"time"
)

// Predicate decides whether one record matches one criterion.
type Predicate[T any] func(T) bool

// Apply returns the records matching every predicate, in input order.
// With no predicates it returns a copy of the input.
func Apply[T any](records []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if matchesAll(rec, preds) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesAll[T any](rec T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(rec) {
			return false
		}
	}
	return true
}

// Equals matches records whose extracted field equals want.
func Equals[T any, V comparable](get func(T) V, want V) Predicate[T] {
	return func(rec T) bool { return get(rec) == want }
}

// In matches records whose extracted field is a member of allowed.
func In[T any, V comparable](get func(T) V, allowed []V) Predicate[T] {
	set := make(map[V]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}
	return func(rec T) bool {
		_, ok := set[get(rec)]
		return ok
	}
}

// HasAllTags matches records whose tag set contains every wanted tag.
// Conjunctive on purpose: {a,b} matches [a] and [a,b] but not [a,c].
func HasAllTags[T any](get func(T) []string, wanted []string) Predicate[T] {
	return func(rec T) bool {
		tags := get(rec)
		for _, w := range wanted {
			found := false
			for _, tag := range tags {
				if tag == w {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
}

// ExpiringWithin matches records whose expiry falls strictly between now and
// now+window. A missing expiry never matches; an already-expired record
// never matches (the lower bound is now, exclusive).
func ExpiringWithin[T any](get func(T) *time.Time, window time.Duration, now time.Time) Predicate[T] {
	deadline := now.Add(window)
	return func(rec T) bool {
		exp := get(rec)
		if exp == nil {
			return false
		}
		return exp.After(now) && !exp.After(deadline)
	}
}

// MatchText builds the free-text predicate: the trimmed query must be a
// case-insensitive substring of at least one searchable field. An empty or
// whitespace-only query matches everything (search is skipped, not "match
// nothing").
func MatchText[T any](fields func(T) []string, q string) Predicate[T] {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return func(T) bool { return true }
	}
	return func(rec T) bool {
		for _, field := range fields(rec) {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	}
}
