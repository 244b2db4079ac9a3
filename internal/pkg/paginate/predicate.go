package paginate

import (
	"strings"
	"time"
)

// Predicate reports whether an item belongs in the filtered list.
type Predicate[T any] func(T) bool

// All matches when every non-nil predicate matches.
func All[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if p != nil && !p(item) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one non-nil predicate matches. With no
// predicates it matches everything.
func Any[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		seen := false
		for _, p := range preds {
			if p == nil {
				continue
			}
			seen = true
			if p(item) {
				return true
			}
		}
		return !seen
	}
}

func Not[T any](p Predicate[T]) Predicate[T] {
	return func(item T) bool {
		return !p(item)
	}
}

// Contains is a case-insensitive substring match. An empty query matches everything.
func Contains[T any](get func(T) string, query string) Predicate[T] {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	return func(item T) bool {
		return strings.Contains(strings.ToLower(get(item)), query)
	}
}

// Equals is an exact match. An empty value matches everything.
func Equals[T any](get func(T) string, value string) Predicate[T] {
	if value == "" {
		return nil
	}
	return func(item T) bool {
		return get(item) == value
	}
}

// Within matches dates in [from, to] compared by calendar day. A nil bound is open.
func Within[T any](get func(T) time.Time, from, to *time.Time) Predicate[T] {
	if from == nil && to == nil {
		return nil
	}
	return func(item T) bool {
		d := truncateDay(get(item))
		if from != nil && d.Before(truncateDay(*from)) {
			return false
		}
		if to != nil && d.After(truncateDay(*to)) {
			return false
		}
		return true
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
