// Package paginate filters, sorts and slices in-memory lists for list endpoints.
package paginate

import (
	"slices"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is one slice of a filtered list plus the numbers a pager needs.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// Paginate keeps the items matching pred and returns the requested page.
// A nil pred matches everything. Pages past the end come back empty.
func Paginate[T any](items []T, pred Predicate[T], page, pageSize int) Page[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	matched := Filter(items, pred)
	total := len(matched)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	// page and pageSize come from query strings; check bounds before multiplying.
	pageItems := []T{}
	if page <= totalPages {
		offset := (page - 1) * pageSize
		end := offset + min(pageSize, total-offset)
		pageItems = matched[offset:end]
	}

	return Page[T]{
		Items:      pageItems,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// Filter returns a new slice with the items matching pred.
func Filter[T any](items []T, pred Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred == nil || pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Sort returns a stably sorted copy of items.
func Sort[T any](items []T, cmp func(a, b T) int, desc bool) []T {
	out := slices.Clone(items)
	if cmp == nil {
		return out
	}
	if desc {
		slices.SortStableFunc(out, func(a, b T) int { return cmp(b, a) })
		return out
	}
	slices.SortStableFunc(out, cmp)
	return out
}

// Map converts the items of a page, keeping its counters.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return Page[U]{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
	}
}
