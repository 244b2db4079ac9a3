package validator

import (
	"strings"
	"time"
)

// Paging applies the list defaults to page and limit and records out-of-range values.
func Paging(errs *ValidationErrors, page, limit *int) {
	if *page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if *page == 0 {
		*page = 1 // Default page
	}

	if *limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if *limit == 0 {
		*limit = 20 // Default limit
	}
	if *limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}
}

// DateRange parses optional YYYY-MM-DD bounds.
func DateRange(errs *ValidationErrors, start, end *string) (from, to *time.Time) {
	if start != nil && *start != "" {
		if d, ok := IsValidDate(*start); ok {
			from = &d
		} else {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}

	if end != nil && *end != "" {
		if d, ok := IsValidDate(*end); ok {
			to = &d
		} else {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}

	if from != nil && to != nil && to.Before(*from) {
		errs.Add("end_date", "end_date must not be before start_date")
	}
	return from, to
}

// Sorting checks sort_by against allowed and fills in defaults.
func Sorting(errs *ValidationErrors, sortBy *string, allowed []string, defaultSortBy string, sortOrder *string) {
	if *sortBy != "" {
		if !IsInSlice(*sortBy, allowed) {
			errs.Add("sort_by", "sort_by must be one of: "+strings.Join(allowed, ", "))
		}
	} else {
		*sortBy = defaultSortBy
	}

	if *sortOrder != "" {
		*sortOrder = strings.ToLower(*sortOrder)
		if !IsInSlice(*sortOrder, []string{"asc", "desc"}) {
			errs.Add("sort_order", "sort_order must be one of: asc, desc")
		}
	} else {
		*sortOrder = "desc" // Default descending (newest first)
	}
}
