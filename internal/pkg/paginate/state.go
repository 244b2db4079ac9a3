package paginate

import "slices"

// PageSizes are the sizes a list screen may offer.
var PageSizes = []int{10, 20, 50, 100}

// State is the pager state owned by one list screen.
type State struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// ActionKind enumerates pager actions.
type ActionKind int

const (
	NextPage ActionKind = iota
	PrevPage
	GoToPage
	SetPageSize
	ResetPage
)

type Action struct {
	Kind  ActionKind
	Value int
}

// NewState returns the state for a freshly opened screen.
func NewState() State {
	return State{Page: 1, PageSize: DefaultPageSize}
}

// Update applies an action and returns the next state. The page never drops
// below 1; use Clamp to bound it by the number of pages.
func Update(s State, a Action) State {
	s = s.normalize()

	switch a.Kind {
	case NextPage:
		s.Page++
	case PrevPage:
		if s.Page > 1 {
			s.Page--
		}
	case GoToPage:
		if a.Value >= 1 {
			s.Page = a.Value
		}
	case SetPageSize:
		if slices.Contains(PageSizes, a.Value) {
			s.PageSize = a.Value
			s.Page = 1
		}
	case ResetPage:
		s.Page = 1
	}

	return s
}

// Clamp bounds the page to [1, totalPages].
func (s State) Clamp(totalPages int) State {
	s = s.normalize()
	if totalPages < 1 {
		s.Page = 1
		return s
	}
	if s.Page > totalPages {
		s.Page = totalPages
	}
	return s
}

func (s State) normalize() State {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize < 1 {
		s.PageSize = DefaultPageSize
	}
	if s.PageSize > MaxPageSize {
		s.PageSize = MaxPageSize
	}
	return s
}

// Apply runs Paginate with the state's page and size.
func Apply[T any](s State, items []T, pred Predicate[T]) Page[T] {
	s = s.normalize()
	return Paginate(items, pred, s.Page, s.PageSize)
}
