package attendance

import "github.com/cmlabs-hris/hris-portal-go/internal/domain/leave"

// StatusOrder is the display order of summary buckets.
var StatusOrder = []Status{
	StatusAbsent,
	StatusLateIn,
	StatusEarlyOut,
	StatusLateInEarlyOut,
	StatusHalfDay,
	Status(leave.TypeCasual),
	Status(leave.TypeSick),
	Status(leave.TypeAnnual),
}

type StatusCount struct {
	Status Status
	Count  int
}

// Tally is the per-status count over a set of records.
type Tally struct {
	Counts []StatusCount
	Total  int
}

// Count returns the bucket size for s.
func (t Tally) Count(s Status) int {
	for _, c := range t.Counts {
		if c.Status == s {
			return c.Count
		}
	}
	return 0
}

// Summarize buckets records by derived status. Every status in StatusOrder
// is present, zero or not; other leave labels follow in first-seen order.
func Summarize(records []Record) Tally {
	counts := make(map[Status]int)
	var extra []Status
	for _, r := range records {
		s := r.Status()
		if _, seen := counts[s]; !seen && !isOrdered(s) {
			extra = append(extra, s)
		}
		counts[s]++
	}

	t := Tally{Total: len(records)}
	for _, s := range StatusOrder {
		t.Counts = append(t.Counts, StatusCount{Status: s, Count: counts[s]})
	}
	for _, s := range extra {
		t.Counts = append(t.Counts, StatusCount{Status: s, Count: counts[s]})
	}
	return t
}

func isOrdered(s Status) bool {
	for _, o := range StatusOrder {
		if o == s {
			return true
		}
	}
	return false
}

// KnownStatuses lists every label a filter may ask for.
func KnownStatuses() []string {
	out := make([]string, 0, len(StatusOrder))
	for _, s := range StatusOrder {
		out = append(out, string(s))
	}
	return out
}
