package attendance

import (
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/clock"
)

type Status string

const (
	StatusAbsent         Status = "Absent"
	StatusLateIn         Status = "Late IN"
	StatusHalfDay        Status = "Half Day"
	StatusEarlyOut       Status = "Early Out"
	StatusLateInEarlyOut Status = "Late In and Early Out"
)

const (
	LateInCutoff          = "18:15"
	MinShiftMinutes       = 360
	HalfDayCeilingMinutes = 420
)

// Rule names the branch of the classifier that produced a status.
type Rule string

const (
	RuleLeave          Rule = "leave"
	RuleMissingTime    Rule = "missing_time"
	RuleLateInEarlyOut Rule = "late_in_early_out"
	RuleLateIn         Rule = "late_in"
	RuleEarlyOut       Rule = "early_out"
	RuleHalfDay        Rule = "half_day"
	// RuleFallthrough is a complete, on-time shift. It maps to Absent because
	// no Present status exists; see DESIGN.md before changing it.
	RuleFallthrough Rule = "fallthrough"
)

type Classification struct {
	Status          Status
	Rule            Rule
	DurationMinutes int
	LateIn          bool
	EarlyOut        bool
}

// Classify derives the attendance status of a day. A leave type wins over
// clock times; a missing clock time means Absent.
func Classify(timeIn, timeOut, leaveType string) Status {
	return Explain(timeIn, timeOut, leaveType).Status
}

// Explain is Classify plus the intermediate values and the rule that matched.
func Explain(timeIn, timeOut, leaveType string) Classification {
	if leaveType != "" {
		return Classification{Status: Status(leaveType), Rule: RuleLeave}
	}
	if timeIn == "" || timeOut == "" {
		return Classification{Status: StatusAbsent, Rule: RuleMissingTime}
	}

	in := clock.ParseMinutes(timeIn)
	out := clock.ParseMinutes(timeOut)

	c := Classification{
		DurationMinutes: out - in,
		LateIn:          in > clock.ParseMinutes(LateInCutoff),
	}
	c.EarlyOut = c.DurationMinutes < MinShiftMinutes

	switch {
	case c.LateIn && c.EarlyOut:
		c.Status, c.Rule = StatusLateInEarlyOut, RuleLateInEarlyOut
	case c.LateIn:
		c.Status, c.Rule = StatusLateIn, RuleLateIn
	case c.EarlyOut:
		c.Status, c.Rule = StatusEarlyOut, RuleEarlyOut
	case c.DurationMinutes < HalfDayCeilingMinutes:
		c.Status, c.Rule = StatusHalfDay, RuleHalfDay
	default:
		c.Status, c.Rule = StatusAbsent, RuleFallthrough
	}
	return c
}
