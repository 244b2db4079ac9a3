package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestSummarize(t *testing.T) {
	records := []Record{
		{TimeIn: ptr("10:00"), TimeOut: ptr("15:00")},
		{TimeIn: ptr("10:00"), TimeOut: ptr("15:30")},
		{TimeIn: ptr("19:00"), TimeOut: ptr("23:00")},
		{},
		{LeaveType: ptr("Sick leave")},
		{LeaveType: ptr("Maternity leave")},
	}

	tally := Summarize(records)

	assert.Equal(t, 6, tally.Total)
	require.Len(t, tally.Counts, len(StatusOrder)+1)
	assert.Equal(t, StatusAbsent, tally.Counts[0].Status)
	assert.Equal(t, 1, tally.Count(StatusAbsent))
	assert.Equal(t, 2, tally.Count(StatusEarlyOut))
	assert.Equal(t, 1, tally.Count(StatusLateInEarlyOut))
	assert.Equal(t, 0, tally.Count(StatusHalfDay))
	assert.Equal(t, 1, tally.Count(Status("Sick leave")))
	assert.Equal(t, StatusCount{Status: "Maternity leave", Count: 1}, tally.Counts[len(tally.Counts)-1])
}

func TestSummarize_Empty(t *testing.T) {
	tally := Summarize(nil)
	assert.Equal(t, 0, tally.Total)
	assert.Len(t, tally.Counts, len(StatusOrder))
	assert.Equal(t, 0, tally.Count(StatusLateIn))
}
