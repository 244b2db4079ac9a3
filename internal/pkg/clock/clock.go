package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidClock = errors.New("time must be in HH:MM format")

// ParseMinutes converts an "HH:MM" wall-clock string into minutes since midnight.
// Empty input returns 0. Ranges are not checked and a segment that is not a
// number counts as 0, so callers that must tell "missing" from "midnight"
// check for presence first.
func ParseMinutes(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	parts := strings.Split(s, ":")
	hours := atoiOrZero(parts[0])
	minutes := 0
	if len(parts) > 1 {
		minutes = atoiOrZero(parts[1])
	}

	return hours*60 + minutes
}

// Parse is the strict form of ParseMinutes used when accepting input.
func Parse(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidClock)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidClock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidClock)
	}

	return hours*60 + minutes, nil
}

// FormatMinutes renders minutes since midnight as zero-padded "HH:MM".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
