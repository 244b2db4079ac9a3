package clock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMinutes(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"   ", 0},
		{"00:00", 0},
		{"09:00", 540},
		{"18:15", 1095},
		{"23:59", 1439},
		{"7:5", 425},
		{"25:99", 25*60 + 99},
		{"ab:30", 30},
		{"10", 600},
	}
	for _, c := range cases {
		got := ParseMinutes(c.input)
		if got != c.want {
			t.Errorf("ParseMinutes(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestFormatMinutes_RoundTrip(t *testing.T) {
	for m := 0; m < 24*60; m++ {
		s := FormatMinutes(m)
		if got := ParseMinutes(s); got != m {
			t.Fatalf("ParseMinutes(FormatMinutes(%d)) = %d (formatted %q)", m, got, s)
		}
	}
	assert.Equal(t, "09:05", FormatMinutes(545))
}

func TestParse(t *testing.T) {
	valid := map[string]int{"00:00": 0, "08:30": 510, "23:59": 1439}
	for s, want := range valid {
		got, err := Parse(s)
		assert.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	invalid := []string{"", "24:00", "12:60", "9:00", "09:5", "09-00", "aa:bb", "09:00:00"}
	for _, s := range invalid {
		_, err := Parse(s)
		if !errors.Is(err, ErrInvalidClock) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidClock", s, err)
		}
	}
}
