package solr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// The suffix duplication on open-ended ranges ("2 years+ years") mirrors the
// site this index was built for. Do not "fix" these expectations without
// changing the front end that parses the labels.
func TestConvertAges(t *testing.T) {
	tests := []struct {
		name string
		ages []int
		want string
	}{
		{"open ended months", []int{3, 0}, "3 months + "},
		{"open ended years", []int{24, 0}, "2 years+ years"},
		{"zero lower bound", []int{0, 6}, "0 - 6 months"},
		{"months to years", []int{18, 30}, "18 months - 2.5 years"},
		{"years range", []int{24, 36}, "2 - 3 years"},
		{"single month", []int{1, 6}, "1 month - 6 months"},
		{"fractional years", []int{30, 54}, "2.5 - 4.5 years"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertAges(tt.ages))
		})
	}
}

func TestCountDaysByName(t *testing.T) {
	// June 2026: the 1st is a Monday.
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 29, 0, 0, 0, 0, time.UTC)

	// Mondays on the 1st, 8th, 15th, 22nd; the 29th is excluded.
	assert.Equal(t, 4, CountDaysByName("monday", start, end))
	assert.Equal(t, 4, CountDaysByName("Mon", start, end))
	assert.Equal(t, 4, CountDaysByName("Sunday", start, end))
	assert.Equal(t, 0, CountDaysByName("", start, end))
}

func TestCountDaysByName_EndExclusive(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, CountDaysByName("monday", start, start))
	assert.Equal(t, 1, CountDaysByName("monday", start, start.AddDate(0, 0, 1)))
}
