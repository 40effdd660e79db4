package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalendar_IsBusinessDay(t *testing.T) {
	cal := NewCalendar()

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"weekday", date(2026, time.August, 28), true},       // Friday
		{"saturday", date(2026, time.August, 29), false},
		{"sunday", date(2026, time.August, 30), false},
		{"new year", date(2026, time.January, 1), false},
		{"seollal", date(2026, time.February, 17), false},
		{"liberation day substitute", date(2026, time.August, 17), false},
		{"regular monday", date(2026, time.August, 24), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.IsBusinessDay(tt.date))
		})
	}
}

func TestCalendar_NearestBusinessDay(t *testing.T) {
	cal := NewCalendar()

	// Sunday 2026-08-30 resolves back to Friday 2026-08-28
	got := cal.NearestBusinessDay(date(2026, time.August, 30))
	assert.Equal(t, date(2026, time.August, 28), got)

	// A trading day resolves to itself
	got = cal.NearestBusinessDay(date(2026, time.August, 28))
	assert.Equal(t, date(2026, time.August, 28), got)
}

func TestCalendar_PriorBusinessDay(t *testing.T) {
	cal := NewCalendar()

	// Strictly earlier even when the input is a trading day
	got := cal.PriorBusinessDay(date(2026, time.August, 28))
	assert.Equal(t, date(2026, time.August, 27), got)

	// Monday steps back over the weekend
	got = cal.PriorBusinessDay(date(2026, time.August, 24))
	assert.Equal(t, date(2026, time.August, 21), got)

	// Tuesday after the Liberation Day substitute (Mon 08-17) steps to Friday
	got = cal.PriorBusinessDay(date(2026, time.August, 18))
	assert.Equal(t, date(2026, time.August, 14), got)
}
