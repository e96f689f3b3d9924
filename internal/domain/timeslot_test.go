package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventSync-BookingService/pkg/types"
)

func mustSlot(t *testing.T, date string, start types.TimeString, hours float64) TimeSlot {
	t.Helper()
	d, err := ParseDate(date)
	require.NoError(t, err)
	s, err := NewTimeSlot(d, start, hours)
	require.NoError(t, err)
	return s
}

func TestSlotKey(t *testing.T) {
	tests := []struct {
		name    string
		start   types.TimeString
		hours   float64
		want    string
		wantErr error
	}{
		{name: "whole hours", start: "14:00", hours: 2, want: "14:00-16:00"},
		{name: "fractional hours", start: "09:30", hours: 1.5, want: "09:30-11:00"},
		{name: "minutes rounded down", start: "10:00", hours: 0.99, want: "10:00-10:59"},
		{name: "ends at midnight", start: "22:00", hours: 2, want: "22:00-24:00"},
		{name: "zero duration", start: "10:00", hours: 0, wantErr: ErrInvalidDuration},
		{name: "negative duration", start: "10:00", hours: -1, wantErr: ErrInvalidDuration},
		{name: "less than a minute", start: "10:00", hours: 0.001, wantErr: ErrInvalidDuration},
		{name: "crosses midnight", start: "23:00", hours: 2, wantErr: ErrCrossesMidnight},
		{name: "bad start", start: "25:61", hours: 1, wantErr: types.ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SlotKey(tt.start, tt.hours)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeSlot_Overlaps(t *testing.T) {
	base := mustSlot(t, "2026-01-05", "09:00", 2)

	tests := []struct {
		name  string
		other TimeSlot
		want  bool
	}{
		{name: "partial overlap", other: mustSlot(t, "2026-01-05", "10:00", 2), want: true},
		{name: "touching boundary", other: mustSlot(t, "2026-01-05", "11:00", 2), want: false},
		{name: "ends where base starts", other: mustSlot(t, "2026-01-05", "07:00", 2), want: false},
		{name: "contained", other: mustSlot(t, "2026-01-05", "09:30", 0.5), want: true},
		{name: "containing", other: mustSlot(t, "2026-01-05", "08:00", 5), want: true},
		{name: "same window", other: mustSlot(t, "2026-01-05", "09:00", 2), want: true},
		{name: "different date", other: mustSlot(t, "2026-01-06", "09:00", 2), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestParseSlotKey(t *testing.T) {
	start, end, err := ParseSlotKey("14:00-16:00")
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), start)
	assert.Equal(t, types.TimeString("16:00"), end)

	for _, bad := range []string{"", "14:00", "16:00-14:00", "14:00-14:00", "aa:bb-16:00", "14:00-16:00-18:00"} {
		_, _, err := ParseSlotKey(bad)
		assert.ErrorIs(t, err, ErrInvalidSlotKey, bad)
	}
}

func TestNewTimeSlot_TruncatesDate(t *testing.T) {
	d := time.Date(2026, 1, 5, 17, 45, 0, 0, time.UTC)
	s, err := NewTimeSlot(d, "9:00", 1)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), s.Date)
	assert.Equal(t, "09:00-10:00", s.Key())
	assert.Equal(t, 60, s.DurationMinutes())
	assert.Equal(t, "2026-01-05 09:00-10:00", s.String())
}
