package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupancy_BlockRelease(t *testing.T) {
	date, err := ParseDate("2026-01-05")
	require.NoError(t, err)

	o := make(Occupancy)
	assert.False(t, o.IsOccupied(date, "14:00-16:00"), "absent entry means available")

	o.Block(date, "14:00-16:00")
	o.Block(date, "14:00-16:00")
	assert.True(t, o.IsOccupied(date, "14:00-16:00"))
	assert.Equal(t, []string{"14:00-16:00"}, o.Keys(date))

	o.Release(date, "14:00-16:00")
	assert.False(t, o.IsOccupied(date, "14:00-16:00"))
	assert.Empty(t, o.Keys(date))
	assert.Empty(t, o)
}

func TestOccupancy_ConflictsUsesIntervals(t *testing.T) {
	o := NewOccupancy([]OccupiedSlot{
		{VenueID: "main-hall", Slot: mustSlot(t, "2026-01-05", "14:00", 2), RequestID: "r1"},
	})

	// ключи разные, но интервалы пересекаются
	assert.False(t, o.IsOccupied(mustSlot(t, "2026-01-05", "15:00", 2).Date, "15:00-17:00"))
	assert.True(t, o.Conflicts(mustSlot(t, "2026-01-05", "15:00", 2)))

	assert.False(t, o.Conflicts(mustSlot(t, "2026-01-05", "16:00", 1)))
	assert.False(t, o.Conflicts(mustSlot(t, "2026-01-06", "14:00", 2)))
}

func TestOccupancy_SlotsSorted(t *testing.T) {
	date, _ := ParseDate("2026-01-05")
	o := make(Occupancy)
	o.Block(date, "16:00-17:00")
	o.Block(date, "09:00-10:00")
	o.Block(date, "garbage")

	slots := o.Slots(date)
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00-10:00", slots[0].Key())
	assert.Equal(t, "16:00-17:00", slots[1].Key())
}

func TestConflictsWith(t *testing.T) {
	held := []OccupiedSlot{
		{VenueID: "v", Slot: mustSlot(t, "2026-01-05", "09:00", 2), RequestID: "r1"},
		{VenueID: "v", Slot: mustSlot(t, "2026-01-05", "14:00", 2), RequestID: "r2"},
	}

	hit, ok := ConflictsWith(mustSlot(t, "2026-01-05", "15:30", 1), held)
	assert.True(t, ok)
	assert.Equal(t, "r2", hit.RequestID)

	_, ok = ConflictsWith(mustSlot(t, "2026-01-05", "11:00", 3), held)
	assert.False(t, ok)
}

func TestVenue_HasFacilityAndFits(t *testing.T) {
	v := Venue{Capacity: 100, Facilities: []string{"Projector", " AC "}}
	assert.True(t, v.HasFacility("projector"))
	assert.True(t, v.HasFacility("ac"))
	assert.False(t, v.HasFacility("WiFi"))

	assert.True(t, v.Fits(100))
	assert.False(t, v.Fits(101))
	assert.False(t, v.Fits(-1))
}
