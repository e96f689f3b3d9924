package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/pkg/ptr"
)

func TestNewRequestEvent(t *testing.T) {
	date, _ := domain.ParseDate("2026-01-05")
	req := &domain.EventRequest{
		ID:              "req-1",
		UserID:          "u-1",
		EventName:       "Hackathon",
		VenueID:         "main-hall",
		VenueName:       "Main Hall",
		Date:            date,
		SlotKey:         "14:00-16:00",
		Status:          domain.StatusRejected,
		ResolvedBy:      ptr.Ptr("admin-1"),
		RejectionReason: ptr.Ptr("maintenance"),
	}
	at := time.Date(2026, 1, 2, 12, 0, 0, 0, time.FixedZone("MSK", 3*3600))

	ev := NewRequestEvent(req, at)

	assert.Equal(t, "2026-01-05", ev.Date)
	assert.Equal(t, "rejected", ev.Status)
	assert.Equal(t, "admin-1", ev.ResolvedBy)
	assert.Equal(t, "maintenance", ev.Reason)
	assert.Equal(t, time.UTC, ev.OccurredAt.Location())

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"slotKey":"14:00-16:00"`)
	assert.NotContains(t, string(raw), "approvedEventId")
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), KeyRequestSubmitted, RequestEvent{}))
}
