package domain

import (
	"time"

	"github.com/m04kA/EventSync-BookingService/pkg/types"
)

// ApprovedEvent одобренное мероприятие
// Неизменяемая историческая запись; единожды может быть проставлен CalendarEventID
type ApprovedEvent struct {
	ID                 string
	RequestID          string
	UserID             string
	EventName          string
	Description        *string
	Date               time.Time
	StartTime          types.TimeString
	DurationHours      float64
	SeatsRequired      int
	FacilitiesRequired []string
	VenueID            string
	VenueName          string
	SlotKey            string
	Status             RequestStatus
	ApprovedBy         string
	ApprovedAt         time.Time
	CalendarEventID    *string
}

// NewApprovedEvent копирует поля заявки и добавляет метаданные одобрения
func NewApprovedEvent(id string, req *EventRequest, approvedBy string, approvedAt time.Time) *ApprovedEvent {
	facilities := make([]string, len(req.FacilitiesRequired))
	copy(facilities, req.FacilitiesRequired)

	return &ApprovedEvent{
		ID:                 id,
		RequestID:          req.ID,
		UserID:             req.UserID,
		EventName:          req.EventName,
		Description:        req.Description,
		Date:               req.Date,
		StartTime:          req.StartTime,
		DurationHours:      req.DurationHours,
		SeatsRequired:      req.SeatsRequired,
		FacilitiesRequired: facilities,
		VenueID:            req.VenueID,
		VenueName:          req.VenueName,
		SlotKey:            req.SlotKey,
		Status:             StatusApproved,
		ApprovedBy:         approvedBy,
		ApprovedAt:         approvedAt,
	}
}

// HasCalendarEvent returns true if calendar sync already attached an event id
func (e *ApprovedEvent) HasCalendarEvent() bool {
	return e.CalendarEventID != nil && *e.CalendarEventID != ""
}
