package domain

import (
	"time"

	"github.com/m04kA/EventSync-BookingService/pkg/types"
)

// RequestStatus represents the status of an event request
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
	StatusExpired  RequestStatus = "expired"
)

// IsValid returns true for a known status
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// IsTerminal returns true if the request can no longer change state
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusExpired
}

// EventRequest заявка на проведение мероприятия
// Записи не удаляются: после решения администратора статус меняется на терминальный
type EventRequest struct {
	ID                 string
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

	RejectionReason *string
	ResolvedBy      *string
	ResolvedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the request still waits for a decision
func (r *EventRequest) IsPending() bool {
	return r.Status == StatusPending
}

// HoldsSlot returns true if the request keeps its slot blocked
func (r *EventRequest) HoldsSlot() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// IsOwnedBy returns true if the request was submitted by userID
func (r *EventRequest) IsOwnedBy(userID string) bool {
	return r.UserID == userID
}

// Slot returns the requested time slot
func (r *EventRequest) Slot() (TimeSlot, error) {
	return NewTimeSlot(r.Date, r.StartTime, r.DurationHours)
}

// IsExpired returns true if a pending request is older than ttl
func (r *EventRequest) IsExpired(now time.Time, ttl time.Duration) bool {
	return r.IsPending() && ttl > 0 && !r.CreatedAt.Add(ttl).After(now)
}

// RequestsPeriodFilter фильтр выгрузки заявок за период
type RequestsPeriodFilter struct {
	From   time.Time      // включительно, по дате создания
	To     time.Time      // не включительно
	Status *RequestStatus // опционально
}
