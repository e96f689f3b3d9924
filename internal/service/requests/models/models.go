package models

import (
	"errors"
	"time"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid request status")
)

// Request модели

// GetUserRequestsRequest запрос на получение заявок пользователя
type GetUserRequestsRequest struct {
	ViewerID string  `json:"viewerId"` // Кто запрашивает (владелец или администратор)
	UserID   string  `json:"userId"`
	Status   *string `json:"status,omitempty"`
}

// SetCalendarEventRequest запрос на привязку события календаря
type SetCalendarEventRequest struct {
	UserID          string `json:"userId"`
	CalendarEventID string `json:"calendarEventId"`
}

// ExportAuditRequest запрос на выгрузку заявок за период
type ExportAuditRequest struct {
	AdminID string
	From    time.Time // включительно
	To      time.Time // включительно
	Status  *string
}

// Response модели

// RequestResponse ответ с данными заявки
type RequestResponse struct {
	ID                 string   `json:"id"`
	UserID             string   `json:"userId"`
	EventName          string   `json:"eventName"`
	Description        *string  `json:"description,omitempty"`
	Date               string   `json:"date"`      // "2026-01-05"
	StartTime          string   `json:"startTime"` // "14:00"
	DurationHours      float64  `json:"durationHours"`
	SeatsRequired      int      `json:"seatsRequired"`
	FacilitiesRequired []string `json:"facilitiesRequired"`
	VenueID            string   `json:"venueId"`
	VenueName          string   `json:"venueName"`
	SlotKey            string   `json:"slotKey"`
	Status             string   `json:"status"`

	RejectionReason *string `json:"rejectionReason,omitempty"`
	ResolvedBy      *string `json:"resolvedBy,omitempty"`
	ResolvedAt      *string `json:"resolvedAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RequestListResponse ответ со списком заявок
type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
}

// EventResponse ответ с данными одобренного мероприятия
type EventResponse struct {
	ID                 string    `json:"id"`
	RequestID          string    `json:"requestId"`
	UserID             string    `json:"userId"`
	EventName          string    `json:"eventName"`
	Description        *string   `json:"description,omitempty"`
	Date               string    `json:"date"`
	StartTime          string    `json:"startTime"`
	DurationHours      float64   `json:"durationHours"`
	SeatsRequired      int       `json:"seatsRequired"`
	FacilitiesRequired []string  `json:"facilitiesRequired"`
	VenueID            string    `json:"venueId"`
	VenueName          string    `json:"venueName"`
	SlotKey            string    `json:"slotKey"`
	Status             string    `json:"status"`
	ApprovedBy         string    `json:"approvedBy"`
	ApprovedAt         time.Time `json:"approvedAt"`
	CalendarEventID    *string   `json:"calendarEventId,omitempty"`
}

// EventListResponse ответ со списком мероприятий
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// Методы конвертации

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.EventRequest) *RequestResponse {
	if r == nil {
		return nil
	}

	resp := &RequestResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		EventName:          r.EventName,
		Description:        r.Description,
		Date:               r.Date.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		DurationHours:      r.DurationHours,
		SeatsRequired:      r.SeatsRequired,
		FacilitiesRequired: nonNil(r.FacilitiesRequired),
		VenueID:            r.VenueID,
		VenueName:          r.VenueName,
		SlotKey:            r.SlotKey,
		Status:             string(r.Status),
		RejectionReason:    r.RejectionReason,
		ResolvedBy:         r.ResolvedBy,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.ResolvedAt != nil {
		resolvedAt := r.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &resolvedAt
	}

	return resp
}

// FromDomainRequestList конвертирует список заявок
func FromDomainRequestList(list []*domain.EventRequest) *RequestListResponse {
	resp := &RequestListResponse{Requests: make([]RequestResponse, 0, len(list))}
	for _, r := range list {
		resp.Requests = append(resp.Requests, *FromDomainRequest(r))
	}
	return resp
}

// FromDomainEvent конвертирует domain модель в DTO
func FromDomainEvent(e *domain.ApprovedEvent) *EventResponse {
	if e == nil {
		return nil
	}

	return &EventResponse{
		ID:                 e.ID,
		RequestID:          e.RequestID,
		UserID:             e.UserID,
		EventName:          e.EventName,
		Description:        e.Description,
		Date:               e.Date.Format(domain.DateFormat),
		StartTime:          e.StartTime.String(),
		DurationHours:      e.DurationHours,
		SeatsRequired:      e.SeatsRequired,
		FacilitiesRequired: nonNil(e.FacilitiesRequired),
		VenueID:            e.VenueID,
		VenueName:          e.VenueName,
		SlotKey:            e.SlotKey,
		Status:             string(e.Status),
		ApprovedBy:         e.ApprovedBy,
		ApprovedAt:         e.ApprovedAt,
		CalendarEventID:    e.CalendarEventID,
	}
}

// FromDomainEventList конвертирует список мероприятий
func FromDomainEventList(list []*domain.ApprovedEvent) *EventListResponse {
	resp := &EventListResponse{Events: make([]EventResponse, 0, len(list))}
	for _, e := range list {
		resp.Events = append(resp.Events, *FromDomainEvent(e))
	}
	return resp
}

// ToDomainRequestStatus конвертирует строку в статус заявки
func ToDomainRequestStatus(s string) (domain.RequestStatus, error) {
	status := domain.RequestStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
