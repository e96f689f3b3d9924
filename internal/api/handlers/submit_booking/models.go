package submit_booking

import (
	"errors"
	"time"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	submitBooking "github.com/m04kA/EventSync-BookingService/internal/usecase/submit_booking"
	"github.com/m04kA/EventSync-BookingService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	EventName          string   `json:"eventName"`
	Description        *string  `json:"description,omitempty"`
	Date               string   `json:"date"`      // "2026-01-05"
	StartTime          string   `json:"startTime"` // "14:00"
	DurationHours      float64  `json:"durationHours"`
	SeatsRequired      int      `json:"seatsRequired"`
	FacilitiesRequired []string `json:"facilitiesRequired"`
	VenueID            string   `json:"venueId"`
}

// SubmitBookingResponse HTTP response model
type SubmitBookingResponse struct {
	RequestID string `json:"requestId"`
	VenueID   string `json:"venueId"`
	VenueName string `json:"venueName"`
	Date      string `json:"date"`
	SlotKey   string `json:"slotKey"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitBookingRequest) ToUseCaseRequest(userID string) (*submitBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &submitBooking.Request{
		UserID:             userID,
		EventName:          r.EventName,
		Description:        r.Description,
		Date:               date,
		StartTime:          startTime,
		DurationHours:      r.DurationHours,
		SeatsRequired:      r.SeatsRequired,
		FacilitiesRequired: r.FacilitiesRequired,
		VenueID:            r.VenueID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *SubmitBookingResponse {
	return &SubmitBookingResponse{
		RequestID: resp.RequestID,
		VenueID:   resp.VenueID,
		VenueName: resp.VenueName,
		Date:      resp.Date.Format(domain.DateFormat),
		SlotKey:   resp.SlotKey,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
