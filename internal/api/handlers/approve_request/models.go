package approve_request

import (
	"time"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	approveRequest "github.com/m04kA/EventSync-BookingService/internal/usecase/approve_request"
)

// ApproveResponse HTTP response model
type ApproveResponse struct {
	ApprovedEventID string `json:"approvedEventId"`
	RequestID       string `json:"requestId"`
	VenueID         string `json:"venueId"`
	Date            string `json:"date"`
	SlotKey         string `json:"slotKey"`
	ApprovedBy      string `json:"approvedBy"`
	ApprovedAt      string `json:"approvedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *approveRequest.Response) *ApproveResponse {
	return &ApproveResponse{
		ApprovedEventID: resp.ApprovedEventID,
		RequestID:       resp.RequestID,
		VenueID:         resp.VenueID,
		Date:            resp.Date.Format(domain.DateFormat),
		SlotKey:         resp.SlotKey,
		ApprovedBy:      resp.ApprovedBy,
		ApprovedAt:      resp.ApprovedAt.Format(time.RFC3339),
	}
}
