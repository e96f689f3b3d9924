package reject_request

import (
	"time"

	rejectRequest "github.com/m04kA/EventSync-BookingService/internal/usecase/reject_request"
)

// RejectRequestBody HTTP request model; тело запроса необязательно
type RejectRequestBody struct {
	Reason *string `json:"reason,omitempty"`
}

// RejectResponse HTTP response model
type RejectResponse struct {
	RequestID     string `json:"requestId"`
	Status        string `json:"status"`
	ReleasedSlots int64  `json:"releasedSlots"`
	ResolvedAt    string `json:"resolvedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rejectRequest.Response) *RejectResponse {
	return &RejectResponse{
		RequestID:     resp.RequestID,
		Status:        resp.Status,
		ReleasedSlots: resp.ReleasedSlots,
		ResolvedAt:    resp.ResolvedAt.Format(time.RFC3339),
	}
}
