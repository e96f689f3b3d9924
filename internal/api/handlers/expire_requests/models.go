package expire_requests

import expireRequests "github.com/m04kA/EventSync-BookingService/internal/usecase/expire_requests"

// ExpireResponse HTTP response model
type ExpireResponse struct {
	Expired    int      `json:"expired"`
	Skipped    int      `json:"skipped"`
	Failed     int      `json:"failed"`
	Released   int64    `json:"releasedSlots"`
	RequestIDs []string `json:"requestIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *expireRequests.Response) *ExpireResponse {
	ids := resp.IDs
	if ids == nil {
		ids = []string{}
	}
	return &ExpireResponse{
		Expired:    resp.Expired,
		Skipped:    resp.Skipped,
		Failed:     resp.Failed,
		Released:   resp.Released,
		RequestIDs: ids,
	}
}
