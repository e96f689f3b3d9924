package reject_request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.RequestID) == "" {
		return fmt.Errorf("%w: requestID is required", ErrInvalidInput)
	}

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxRejectionReasonLength {
		return fmt.Errorf("%w: reason is too long, max %d characters", ErrInvalidInput, domain.MaxRejectionReasonLength)
	}

	return nil
}

// normalizeReason обрезает пробелы; пустая причина не сохраняется
func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
