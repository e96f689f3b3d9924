package find_venues

import (
	"fmt"
	"strings"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationHours <= 0 || req.DurationHours > domain.MaxDurationHours {
		return fmt.Errorf("%w: durationHours must be in (0, %d]", ErrInvalidInput, domain.MaxDurationHours)
	}

	if req.SeatsRequired <= 0 || req.SeatsRequired > domain.MaxSeatsRequired {
		return fmt.Errorf("%w: seatsRequired must be in [1, %d]", ErrInvalidInput, domain.MaxSeatsRequired)
	}

	if len(req.FacilitiesRequired) > domain.MaxFacilitiesRequired {
		return fmt.Errorf("%w: too many facilities, max %d", ErrInvalidInput, domain.MaxFacilitiesRequired)
	}

	for i, f := range req.FacilitiesRequired {
		f = strings.TrimSpace(f)
		if f == "" {
			return fmt.Errorf("%w: facilitiesRequired[%d] is empty", ErrInvalidInput, i)
		}
		if len(f) > domain.MaxFacilityNameLength {
			return fmt.Errorf("%w: facilitiesRequired[%d] is too long", ErrInvalidInput, i)
		}
	}

	if len(req.EventName) > domain.MaxEventNameLength {
		return fmt.Errorf("%w: eventName is too long", ErrInvalidInput)
	}

	if len(req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description is too long", ErrInvalidInput)
	}

	return nil
}
