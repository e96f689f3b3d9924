package submit_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.EventName) == "" {
		return fmt.Errorf("%w: eventName is required", ErrInvalidInput)
	}

	if len(req.EventName) > domain.MaxEventNameLength {
		return fmt.Errorf("%w: eventName is too long", ErrInvalidInput)
	}

	if req.Description != nil && len(*req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.VenueID) == "" {
		return fmt.Errorf("%w: venueID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
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
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: facilitiesRequired[%d] is empty", ErrInvalidInput, i)
		}
		if len(f) > domain.MaxFacilityNameLength {
			return fmt.Errorf("%w: facilitiesRequired[%d] is too long", ErrInvalidInput, i)
		}
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(date time.Time, now time.Time, maxAdvanceDays int) error {
	today := domain.TruncateDate(now)
	day := domain.TruncateDate(date)

	// Проверяем, что дата не в прошлом
	if day.Before(today) {
		return ErrInvalidDate
	}

	// Если maxAdvanceDays = 0, нет ограничений на дату
	if maxAdvanceDays == 0 {
		return nil
	}

	if day.After(today.AddDate(0, 0, maxAdvanceDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// validateStartTime проверяет, что мероприятие на сегодня начинается не в прошлом
func validateStartTime(slot domain.TimeSlot, now time.Time) error {
	// Если дата бронирования не сегодня, проверка не нужна
	if !domain.SameDate(slot.Date, now) {
		return nil
	}

	if slot.Start.IsBefore(types.NewTimeString(now)) {
		return ErrTooLateToBook
	}

	return nil
}

// normalizeFacilities заменяет отсутствующий список оборудования пустым: колонка facilities_required NOT NULL
func normalizeFacilities(facilities []string) []string {
	if facilities == nil {
		return []string{}
	}
	return facilities
}
