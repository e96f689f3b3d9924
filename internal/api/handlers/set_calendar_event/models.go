package set_calendar_event

import "github.com/m04kA/EventSync-BookingService/internal/service/requests/models"

// SetCalendarEventBody HTTP request model
type SetCalendarEventBody struct {
	CalendarEventID string `json:"calendarEventId"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (b *SetCalendarEventBody) ToServiceRequest(userID string) *models.SetCalendarEventRequest {
	return &models.SetCalendarEventRequest{
		UserID:          userID,
		CalendarEventID: b.CalendarEventID,
	}
}
