package submit_booking

import (
	"time"

	"github.com/m04kA/EventSync-BookingService/pkg/types"
)

// Request заявка на бронирование выбранной площадки
type Request struct {
	UserID             string           // Идентификатор пользователя (из заголовка X-User-ID)
	EventName          string           // Название мероприятия
	Description        *string          // Описание (опционально)
	Date               time.Time        // Дата мероприятия (без времени)
	StartTime          types.TimeString // Время начала, например "14:00"
	DurationHours      float64          // Длительность в часах
	SeatsRequired      int              // Количество мест
	FacilitiesRequired []string         // Требуемое оборудование
	VenueID            string           // Выбранная площадка
}

// Response созданная заявка в статусе pending
type Response struct {
	RequestID string
	VenueID   string
	VenueName string
	Date      time.Time
	SlotKey   string
	Status    string
	CreatedAt time.Time
}
