package find_venues

import (
	"time"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/pkg/types"
)

// Request требования к площадке
type Request struct {
	Date               time.Time        // Дата мероприятия (без времени)
	StartTime          types.TimeString // Время начала, например "14:00"
	DurationHours      float64          // Длительность в часах, допускаются дробные
	SeatsRequired      int              // Количество мест
	FacilitiesRequired []string         // Требуемое оборудование (нечеткое сравнение)
	EventName          string           // Название мероприятия; включает AI-ранжирование
	Description        string           // Описание (опционально)
}

// Candidate площадка, прошедшая фильтр по времени и оборудованию
type Candidate struct {
	Venue             domain.Venue
	Score             int     // Итоговый балл (0..100)
	FacilityScore     float64 // Доля совпавшего оборудования * 70
	CapacityScore     int     // 30 / 25 / 20
	MatchRatio        float64 // matched / required
	MatchedFacilities int
	Suitability       *string // Комментарий AI-ранжирования
	OccupiedTimes     []string
}

// Response ранжированный список площадок
type Response struct {
	Date     time.Time
	SlotKey  string
	RankedBy string // deterministic | ai
	Venues   []Candidate
}
