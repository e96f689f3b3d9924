package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/m04kA/EventSync-BookingService/pkg/types"
)

var (
	// ErrInvalidDuration возвращается для нулевой или отрицательной длительности
	ErrInvalidDuration = errors.New("domain: duration must be positive")

	// ErrCrossesMidnight возвращается, если слот заканчивается после 24:00
	ErrCrossesMidnight = errors.New("domain: time slot crosses midnight")

	// ErrInvalidSlotKey возвращается при разборе некорректного ключа "HH:MM-HH:MM"
	ErrInvalidSlotKey = errors.New("domain: invalid slot key")
)

// TimeSlot окно времени внутри одного календарного дня, [Start, End)
type TimeSlot struct {
	Date  time.Time
	Start types.TimeString
	End   types.TimeString
}

// DurationMinutes переводит дробные часы в минуты с округлением вниз
func DurationMinutes(durationHours float64) int {
	if math.IsNaN(durationHours) || math.IsInf(durationHours, 0) {
		return 0
	}
	return int(math.Floor(durationHours * 60))
}

// SlotKey вычисляет канонический ключ слота "HH:MM-HH:MM"
func SlotKey(start types.TimeString, durationHours float64) (string, error) {
	slot, err := NewTimeSlot(time.Time{}, start, durationHours)
	if err != nil {
		return "", err
	}
	return slot.Key(), nil
}

// NewTimeSlot создает слот на дату с началом start и длительностью durationHours
func NewTimeSlot(date time.Time, start types.TimeString, durationHours float64) (TimeSlot, error) {
	if err := start.Validate(); err != nil {
		return TimeSlot{}, err
	}

	minutes := DurationMinutes(durationHours)
	if durationHours <= 0 || minutes <= 0 {
		return TimeSlot{}, fmt.Errorf("%w: %v hours", ErrInvalidDuration, durationHours)
	}
	if start.Minutes()+minutes > types.MinutesPerDay {
		return TimeSlot{}, fmt.Errorf("%w: %s + %d min", ErrCrossesMidnight, start, minutes)
	}

	end, err := start.AddMinutes(minutes)
	if err != nil {
		return TimeSlot{}, err
	}

	normalizedStart, _ := types.FromMinutes(start.Minutes())
	return TimeSlot{Date: TruncateDate(date), Start: normalizedStart, End: end}, nil
}

// NewTimeSlotFromKey восстанавливает слот из даты и ключа
func NewTimeSlotFromKey(date time.Time, key string) (TimeSlot, error) {
	start, end, err := ParseSlotKey(key)
	if err != nil {
		return TimeSlot{}, err
	}
	return TimeSlot{Date: TruncateDate(date), Start: start, End: end}, nil
}

// ParseSlotKey разбирает ключ "HH:MM-HH:MM"
func ParseSlotKey(key string) (types.TimeString, types.TimeString, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSlotKey, key)
	}

	start, err := types.NewTimeStringFromString(parts[0])
	if err != nil {
		return "", "", fmt.Errorf("%w: %q: %v", ErrInvalidSlotKey, key, err)
	}
	end, err := types.NewTimeStringFromString(parts[1])
	if err != nil {
		return "", "", fmt.Errorf("%w: %q: %v", ErrInvalidSlotKey, key, err)
	}
	if !start.IsBefore(end) {
		return "", "", fmt.Errorf("%w: %q: start must be before end", ErrInvalidSlotKey, key)
	}

	return start, end, nil
}

// Key возвращает ключ слота "HH:MM-HH:MM"
func (s TimeSlot) Key() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// DurationMinutes возвращает длительность слота в минутах
func (s TimeSlot) DurationMinutes() int {
	return s.End.Minutes() - s.Start.Minutes()
}

// Overlaps проверяет пересечение полуинтервалов в пределах одной даты
// Касание границ (11:00 конец и 11:00 начало) пересечением не считается
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	if !SameDate(s.Date, other.Date) {
		return false
	}
	return s.Start.Minutes() < other.End.Minutes() && s.End.Minutes() > other.Start.Minutes()
}

// String возвращает "YYYY-MM-DD HH:MM-HH:MM"
func (s TimeSlot) String() string {
	return s.Date.Format(DateFormat) + " " + s.Key()
}

// TruncateDate отбрасывает время, оставляя календарный день в UTC
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate сравнивает календарные дни
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
