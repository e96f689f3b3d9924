package domain

import (
	"sort"
	"strings"
	"time"
)

// Venue площадка кампуса
// Каталогом площадок владеет внешний источник; сервис их не создает и не удаляет
type Venue struct {
	ID         string
	Name       string
	Capacity   uint
	Facilities []string
	Building   string
	Floor      int
	UpdatedAt  time.Time
}

// HasFacility проверяет наличие оборудования без учета регистра
func (v *Venue) HasFacility(name string) bool {
	for _, f := range v.Facilities {
		if strings.EqualFold(strings.TrimSpace(f), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// Fits возвращает true, если площадка вмещает seats мест
func (v *Venue) Fits(seats int) bool {
	return seats >= 0 && uint(seats) <= v.Capacity
}

// OccupiedSlot запись реестра занятости: слот площадки, удерживаемый заявкой
type OccupiedSlot struct {
	VenueID   string
	Slot      TimeSlot
	RequestID string
	CreatedAt time.Time
}

// Key ключ слота "HH:MM-HH:MM"
func (o OccupiedSlot) Key() string {
	return o.Slot.Key()
}

// Occupancy занятость площадки: date -> slotKey -> occupied
type Occupancy map[string]map[string]bool

// NewOccupancy строит карту занятости из записей реестра
func NewOccupancy(slots []OccupiedSlot) Occupancy {
	o := make(Occupancy)
	for _, s := range slots {
		o.Block(s.Slot.Date, s.Key())
	}
	return o
}

// IsOccupied проверяет точное совпадение ключа; отсутствие записи означает "свободно"
func (o Occupancy) IsOccupied(date time.Time, key string) bool {
	return o[date.Format(DateFormat)][key]
}

// Block помечает слот занятым; повторная блокировка не является ошибкой
func (o Occupancy) Block(date time.Time, key string) {
	day := date.Format(DateFormat)
	if o[day] == nil {
		o[day] = make(map[string]bool)
	}
	o[day][key] = true
}

// Release освобождает слот
func (o Occupancy) Release(date time.Time, key string) {
	day := date.Format(DateFormat)
	delete(o[day], key)
	if len(o[day]) == 0 {
		delete(o, day)
	}
}

// Keys возвращает занятые ключи на дату в порядке возрастания
func (o Occupancy) Keys(date time.Time) []string {
	day := o[date.Format(DateFormat)]
	keys := make([]string, 0, len(day))
	for k, occupied := range day {
		if occupied {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Slots возвращает занятые слоты на дату; некорректные ключи пропускаются
func (o Occupancy) Slots(date time.Time) []TimeSlot {
	keys := o.Keys(date)
	slots := make([]TimeSlot, 0, len(keys))
	for _, k := range keys {
		slot, err := NewTimeSlotFromKey(date, k)
		if err != nil {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// Conflicts проверяет пересечение slot с каждым занятым слотом той же даты
func (o Occupancy) Conflicts(slot TimeSlot) bool {
	for _, booked := range o.Slots(slot.Date) {
		if booked.Overlaps(slot) {
			return true
		}
	}
	return false
}

// ConflictsWith проверяет пересечение slot со списком записей реестра
func ConflictsWith(slot TimeSlot, occupied []OccupiedSlot) (OccupiedSlot, bool) {
	for _, o := range occupied {
		if o.Slot.Overlaps(slot) {
			return o, true
		}
	}
	return OccupiedSlot{}, false
}
