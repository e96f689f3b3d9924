package reject_request

import "time"

// Request решение администратора об отклонении заявки
type Request struct {
	RequestID string
	AdminID   string
	Reason    *string // Причина отказа (опционально)
}

// Response отклоненная заявка
type Response struct {
	RequestID     string
	Status        string
	ReleasedSlots int64
	ResolvedAt    time.Time
}
