package approve_request

import "time"

// Request решение администратора об одобрении заявки
type Request struct {
	RequestID string
	AdminID   string
}

// Response созданное мероприятие
type Response struct {
	ApprovedEventID string
	RequestID       string
	VenueID         string
	Date            time.Time
	SlotKey         string
	ApprovedBy      string
	ApprovedAt      time.Time
}
