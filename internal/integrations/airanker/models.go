package airanker

// RankRequest запрос на ранжирование площадок под мероприятие
type RankRequest struct {
	EventName          string      `json:"eventName"`
	Description        string      `json:"description,omitempty"`
	SeatsRequired      int         `json:"seatsRequired"`
	FacilitiesRequired []string    `json:"facilitiesRequired"`
	Candidates         []Candidate `json:"candidates"`
}

// Candidate площадка-кандидат, прошедшая жесткие фильтры
type Candidate struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Capacity   uint     `json:"capacity"`
	Facilities []string `json:"facilities"`
	Building   string   `json:"building"`
	Floor      int      `json:"floor"`
}

// RankResponse ранжированное подмножество кандидатов
type RankResponse struct {
	Ranked []RankedVenue `json:"ranked"`
}

// RankedVenue площадка с оценкой пригодности
type RankedVenue struct {
	VenueID     string `json:"venueId"`
	Score       int    `json:"score"`
	Suitability string `json:"suitability"`
}
