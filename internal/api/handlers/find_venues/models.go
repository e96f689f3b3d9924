package find_venues

import (
	"time"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	findVenues "github.com/m04kA/EventSync-BookingService/internal/usecase/find_venues"
	"github.com/m04kA/EventSync-BookingService/pkg/types"
)

// SearchVenuesRequest HTTP request model
type SearchVenuesRequest struct {
	Date               string   `json:"date"`      // "2026-01-05"
	StartTime          string   `json:"startTime"` // "14:00"
	DurationHours      float64  `json:"durationHours"`
	SeatsRequired      int      `json:"seatsRequired"`
	FacilitiesRequired []string `json:"facilitiesRequired"`
	EventName          string   `json:"eventName,omitempty"`
	Description        string   `json:"description,omitempty"`
}

// VenueResponse площадка с оценкой соответствия
type VenueResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Capacity          uint     `json:"capacity"`
	Building          string   `json:"building,omitempty"`
	Floor             int      `json:"floor"`
	Facilities        []string `json:"facilities"`
	Score             int      `json:"score"`
	FacilityScore     float64  `json:"facilityScore"`
	CapacityScore     int      `json:"capacityScore"`
	MatchRatio        float64  `json:"matchRatio"`
	MatchedFacilities int      `json:"matchedFacilities"`
	Suitability       *string  `json:"suitability,omitempty"`
	OccupiedTimes     []string `json:"occupiedTimes"`
}

// SearchVenuesResponse HTTP response model
type SearchVenuesResponse struct {
	Date     string          `json:"date"`
	SlotKey  string          `json:"slotKey"`
	RankedBy string          `json:"rankedBy"`
	Venues   []VenueResponse `json:"venues"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SearchVenuesRequest) ToUseCaseRequest() (*findVenues.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &findVenues.Request{
		Date:               date,
		StartTime:          startTime,
		DurationHours:      r.DurationHours,
		SeatsRequired:      r.SeatsRequired,
		FacilitiesRequired: r.FacilitiesRequired,
		EventName:          r.EventName,
		Description:        r.Description,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findVenues.Response) *SearchVenuesResponse {
	out := &SearchVenuesResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		SlotKey:  resp.SlotKey,
		RankedBy: resp.RankedBy,
		Venues:   make([]VenueResponse, 0, len(resp.Venues)),
	}

	for _, c := range resp.Venues {
		facilities := c.Venue.Facilities
		if facilities == nil {
			facilities = []string{}
		}
		occupied := c.OccupiedTimes
		if occupied == nil {
			occupied = []string{}
		}

		out.Venues = append(out.Venues, VenueResponse{
			ID:                c.Venue.ID,
			Name:              c.Venue.Name,
			Capacity:          c.Venue.Capacity,
			Building:          c.Venue.Building,
			Floor:             c.Venue.Floor,
			Facilities:        facilities,
			Score:             c.Score,
			FacilityScore:     c.FacilityScore,
			CapacityScore:     c.CapacityScore,
			MatchRatio:        c.MatchRatio,
			MatchedFacilities: c.MatchedFacilities,
			Suitability:       c.Suitability,
			OccupiedTimes:     occupied,
		})
	}

	return out
}
