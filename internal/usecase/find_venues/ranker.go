package find_venues

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/EventSync-BookingService/internal/integrations/airanker"
)

const (
	RankerDeterministic = "deterministic"
	RankerAI            = "ai"
)

// DeterministicRanker ранжирование по баллам: оборудование 70% + вместимость 30%
// Площадки меньше требуемой вместимости отсекаются
type DeterministicRanker struct{}

// Name возвращает имя стратегии
func (DeterministicRanker) Name() string {
	return RankerDeterministic
}

// Rank сортирует по убыванию балла, при равенстве меньшая вместимость выше
func (DeterministicRanker) Rank(ctx context.Context, req *Request, candidates []Candidate) ([]Candidate, error) {
	ranked := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.Venue.Fits(req.SeatsRequired) {
			continue
		}
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Venue.Capacity != b.Venue.Capacity {
			return a.Venue.Capacity < b.Venue.Capacity
		}
		return a.Venue.Name < b.Venue.Name
	})

	return ranked, nil
}

// AIRanker делегирует ранжирование внешнему сервису оценки пригодности
// Возвращает подмножество кандидатов в порядке, который выбрал сервис
type AIRanker struct {
	client AIRankerClient
}

// NewAIRanker создает AI-стратегию поверх клиента
func NewAIRanker(client AIRankerClient) *AIRanker {
	return &AIRanker{client: client}
}

// Name возвращает имя стратегии
func (r *AIRanker) Name() string {
	return RankerAI
}

// Rank отправляет кандидатов во внешний сервис
func (r *AIRanker) Rank(ctx context.Context, req *Request, candidates []Candidate) ([]Candidate, error) {
	rankReq := airanker.RankRequest{
		EventName:          req.EventName,
		Description:        req.Description,
		SeatsRequired:      req.SeatsRequired,
		FacilitiesRequired: req.FacilitiesRequired,
		Candidates:         make([]airanker.Candidate, 0, len(candidates)),
	}

	byID := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.Venue.ID] = c
		rankReq.Candidates = append(rankReq.Candidates, airanker.Candidate{
			ID:         c.Venue.ID,
			Name:       c.Venue.Name,
			Capacity:   c.Venue.Capacity,
			Facilities: c.Venue.Facilities,
			Building:   c.Venue.Building,
			Floor:      c.Venue.Floor,
		})
	}

	resp, err := r.client.RankWithGracefulDegradation(ctx, rankReq)
	if err != nil {
		return nil, err
	}

	ranked := make([]Candidate, 0, len(resp.Ranked))
	seen := make(map[string]bool, len(resp.Ranked))
	for _, item := range resp.Ranked {
		c, ok := byID[item.VenueID]
		if !ok || seen[item.VenueID] {
			return nil, fmt.Errorf("%w: ranker returned unexpected venue %q", ErrInternal, item.VenueID)
		}
		seen[item.VenueID] = true

		if item.Score > 0 {
			c.Score = item.Score
		}
		if item.Suitability != "" {
			suitability := item.Suitability
			c.Suitability = &suitability
		}
		ranked = append(ranked, c)
	}

	return ranked, nil
}
