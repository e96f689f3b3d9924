package find_venues

import (
	"math"
	"strings"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
)

// matchFacilities считает, сколько требуемых позиций нашлось у площадки
// Сравнение без учета регистра, по вхождению подстроки в обе стороны
func matchFacilities(required, offered []string) (matched int, ratio float64) {
	if len(required) == 0 {
		return 0, 1
	}

	normalized := make([]string, 0, len(offered))
	for _, o := range offered {
		o = strings.ToLower(strings.TrimSpace(o))
		if o != "" {
			normalized = append(normalized, o)
		}
	}

	for _, r := range required {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		for _, o := range normalized {
			if strings.Contains(o, r) || strings.Contains(r, o) {
				matched++
				break
			}
		}
	}

	return matched, float64(matched) / float64(len(required))
}

// facilitiesAccepted применяет пороги нечеткого совпадения:
// одна позиция должна совпасть точно, для нескольких достаточно доли MinFacilityMatchRatio
func facilitiesAccepted(requiredCount int, ratio float64) bool {
	switch {
	case requiredCount == 0:
		return true
	case requiredCount == 1:
		return ratio >= 1
	default:
		return ratio >= domain.MinFacilityMatchRatio
	}
}

// facilityScore балл за оборудование
func facilityScore(requiredCount int, ratio float64) float64 {
	if requiredCount == 0 {
		return domain.FacilityScoreWeight
	}
	return ratio * domain.FacilityScoreWeight
}

// capacityScore поощряет площадки, размер которых близок к требуемому
func capacityScore(seats int, capacity uint) int {
	if capacity == 0 {
		return domain.CapacityLooseScore
	}

	ratio := float64(seats) / float64(capacity)
	switch {
	case ratio >= domain.TightFitMinRatio && ratio <= domain.TightFitMaxRatio:
		return domain.CapacityTightScore
	case ratio >= domain.ModerateFitMinRatio && ratio < domain.TightFitMinRatio:
		return domain.CapacityModerateScore
	default:
		return domain.CapacityLooseScore
	}
}

// buildCandidate считает баллы площадки; ok=false, если оборудование не проходит порог
func buildCandidate(req *Request, venue domain.Venue, occupied []string) (Candidate, bool) {
	matched, ratio := matchFacilities(req.FacilitiesRequired, venue.Facilities)
	if !facilitiesAccepted(len(req.FacilitiesRequired), ratio) {
		return Candidate{}, false
	}

	fScore := facilityScore(len(req.FacilitiesRequired), ratio)
	cScore := capacityScore(req.SeatsRequired, venue.Capacity)

	return Candidate{
		Venue:             venue,
		Score:             int(math.Round(fScore + float64(cScore))),
		FacilityScore:     fScore,
		CapacityScore:     cScore,
		MatchRatio:        ratio,
		MatchedFacilities: matched,
		OccupiedTimes:     occupied,
	}, true
}
