package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Scoring constants (детерминированное ранжирование площадок)
const (
	FacilityScoreWeight   = 70
	CapacityTightScore    = 30 // seats/capacity в [0.5, 0.9]
	CapacityModerateScore = 25 // seats/capacity в [0.3, 0.5)
	CapacityLooseScore    = 20

	TightFitMinRatio    = 0.5
	TightFitMaxRatio    = 0.9
	ModerateFitMinRatio = 0.3

	// MinFacilityMatchRatio порог нечеткого совпадения, если требуется больше одного оборудования
	MinFacilityMatchRatio = 0.3
)

// Business validation constants
const (
	MaxEventNameLength       = 200
	MaxDescriptionLength     = 2000
	MaxRejectionReasonLength = 500
	MaxFacilitiesRequired    = 20
	MaxFacilityNameLength    = 100
	MaxSeatsRequired         = 100000
	MaxDurationHours         = 24
)

// ActiveStatuses статусы заявок, которые удерживают слот
var ActiveStatuses = []RequestStatus{
	StatusPending,
	StatusApproved,
}
