package find_venues

import (
	"errors"
	"net/http"

	"github.com/m04kA/EventSync-BookingService/internal/api/handlers"
	findVenues "github.com/m04kA/EventSync-BookingService/internal/usecase/find_venues"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные параметры поиска"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

type Handler struct {
	useCase FindVenuesUseCase
	logger  Logger
}

func NewHandler(useCase FindVenuesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues/search
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SearchVenuesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/search - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /venues/search - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, findVenues.ErrInvalidInput):
			h.logger.Warn("POST /venues/search - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /venues/search - Failed to find venues: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/search - Found %d venues for %s, ranked by %s",
		len(result.Venues), result.SlotKey, result.RankedBy)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
