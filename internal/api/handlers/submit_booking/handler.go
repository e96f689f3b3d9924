package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/EventSync-BookingService/internal/api/handlers"
	"github.com/m04kA/EventSync-BookingService/internal/api/middleware"
	submitBooking "github.com/m04kA/EventSync-BookingService/internal/usecase/submit_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные заявки"
	msgVenueNotFound      = "площадка не найдена"
	msgSlotBusy           = "площадка сейчас бронируется другой заявкой, повторите запрос"
	msgSlotNotAvailable   = "этот слот уже занят, выберите другое время или площадку"
	msgInvalidEventDate   = "дата мероприятия в прошлом"
	msgDateTooFar         = "дата мероприятия слишком далеко в будущем"
	msgTooLateToBook      = "время начала мероприятия уже прошло"

	retryAfterSeconds = "1"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /requests - Invalid request body: user_id=%s, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /requests - Failed to parse request: user_id=%s, error=%v", userID, err)
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
		case errors.Is(err, submitBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /requests - Slot not available: user_id=%s, venue_id=%s", userID, req.VenueID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, submitBooking.ErrSlotBusy):
			h.logger.Warn("POST /requests - Venue date locked by another submit: user_id=%s, venue_id=%s", userID, req.VenueID)
			w.Header().Set("Retry-After", retryAfterSeconds)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgSlotBusy)

		case errors.Is(err, submitBooking.ErrVenueNotFound):
			h.logger.Warn("POST /requests - Venue not found: venue_id=%s", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, submitBooking.ErrInvalidDate):
			h.logger.Warn("POST /requests - Invalid event date: user_id=%s, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidEventDate)

		case errors.Is(err, submitBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /requests - Date too far in future: user_id=%s, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, submitBooking.ErrTooLateToBook):
			h.logger.Warn("POST /requests - Too late to book: user_id=%s, date=%s, start=%s", userID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /requests - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /requests - Failed to submit request: user_id=%s, venue_id=%s, error=%v",
				userID, req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests - Request submitted successfully: request_id=%s, user_id=%s, venue_id=%s",
		result.RequestID, userID, result.VenueID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
