package set_calendar_event

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/EventSync-BookingService/internal/api/handlers"
	"github.com/m04kA/EventSync-BookingService/internal/api/middleware"
	"github.com/m04kA/EventSync-BookingService/internal/service/requests"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "не указан calendarEventId"
	msgNotFound           = "мероприятие не найдено"
	msgForbidden          = "доступ запрещен"
	msgAlreadySet         = "событие календаря уже привязано к мероприятию"
)

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/events/{eventId}/calendar
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /events/{id}/calendar - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var body SetCalendarEventBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /events/{id}/calendar - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetCalendarEventID(r.Context(), eventID, body.ToServiceRequest(userID)); err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("PUT /events/{id}/calendar - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, requests.ErrEventNotFound):
			h.logger.Warn("PUT /events/{id}/calendar - Event not found: event_id=%s", eventID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requests.ErrForbidden):
			h.logger.Warn("PUT /events/{id}/calendar - Access denied: event_id=%s, user_id=%s", eventID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, requests.ErrAlreadySet):
			h.logger.Warn("PUT /events/{id}/calendar - Already linked: event_id=%s", eventID)
			handlers.RespondConflict(w, msgAlreadySet)

		default:
			h.logger.Error("PUT /events/{id}/calendar - Failed to link calendar event: event_id=%s, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /events/{id}/calendar - Calendar event linked: event_id=%s, user_id=%s", eventID, userID)
	w.WriteHeader(http.StatusNoContent)
}
