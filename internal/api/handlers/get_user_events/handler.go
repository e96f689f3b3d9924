package get_user_events

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/EventSync-BookingService/internal/api/handlers"
	"github.com/m04kA/EventSync-BookingService/internal/api/middleware"
	"github.com/m04kA/EventSync-BookingService/internal/service/requests"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/users/{userId}/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	viewerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/events - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	list, err := h.service.GetApprovedForUser(r.Context(), viewerID, userID)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/events - Invalid user ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidUserID)

		case errors.Is(err, requests.ErrForbidden):
			h.logger.Warn("GET /users/{id}/events - Access denied: user_id=%s, viewer=%s", userID, viewerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /users/{id}/events - Failed to get events: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/events - %d events retrieved: user_id=%s", len(list.Events), userID)
	handlers.RespondJSON(w, http.StatusOK, list)
}
