package list_pending

import (
	"errors"
	"net/http"

	"github.com/m04kA/EventSync-BookingService/internal/api/handlers"
	"github.com/m04kA/EventSync-BookingService/internal/api/middleware"
	"github.com/m04kA/EventSync-BookingService/internal/service/requests"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "действие доступно только администратору"
)

type Handler struct {
	service RequestService
	logger  Logger
}

func NewHandler(service RequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/requests/pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/requests/pending - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	list, err := h.service.ListPending(r.Context(), adminID)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrForbidden):
			h.logger.Warn("GET /admin/requests/pending - Forbidden: user_id=%s", adminID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /admin/requests/pending - Failed to list pending requests: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/requests/pending - %d requests returned to admin=%s", len(list.Requests), adminID)
	handlers.RespondJSON(w, http.StatusOK, list)
}
