package get_user_requests

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/EventSync-BookingService/internal/api/handlers"
	"github.com/m04kA/EventSync-BookingService/internal/api/middleware"
	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/internal/service/requests"
	"github.com/m04kA/EventSync-BookingService/internal/service/requests/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidStatus = "некорректный статус, допустимо: pending, approved, rejected, expired, all"
	msgForbidden     = "доступ запрещен"

	statusAll = "all"
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

// Handle GET /api/v1/users/{userId}/requests?status=pending
// По умолчанию возвращаются заявки в статусе pending; status=all отключает фильтр
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	viewerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetUserRequestsRequest{
		ViewerID: viewerID,
		UserID:   userID,
	}

	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	switch status {
	case "":
		pending := string(domain.StatusPending)
		req.Status = &pending
	case statusAll:
	default:
		req.Status = &status
	}

	list, err := h.service.GetUserRequests(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/requests - Invalid status: user_id=%s, status=%s", userID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, requests.ErrForbidden):
			h.logger.Warn("GET /users/{id}/requests - Access denied: user_id=%s, viewer=%s", userID, viewerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /users/{id}/requests - Failed to get requests: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/requests - %d requests retrieved: user_id=%s", len(list.Requests), userID)
	handlers.RespondJSON(w, http.StatusOK, list)
}
