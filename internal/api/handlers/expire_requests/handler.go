package expire_requests

import (
	"net/http"

	"github.com/m04kA/EventSync-BookingService/internal/api/handlers"
	"github.com/m04kA/EventSync-BookingService/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "действие доступно только администратору"
)

type Handler struct {
	useCase ExpireRequestsUseCase
	admins  AdminChecker
	logger  Logger
}

func NewHandler(useCase ExpireRequestsUseCase, admins AdminChecker, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		admins:  admins,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/requests/expire
// Ручной запуск очистки, та же логика, что и у фонового sweeper
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/requests/expire - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if !h.admins.IsAdmin(adminID) {
		h.logger.Warn("POST /admin/requests/expire - Forbidden: user_id=%s", adminID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/requests/expire - Failed to expire requests: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/requests/expire - expired=%d, skipped=%d, failed=%d, admin=%s",
		result.Expired, result.Skipped, result.Failed, adminID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
