package approve_request

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/EventSync-BookingService/internal/api/handlers"
	"github.com/m04kA/EventSync-BookingService/internal/api/middleware"
	approveRequest "github.com/m04kA/EventSync-BookingService/internal/usecase/approve_request"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidRequestID = "некорректный ID заявки"
	msgNotFound         = "заявка не найдена или уже рассмотрена"
	msgForbidden        = "действие доступно только администратору"
)

type Handler struct {
	useCase ApproveRequestUseCase
	logger  Logger
}

func NewHandler(useCase ApproveRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/requests/{requestId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["requestId"]

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/requests/{id}/approve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &approveRequest.Request{
		RequestID: requestID,
		AdminID:   adminID,
	})
	if err != nil {
		switch {
		case errors.Is(err, approveRequest.ErrForbidden):
			h.logger.Warn("POST /admin/requests/{id}/approve - Forbidden: request_id=%s, user_id=%s", requestID, adminID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, approveRequest.ErrRequestNotFound):
			h.logger.Warn("POST /admin/requests/{id}/approve - Request not found: request_id=%s", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, approveRequest.ErrInvalidInput):
			h.logger.Warn("POST /admin/requests/{id}/approve - Invalid request ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestID)

		default:
			h.logger.Error("POST /admin/requests/{id}/approve - Failed to approve: request_id=%s, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/requests/{id}/approve - Request approved: request_id=%s, event_id=%s, admin=%s",
		requestID, result.ApprovedEventID, adminID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
