package reject_request

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/EventSync-BookingService/internal/api/handlers"
	"github.com/m04kA/EventSync-BookingService/internal/api/middleware"
	rejectRequest "github.com/m04kA/EventSync-BookingService/internal/usecase/reject_request"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный ID заявки или слишком длинная причина отказа"
	msgNotFound           = "заявка не найдена или уже рассмотрена"
	msgForbidden          = "действие доступно только администратору"
)

type Handler struct {
	useCase RejectRequestUseCase
	logger  Logger
}

func NewHandler(useCase RejectRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/requests/{requestId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["requestId"]

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/requests/{id}/reject - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Причина отказа необязательна, пустое тело допустимо
	var body RejectRequestBody
	if err := handlers.DecodeJSON(r, &body); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /admin/requests/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rejectRequest.Request{
		RequestID: requestID,
		AdminID:   adminID,
		Reason:    body.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, rejectRequest.ErrForbidden):
			h.logger.Warn("POST /admin/requests/{id}/reject - Forbidden: request_id=%s, user_id=%s", requestID, adminID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rejectRequest.ErrRequestNotFound):
			h.logger.Warn("POST /admin/requests/{id}/reject - Request not found: request_id=%s", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rejectRequest.ErrInvalidInput):
			h.logger.Warn("POST /admin/requests/{id}/reject - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/requests/{id}/reject - Failed to reject: request_id=%s, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/requests/{id}/reject - Request rejected: request_id=%s, released=%d, admin=%s",
		requestID, result.ReleasedSlots, adminID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
