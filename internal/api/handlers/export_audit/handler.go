package export_audit

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/EventSync-BookingService/internal/api/handlers"
	"github.com/m04kA/EventSync-BookingService/internal/api/middleware"
	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/internal/service/requests"
	"github.com/m04kA/EventSync-BookingService/internal/service/requests/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidPeriod = "некорректный период, ожидаются параметры from и to в формате YYYY-MM-DD"
	msgForbidden     = "действие доступно только администратору"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	service AuditService
	logger  Logger
}

func NewHandler(service AuditService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/requests/export?from=2026-01-01&to=2026-01-31&status=approved
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/requests/export - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	from, errFrom := time.Parse(domain.DateFormat, query.Get("from"))
	to, errTo := time.Parse(domain.DateFormat, query.Get("to"))
	if errFrom != nil || errTo != nil {
		h.logger.Warn("GET /admin/requests/export - Invalid period: from=%q, to=%q", query.Get("from"), query.Get("to"))
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	req := &models.ExportAuditRequest{
		AdminID: adminID,
		From:    from,
		To:      to,
	}
	if status := strings.TrimSpace(query.Get("status")); status != "" {
		req.Status = &status
	}

	// Буфер нужен, чтобы при ошибке отдать JSON, а не обрезанный файл
	var buf bytes.Buffer
	count, err := h.service.ExportAudit(r.Context(), req, &buf)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrForbidden):
			h.logger.Warn("GET /admin/requests/export - Forbidden: user_id=%s", adminID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("GET /admin/requests/export - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /admin/requests/export - Failed to export: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	filename := fmt.Sprintf("requests_%s_%s.xlsx", from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /admin/requests/export - Failed to write response: %v", err)
		return
	}

	h.logger.Info("GET /admin/requests/export - %d requests exported by admin=%s", count, adminID)
}
