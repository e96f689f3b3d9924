package export_audit

import (
	"context"
	"io"

	"github.com/m04kA/EventSync-BookingService/internal/service/requests/models"
)

type AuditService interface {
	ExportAudit(ctx context.Context, req *models.ExportAuditRequest, w io.Writer) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
