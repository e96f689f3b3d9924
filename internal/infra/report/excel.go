package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
)

const (
	sheetRequests = "Requests"
	sheetSummary  = "Summary"

	// Ограничение Excel на длину имени листа
	maxSheetNameLength = 31
)

var requestColumns = []string{
	"Request ID",
	"User ID",
	"Event",
	"Venue",
	"Date",
	"Slot",
	"Seats",
	"Facilities",
	"Status",
	"Resolved By",
	"Resolved At",
	"Rejection Reason",
	"Created At",
}

// ExcelWriter построчная запись xlsx поверх excelize
type ExcelWriter struct {
	file         *excelize.File
	currentSheet string
	currentRow   int
}

// NewExcelWriter создает пустую книгу
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{file: excelize.NewFile()}
}

// AddSheet добавляет лист и делает его текущим
func (w *ExcelWriter) AddSheet(name string) error {
	if len(name) > maxSheetNameLength {
		name = name[:maxSheetNameLength]
	}

	if w.currentSheet == "" {
		if err := w.file.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("rename sheet %s: %w", name, err)
		}
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	w.currentSheet = name
	w.currentRow = 1
	return nil
}

// WriteHeader пишет жирную строку заголовков
func (w *ExcelWriter) WriteHeader(columns []string) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, col); err != nil {
			return err
		}
	}

	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, w.currentRow)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), w.currentRow)
		_ = w.file.SetCellStyle(w.currentSheet, startCell, endCell, style)
	}

	w.currentRow++
	return nil
}

// WriteRow пишет строку данных
func (w *ExcelWriter) WriteRow(row []interface{}) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, val := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, val); err != nil {
			return err
		}
	}

	w.currentRow++
	return nil
}

// Save пишет книгу в w
func (w *ExcelWriter) Save(wr io.Writer) error {
	return w.file.Write(wr)
}

// Close освобождает ресурсы
func (w *ExcelWriter) Close() error {
	return w.file.Close()
}

// WriteRequestsAudit формирует аудит заявок: лист со всеми заявками и сводку по статусам
func WriteRequestsAudit(wr io.Writer, requests []*domain.EventRequest, from, to time.Time) error {
	w := NewExcelWriter()
	defer w.Close()

	if err := w.AddSheet(sheetRequests); err != nil {
		return err
	}
	if err := w.WriteHeader(requestColumns); err != nil {
		return err
	}

	counts := make(map[domain.RequestStatus]int)
	for _, r := range requests {
		counts[r.Status]++
		if err := w.WriteRow(requestRow(r)); err != nil {
			return fmt.Errorf("write request %s: %w", r.ID, err)
		}
	}

	if err := w.AddSheet(sheetSummary); err != nil {
		return err
	}
	if err := w.WriteHeader([]string{"Status", "Count"}); err != nil {
		return err
	}
	for _, s := range []domain.RequestStatus{domain.StatusPending, domain.StatusApproved, domain.StatusRejected, domain.StatusExpired} {
		if err := w.WriteRow([]interface{}{string(s), counts[s]}); err != nil {
			return err
		}
	}
	if err := w.WriteRow([]interface{}{"Period", from.Format(domain.DateFormat) + " - " + to.Format(domain.DateFormat)}); err != nil {
		return err
	}

	return w.Save(wr)
}

func requestRow(r *domain.EventRequest) []interface{} {
	var resolvedBy, resolvedAt, reason string
	if r.ResolvedBy != nil {
		resolvedBy = *r.ResolvedBy
	}
	if r.ResolvedAt != nil {
		resolvedAt = r.ResolvedAt.UTC().Format(time.RFC3339)
	}
	if r.RejectionReason != nil {
		reason = *r.RejectionReason
	}

	facilities := ""
	for i, f := range r.FacilitiesRequired {
		if i > 0 {
			facilities += ", "
		}
		facilities += f
	}

	return []interface{}{
		r.ID,
		r.UserID,
		r.EventName,
		r.VenueName,
		r.Date.Format(domain.DateFormat),
		r.SlotKey,
		r.SeatsRequired,
		facilities,
		string(r.Status),
		resolvedBy,
		resolvedAt,
		reason,
		r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
