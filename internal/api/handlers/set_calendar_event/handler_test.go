package set_calendar_event

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/EventSync-BookingService/internal/api/middleware"
	"github.com/m04kA/EventSync-BookingService/internal/service/requests"
	"github.com/m04kA/EventSync-BookingService/internal/service/requests/models"
	"github.com/m04kA/EventSync-BookingService/pkg/logger"
)

type stubService struct {
	eventID string
	got     *models.SetCalendarEventRequest
	err     error
}

func (s *stubService) SetCalendarEventID(ctx context.Context, eventID string, req *models.SetCalendarEventRequest) error {
	s.eventID = eventID
	s.got = req
	return s.err
}

func serve(h *Handler, userID, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/events/ev-1/calendar", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"eventId": "ev-1"})
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	h.Handle(rec, req)
	return rec
}

func TestHandle_Linked(t *testing.T) {
	svc := &stubService{}

	rec := serve(NewHandler(svc, logger.Nop()), "student-1", `{"calendarEventId":"gcal-42"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "ev-1", svc.eventID)
	assert.Equal(t, &models.SetCalendarEventRequest{UserID: "student-1", CalendarEventID: "gcal-42"}, svc.got)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "blank id", err: requests.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "not found", err: requests.ErrEventNotFound, status: http.StatusNotFound},
		{name: "foreign event", err: requests.ErrForbidden, status: http.StatusForbidden},
		{name: "set twice", err: requests.ErrAlreadySet, status: http.StatusConflict},
		{name: "internal", err: requests.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&stubService{err: tt.err}, logger.Nop()), "student-1", `{"calendarEventId":"gcal-42"}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_BadBody(t *testing.T) {
	svc := &stubService{}

	assert.Equal(t, http.StatusBadRequest, serve(NewHandler(svc, logger.Nop()), "student-1", `{"calendar":1}`).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(NewHandler(svc, logger.Nop()), "", `{}`).Code)
	assert.Nil(t, svc.got)
}
