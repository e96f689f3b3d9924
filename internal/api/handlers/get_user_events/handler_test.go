package get_user_events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/EventSync-BookingService/internal/api/middleware"
	"github.com/m04kA/EventSync-BookingService/internal/service/requests"
	"github.com/m04kA/EventSync-BookingService/internal/service/requests/models"
	"github.com/m04kA/EventSync-BookingService/pkg/logger"
)

type stubService struct {
	err error
}

func (s *stubService) GetApprovedForUser(ctx context.Context, viewerID, userID string) (*models.EventListResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.EventListResponse{Events: []models.EventResponse{{ID: "ev-1", UserID: userID}}}, nil
}

func serve(h *Handler, viewerID string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/student-1/events", nil)
	req = mux.SetURLVars(req, map[string]string{"userId": "student-1"})
	if viewerID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), viewerID))
	}
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(NewHandler(&stubService{}, logger.Nop()), "student-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ev-1"`)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, serve(NewHandler(&stubService{}, logger.Nop()), "").Code)
	assert.Equal(t, http.StatusForbidden, serve(NewHandler(&stubService{err: requests.ErrForbidden}, logger.Nop()), "student-2").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(NewHandler(&stubService{err: requests.ErrInternal}, logger.Nop()), "student-1").Code)
}
