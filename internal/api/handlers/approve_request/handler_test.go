package approve_request

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventSync-BookingService/internal/api/middleware"
	approveRequest "github.com/m04kA/EventSync-BookingService/internal/usecase/approve_request"
	"github.com/m04kA/EventSync-BookingService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *approveRequest.Request) (*approveRequest.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*approveRequest.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(h *Handler, userID, requestID string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/requests/"+requestID+"/approve", nil)
	req = mux.SetURLVars(req, map[string]string{"requestId": requestID})
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	h.Handle(rec, req)
	return rec
}

func TestHandle_Approved(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &approveRequest.Request{RequestID: "req-1", AdminID: "admin-1"}).
		Return(&approveRequest.Response{
			ApprovedEventID: "ev-1",
			RequestID:       "req-1",
			VenueID:         "main-hall",
			Date:            time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			SlotKey:         "14:00-16:00",
			ApprovedBy:      "admin-1",
			ApprovedAt:      time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		}, nil)

	rec := serve(NewHandler(uc, logger.Nop()), "admin-1", "req-1")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ApproveResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ev-1", resp.ApprovedEventID)
	assert.Equal(t, "2026-01-05", resp.Date)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not admin", err: approveRequest.ErrForbidden, status: http.StatusForbidden},
		{name: "already resolved", err: fmt.Errorf("%w: status=approved", approveRequest.ErrRequestNotFound), status: http.StatusNotFound},
		{name: "invalid id", err: approveRequest.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", err: approveRequest.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(uc, logger.Nop()), "user-1", "req-1")

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_MissingUser(t *testing.T) {
	uc := &mockUseCase{}
	rec := serve(NewHandler(uc, logger.Nop()), "", "req-1")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
