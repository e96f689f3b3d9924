package reject_request

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventSync-BookingService/internal/api/middleware"
	rejectRequest "github.com/m04kA/EventSync-BookingService/internal/usecase/reject_request"
	"github.com/m04kA/EventSync-BookingService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *rejectRequest.Request) (*rejectRequest.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*rejectRequest.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(h *Handler, userID string, body io.Reader) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/requests/req-1/reject", body)
	req = mux.SetURLVars(req, map[string]string{"requestId": "req-1"})
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	h.Handle(rec, req)
	return rec
}

func rejected() *rejectRequest.Response {
	return &rejectRequest.Response{
		RequestID:     "req-1",
		Status:        "rejected",
		ReleasedSlots: 1,
		ResolvedAt:    time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestHandle_WithReason(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *rejectRequest.Request) bool {
		return r.RequestID == "req-1" && r.AdminID == "admin-1" && r.Reason != nil && *r.Reason == "hall under renovation"
	})).Return(rejected(), nil)

	rec := serve(NewHandler(uc, logger.Nop()), "admin-1", strings.NewReader(`{"reason":"hall under renovation"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp RejectResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, int64(1), resp.ReleasedSlots)
}

func TestHandle_EmptyBody(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *rejectRequest.Request) bool {
		return r.Reason == nil
	})).Return(rejected(), nil)

	rec := serve(NewHandler(uc, logger.Nop()), "admin-1", http.NoBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &mockUseCase{}
	rec := serve(NewHandler(uc, logger.Nop()), "admin-1", strings.NewReader(`{"reason":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not admin", err: rejectRequest.ErrForbidden, status: http.StatusForbidden},
		{name: "already resolved", err: rejectRequest.ErrRequestNotFound, status: http.StatusNotFound},
		{name: "reason too long", err: rejectRequest.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", err: rejectRequest.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(uc, logger.Nop()), "user-1", http.NoBody)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
