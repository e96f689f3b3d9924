package reject_request

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/internal/infra/events"
	requestRepo "github.com/m04kA/EventSync-BookingService/internal/infra/storage/request"
	"github.com/m04kA/EventSync-BookingService/pkg/ptr"
)

type mockRequestRepo struct{ mock.Mock }

func (m *mockRequestRepo) GetByID(ctx context.Context, id string) (*domain.EventRequest, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.EventRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRequestRepo) Resolve(ctx context.Context, id string, status domain.RequestStatus, resolvedBy, reason *string, resolvedAt time.Time) error {
	return m.Called(ctx, id, status, resolvedBy, reason, resolvedAt).Error(0)
}

type mockOccupancyRepo struct{ mock.Mock }

func (m *mockOccupancyRepo) ReleaseByRequest(ctx context.Context, requestID string) (int64, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).(int64), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, key string, ev events.RequestEvent) error {
	return m.Called(ctx, key, ev).Error(0)
}

type admins map[string]bool

func (a admins) IsAdmin(userID string) bool { return a[userID] }

type directTx struct{}

func (directTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type decisionRecorder struct{ decisions []string }

func (r *decisionRecorder) IncBookingDecision(decision string) {
	r.decisions = append(r.decisions, decision)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var now = time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

func pendingRequest() *domain.EventRequest {
	return &domain.EventRequest{
		ID:        "req-1",
		UserID:    "student-1",
		EventName: "Robotics demo",
		Date:      time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		StartTime: "14:00",
		VenueID:   "main-hall",
		SlotKey:   "14:00-16:00",
		Status:    domain.StatusPending,
	}
}

type fixture struct {
	requests  *mockRequestRepo
	occupancy *mockOccupancyRepo
	publisher *mockPublisher
	metrics   *decisionRecorder
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		requests:  &mockRequestRepo{},
		occupancy: &mockOccupancyRepo{},
		publisher: &mockPublisher{},
		metrics:   &decisionRecorder{},
	}
	f.uc = NewUseCase(f.requests, f.occupancy, admins{"admin-1": true}, directTx{}, f.publisher, f.metrics, nopLogger{})
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func TestExecute_ReleasesSlot(t *testing.T) {
	f := newFixture()
	f.requests.On("GetByID", mock.Anything, "req-1").Return(pendingRequest(), nil)
	f.requests.On("Resolve", mock.Anything, "req-1", domain.StatusRejected, mock.Anything,
		mock.MatchedBy(func(r *string) bool { return r != nil && *r == "double-booked stage" }), now).Return(nil)
	f.occupancy.On("ReleaseByRequest", mock.Anything, "req-1").Return(int64(1), nil)
	f.publisher.On("Publish", mock.Anything, events.KeyRequestRejected, mock.MatchedBy(func(ev events.RequestEvent) bool {
		return ev.Status == "rejected" && ev.Reason == "double-booked stage"
	})).Return(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		RequestID: "req-1",
		AdminID:   "admin-1",
		Reason:    ptr.Ptr("  double-booked stage "),
	})
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, int64(1), resp.ReleasedSlots)
	assert.Equal(t, []string{"rejected"}, f.metrics.decisions)
	f.occupancy.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestExecute_BlankReasonNotStored(t *testing.T) {
	f := newFixture()
	f.requests.On("GetByID", mock.Anything, "req-1").Return(pendingRequest(), nil)
	f.requests.On("Resolve", mock.Anything, "req-1", domain.StatusRejected, mock.Anything, (*string)(nil), now).Return(nil)
	f.occupancy.On("ReleaseByRequest", mock.Anything, "req-1").Return(int64(0), nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.Execute(context.Background(), &Request{RequestID: "req-1", AdminID: "admin-1", Reason: ptr.Ptr("   ")})
	require.NoError(t, err)
	f.requests.AssertExpectations(t)
}

func TestExecute_NotPending(t *testing.T) {
	f := newFixture()
	r := pendingRequest()
	r.Status = domain.StatusApproved
	f.requests.On("GetByID", mock.Anything, "req-1").Return(r, nil)

	_, err := f.uc.Execute(context.Background(), &Request{RequestID: "req-1", AdminID: "admin-1"})

	assert.ErrorIs(t, err, ErrRequestNotFound)
	f.occupancy.AssertNotCalled(t, "ReleaseByRequest", mock.Anything, mock.Anything)
}

func TestExecute_ResolvedConcurrently(t *testing.T) {
	f := newFixture()
	f.requests.On("GetByID", mock.Anything, "req-1").Return(pendingRequest(), nil)
	f.requests.On("Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(requestRepo.ErrNotPending)

	_, err := f.uc.Execute(context.Background(), &Request{RequestID: "req-1", AdminID: "admin-1"})

	assert.ErrorIs(t, err, ErrRequestNotFound)
	f.occupancy.AssertNotCalled(t, "ReleaseByRequest", mock.Anything, mock.Anything)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture()
	f.requests.On("GetByID", mock.Anything, "nope").Return(nil, requestRepo.ErrRequestNotFound)

	_, err := f.uc.Execute(context.Background(), &Request{RequestID: "nope", AdminID: "admin-1"})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestExecute_ReleaseFailure(t *testing.T) {
	f := newFixture()
	f.requests.On("GetByID", mock.Anything, "req-1").Return(pendingRequest(), nil)
	f.requests.On("Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.occupancy.On("ReleaseByRequest", mock.Anything, "req-1").Return(int64(0), errors.New("db down"))

	_, err := f.uc.Execute(context.Background(), &Request{RequestID: "req-1", AdminID: "admin-1"})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.metrics.decisions)
}

func TestExecute_ForbiddenAndValidation(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{RequestID: "req-1", AdminID: "student-1"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.uc.Execute(context.Background(), &Request{AdminID: "admin-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{
		RequestID: "req-1",
		AdminID:   "admin-1",
		Reason:    ptr.Ptr(strings.Repeat("x", domain.MaxRejectionReasonLength+1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.requests.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
