package expire_requests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/internal/infra/events"
	requestRepo "github.com/m04kA/EventSync-BookingService/internal/infra/storage/request"
)

type mockRequestRepo struct{ mock.Mock }

func (m *mockRequestRepo) ListPendingCreatedBefore(ctx context.Context, before time.Time, limit uint64) ([]*domain.EventRequest, error) {
	args := m.Called(ctx, before, limit)
	if v := args.Get(0); v != nil {
		return v.([]*domain.EventRequest), args.Error(1)
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

var now = time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC)

type fixture struct {
	requests  *mockRequestRepo
	occupancy *mockOccupancyRepo
	publisher *mockPublisher
	metrics   *decisionRecorder
	uc        *UseCase
}

func newFixture(ttl time.Duration) *fixture {
	f := &fixture{
		requests:  &mockRequestRepo{},
		occupancy: &mockOccupancyRepo{},
		publisher: &mockPublisher{},
		metrics:   &decisionRecorder{},
	}
	f.uc = NewUseCase(f.requests, f.occupancy, directTx{}, f.publisher, f.metrics, ttl, 10, nopLogger{})
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func stale(id string) *domain.EventRequest {
	return &domain.EventRequest{ID: id, VenueID: "main-hall", SlotKey: "14:00-16:00", Status: domain.StatusPending,
		Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), CreatedAt: now.Add(-72 * time.Hour)}
}

func TestExecute_ExpiresAndReleases(t *testing.T) {
	f := newFixture(48 * time.Hour)
	f.requests.On("ListPendingCreatedBefore", mock.Anything, now.Add(-48*time.Hour), uint64(10)).
		Return([]*domain.EventRequest{stale("r1"), stale("r2"), stale("r3")}, nil)
	f.requests.On("Resolve", mock.Anything, "r1", domain.StatusExpired, (*string)(nil), mock.Anything, now).Return(nil)
	f.requests.On("Resolve", mock.Anything, "r2", domain.StatusExpired, (*string)(nil), mock.Anything, now).Return(requestRepo.ErrNotPending)
	f.requests.On("Resolve", mock.Anything, "r3", domain.StatusExpired, (*string)(nil), mock.Anything, now).Return(nil)
	f.occupancy.On("ReleaseByRequest", mock.Anything, "r1").Return(int64(1), nil)
	f.occupancy.On("ReleaseByRequest", mock.Anything, "r3").Return(int64(0), errors.New("db down"))
	f.publisher.On("Publish", mock.Anything, events.KeyRequestExpired, mock.MatchedBy(func(ev events.RequestEvent) bool {
		return ev.RequestID == "r1" && ev.Status == "expired"
	})).Return(nil).Once()

	resp, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Expired)
	assert.Equal(t, 1, resp.Skipped)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, int64(1), resp.Released)
	assert.Equal(t, []string{"r1"}, resp.IDs)
	assert.Equal(t, []string{"expired"}, f.metrics.decisions)
	f.occupancy.AssertNotCalled(t, "ReleaseByRequest", mock.Anything, "r2")
	f.publisher.AssertExpectations(t)
}

func TestExecute_Disabled(t *testing.T) {
	f := newFixture(0)

	resp, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Zero(t, resp.Expired)
	f.requests.AssertNotCalled(t, "ListPendingCreatedBefore", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ListError(t *testing.T) {
	f := newFixture(time.Hour)
	f.requests.On("ListPendingCreatedBefore", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := f.uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_NothingStale(t *testing.T) {
	f := newFixture(time.Hour)
	f.requests.On("ListPendingCreatedBefore", mock.Anything, mock.Anything, mock.Anything).Return([]*domain.EventRequest{}, nil)

	resp, err := f.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resp.Expired)
	assert.Empty(t, f.metrics.decisions)
}
