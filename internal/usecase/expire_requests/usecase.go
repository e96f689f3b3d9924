package expire_requests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/internal/infra/events"
	requestRepo "github.com/m04kA/EventSync-BookingService/internal/infra/storage/request"
)

const (
	decisionExpired = "expired"

	defaultBatchSize = 100
)

var errAlreadyResolved = errors.New("request already resolved")

// UseCase use case истечения заявок, оставшихся без решения дольше TTL
type UseCase struct {
	requestRepo   RequestRepository
	occupancyRepo OccupancyRepository
	txManager     TransactionManager
	publisher     EventPublisher
	metrics       Metrics
	ttl           time.Duration
	batchSize     uint64
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// ttl <= 0 отключает истечение заявок
func NewUseCase(
	requestRepo RequestRepository,
	occupancyRepo OccupancyRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	ttl time.Duration,
	batchSize uint64,
	logger Logger,
) *UseCase {
	if batchSize == 0 {
		batchSize = defaultBatchSize
	}
	return &UseCase{
		requestRepo:   requestRepo,
		occupancyRepo: occupancyRepo,
		txManager:     txManager,
		publisher:     publisher,
		metrics:       metrics,
		ttl:           ttl,
		batchSize:     batchSize,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute переводит просроченные заявки в expired и освобождает их слоты
// Каждая заявка обрабатывается в своей транзакции: ошибка одной не откатывает остальные
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	resp := &Response{}
	if uc.ttl <= 0 {
		return resp, nil
	}

	now := uc.timeProvider.Now()
	cutoff := now.Add(-uc.ttl)

	stale, err := uc.requestRepo.ListPendingCreatedBefore(ctx, cutoff, uc.batchSize)
	if err != nil {
		uc.logger.Error("ExpireRequests: failed to list pending requests before %s: %v", cutoff.Format(time.RFC3339), err)
		return nil, fmt.Errorf("%w: failed to list pending requests: %v", ErrInternal, err)
	}

	if len(stale) == 0 {
		return resp, nil
	}

	reason := fmt.Sprintf("no decision within %s", uc.ttl)

	for _, req := range stale {
		if err := ctx.Err(); err != nil {
			return resp, err
		}

		released, err := uc.expireOne(ctx, req, &reason, now)
		switch {
		case errors.Is(err, errAlreadyResolved):
			resp.Skipped++
			continue
		case err != nil:
			uc.logger.Error("ExpireRequests: failed to expire request id=%s: %v", req.ID, err)
			resp.Failed++
			continue
		}

		resp.Expired++
		resp.Released += released
		resp.IDs = append(resp.IDs, req.ID)
		uc.metrics.IncBookingDecision(decisionExpired)

		req.Status = domain.StatusExpired
		req.ResolvedAt = &now
		req.RejectionReason = &reason
		if err := uc.publisher.Publish(ctx, events.KeyRequestExpired, events.NewRequestEvent(req, now)); err != nil {
			uc.logger.Warn("ExpireRequests: failed to publish %s for request id=%s: %v",
				events.KeyRequestExpired, req.ID, err)
		}
	}

	uc.logger.Info("ExpireRequests: expired=%d, skipped=%d, failed=%d, released=%d",
		resp.Expired, resp.Skipped, resp.Failed, resp.Released)

	return resp, nil
}

func (uc *UseCase) expireOne(ctx context.Context, req *domain.EventRequest, reason *string, now time.Time) (int64, error) {
	var released int64
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.requestRepo.Resolve(txCtx, req.ID, domain.StatusExpired, nil, reason, now); err != nil {
			if errors.Is(err, requestRepo.ErrNotPending) || errors.Is(err, requestRepo.ErrRequestNotFound) {
				return errAlreadyResolved
			}
			return fmt.Errorf("resolve: %w", err)
		}

		n, err := uc.occupancyRepo.ReleaseByRequest(txCtx, req.ID)
		if err != nil {
			return fmt.Errorf("release: %w", err)
		}
		released = n
		return nil
	})
	return released, err
}
