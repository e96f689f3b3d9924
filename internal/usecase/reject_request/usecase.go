package reject_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/internal/infra/events"
	requestRepo "github.com/m04kA/EventSync-BookingService/internal/infra/storage/request"
)

const decisionRejected = "rejected"

// UseCase use case отклонения заявки администратором
type UseCase struct {
	requestRepo   RequestRepository
	occupancyRepo OccupancyRepository
	admins        AdminChecker
	txManager     TransactionManager
	publisher     EventPublisher
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	occupancyRepo OccupancyRepository,
	admins AdminChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:   requestRepo,
		occupancyRepo: occupancyRepo,
		admins:        admins,
		txManager:     txManager,
		publisher:     publisher,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute отклоняет заявку и снимает временную блокировку слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RejectRequest: request=%s, admin=%s", req.RequestID, req.AdminID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RejectRequest: validation failed: %v", err)
		return nil, err
	}

	if !uc.admins.IsAdmin(req.AdminID) {
		uc.logger.Warn("RejectRequest: user=%s is not an admin", req.AdminID)
		return nil, ErrForbidden
	}

	now := uc.timeProvider.Now()
	reason := normalizeReason(req.Reason)

	var (
		request  *domain.EventRequest
		released int64
	)
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Заявка с блокировкой строки (FOR UPDATE)
		found, err := uc.requestRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				uc.logger.Warn("RejectRequest: request id=%s not found", req.RequestID)
				return ErrRequestNotFound
			}
			uc.logger.Error("RejectRequest: failed to get request id=%s: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to get request: %w", ErrInternal, err)
		}

		if !found.IsPending() {
			uc.logger.Warn("RejectRequest: request id=%s is already %s", found.ID, found.Status)
			return ErrRequestNotFound
		}

		// 2. Перевод заявки в rejected
		if err := uc.requestRepo.Resolve(txCtx, found.ID, domain.StatusRejected, &req.AdminID, reason, now); err != nil {
			if errors.Is(err, requestRepo.ErrNotPending) {
				uc.logger.Warn("RejectRequest: request id=%s resolved concurrently", found.ID)
				return ErrRequestNotFound
			}
			uc.logger.Error("RejectRequest: failed to resolve request id=%s: %v", found.ID, err)
			return fmt.Errorf("%w: failed to resolve request: %w", ErrInternal, err)
		}

		// 3. Освобождение слота
		n, err := uc.occupancyRepo.ReleaseByRequest(txCtx, found.ID)
		if err != nil {
			uc.logger.Error("RejectRequest: failed to release slot of request id=%s: %v", found.ID, err)
			return fmt.Errorf("%w: failed to release slot: %w", ErrInternal, err)
		}
		if n == 0 {
			uc.logger.Warn("RejectRequest: request id=%s held no slot in ledger", found.ID)
		}

		found.Status = domain.StatusRejected
		found.ResolvedBy = &req.AdminID
		found.ResolvedAt = &now
		found.RejectionReason = reason

		request = found
		released = n
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrRequestNotFound) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("RejectRequest: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.IncBookingDecision(decisionRejected)
	uc.logger.Info("RejectRequest: request id=%s rejected, released %d slot(s) of venue=%s on %s",
		request.ID, released, request.VenueID, request.Date.Format(domain.DateFormat))

	if err := uc.publisher.Publish(ctx, events.KeyRequestRejected, events.NewRequestEvent(request, now)); err != nil {
		uc.logger.Warn("RejectRequest: failed to publish %s for request id=%s: %v",
			events.KeyRequestRejected, request.ID, err)
	}

	return &Response{
		RequestID:     request.ID,
		Status:        string(request.Status),
		ReleasedSlots: released,
		ResolvedAt:    now,
	}, nil
}
