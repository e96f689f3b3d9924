package approve_request

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/internal/infra/events"
	eventRepo "github.com/m04kA/EventSync-BookingService/internal/infra/storage/event"
	requestRepo "github.com/m04kA/EventSync-BookingService/internal/infra/storage/request"
)

const decisionApproved = "approved"

// UseCase use case одобрения заявки администратором
type UseCase struct {
	requestRepo  RequestRepository
	eventRepo    EventRepository
	admins       AdminChecker
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	newID        func() string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	eventRepo EventRepository,
	admins AdminChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		eventRepo:    eventRepo,
		admins:       admins,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		newID:        uuid.NewString,
		logger:       logger,
	}
}

// Execute одобряет заявку: создает мероприятие и переводит заявку в approved
// Занятость слота не перепроверяется и не меняется: блокировка была поставлена при подаче
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApproveRequest: request=%s, admin=%s", req.RequestID, req.AdminID)

	if strings.TrimSpace(req.RequestID) == "" {
		return nil, fmt.Errorf("%w: requestID is required", ErrInvalidInput)
	}

	if !uc.admins.IsAdmin(req.AdminID) {
		uc.logger.Warn("ApproveRequest: user=%s is not an admin", req.AdminID)
		return nil, ErrForbidden
	}

	now := uc.timeProvider.Now()

	var (
		request  *domain.EventRequest
		approved *domain.ApprovedEvent
	)
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Заявка с блокировкой строки (FOR UPDATE)
		found, err := uc.requestRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				uc.logger.Warn("ApproveRequest: request id=%s not found", req.RequestID)
				return ErrRequestNotFound
			}
			uc.logger.Error("ApproveRequest: failed to get request id=%s: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to get request: %w", ErrInternal, err)
		}

		if !found.IsPending() {
			uc.logger.Warn("ApproveRequest: request id=%s is already %s", found.ID, found.Status)
			return ErrRequestNotFound
		}

		// 2. Мероприятие
		created, err := uc.eventRepo.Create(txCtx, domain.NewApprovedEvent(uc.newID(), found, req.AdminID, now))
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventExists) {
				uc.logger.Warn("ApproveRequest: event for request id=%s already exists", found.ID)
				return ErrRequestNotFound
			}
			uc.logger.Error("ApproveRequest: failed to create event for request id=%s: %v", found.ID, err)
			return fmt.Errorf("%w: failed to create event: %w", ErrInternal, err)
		}

		// 3. Перевод заявки в approved
		if err := uc.requestRepo.Resolve(txCtx, found.ID, domain.StatusApproved, &req.AdminID, nil, now); err != nil {
			if errors.Is(err, requestRepo.ErrNotPending) {
				uc.logger.Warn("ApproveRequest: request id=%s resolved concurrently", found.ID)
				return ErrRequestNotFound
			}
			uc.logger.Error("ApproveRequest: failed to resolve request id=%s: %v", found.ID, err)
			return fmt.Errorf("%w: failed to resolve request: %w", ErrInternal, err)
		}

		found.Status = domain.StatusApproved
		found.ResolvedBy = &req.AdminID
		found.ResolvedAt = &now

		request = found
		approved = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrRequestNotFound) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("ApproveRequest: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.IncBookingDecision(decisionApproved)
	uc.logger.Info("ApproveRequest: request id=%s approved, event id=%s", request.ID, approved.ID)

	ev := events.NewRequestEvent(request, now)
	ev.ApprovedEventID = approved.ID
	if err := uc.publisher.Publish(ctx, events.KeyRequestApproved, ev); err != nil {
		uc.logger.Warn("ApproveRequest: failed to publish %s for request id=%s: %v",
			events.KeyRequestApproved, request.ID, err)
	}

	return &Response{
		ApprovedEventID: approved.ID,
		RequestID:       request.ID,
		VenueID:         approved.VenueID,
		Date:            approved.Date,
		SlotKey:         approved.SlotKey,
		ApprovedBy:      approved.ApprovedBy,
		ApprovedAt:      approved.ApprovedAt,
	}, nil
}
