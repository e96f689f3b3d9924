package submit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/internal/infra/events"
	occupancyRepo "github.com/m04kA/EventSync-BookingService/internal/infra/storage/occupancy"
	venueRepo "github.com/m04kA/EventSync-BookingService/internal/infra/storage/venue"
	"github.com/m04kA/EventSync-BookingService/pkg/pgerr"
	"github.com/m04kA/EventSync-BookingService/pkg/slotlock"
)

const (
	decisionSubmitted = "submitted"
	decisionConflict  = "conflict"
)

// UseCase use case подачи заявки на площадку
type UseCase struct {
	venueRepo      VenueRepository
	occupancyRepo  OccupancyRepository
	requestRepo    RequestRepository
	locker         SlotLocker
	txManager      TransactionManager
	publisher      EventPublisher
	metrics        Metrics
	maxAdvanceDays int
	timeProvider   TimeProvider
	newID          func() string
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
// maxAdvanceDays = 0 отключает ограничение на дату
func NewUseCase(
	venueRepo VenueRepository,
	occupancyRepo OccupancyRepository,
	requestRepo RequestRepository,
	locker SlotLocker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	maxAdvanceDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:      venueRepo,
		occupancyRepo:  occupancyRepo,
		requestRepo:    requestRepo,
		locker:         locker,
		txManager:      txManager,
		publisher:      publisher,
		metrics:        metrics,
		maxAdvanceDays: maxAdvanceDays,
		timeProvider:   &RealTimeProvider{},
		newID:          uuid.NewString,
		logger:         logger,
	}
}

// Execute выполняет use case подачи заявки
// Проверка занятости и временная блокировка слота выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: user=%s, venue=%s, date=%s, time=%s, duration=%.2fh",
		req.UserID, req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationHours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Запрошенный слот
	slot, err := domain.NewTimeSlot(req.Date, req.StartTime, req.DurationHours)
	if err != nil {
		uc.logger.Warn("SubmitBooking: invalid slot: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Дата и время относительно текущего момента
	now := uc.timeProvider.Now()
	if err := validateDate(slot.Date, now, uc.maxAdvanceDays); err != nil {
		uc.logger.Warn("SubmitBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateStartTime(slot, now); err != nil {
		uc.logger.Warn("SubmitBooking: start time %s already passed", slot.Start)
		return nil, err
	}

	// 4. Площадка
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("SubmitBooking: venue id=%s not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("SubmitBooking: failed to get venue id=%s: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	if !venue.Fits(req.SeatsRequired) {
		uc.logger.Warn("SubmitBooking: venue id=%s capacity=%d < seats=%d", venue.ID, venue.Capacity, req.SeatsRequired)
		return nil, fmt.Errorf("%w: venue capacity %d is less than %d seats", ErrInvalidInput, venue.Capacity, req.SeatsRequired)
	}

	// 5. Лок на площадку и дату
	lockKey := slotlock.Key(venue.ID, slot.Date)
	release, err := uc.locker.Acquire(ctx, lockKey)
	if err != nil {
		if errors.Is(err, slotlock.ErrLockTimeout) {
			uc.logger.Warn("SubmitBooking: slot lock %s is held by another submit", lockKey)
			return nil, ErrSlotBusy
		}
		uc.logger.Error("SubmitBooking: failed to acquire lock %s: %v", lockKey, err)
		return nil, fmt.Errorf("%w: failed to acquire slot lock: %v", ErrInternal, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("SubmitBooking: failed to release lock %s: %v", lockKey, err)
		}
	}()

	// 6. Сериализуемая транзакция: проверка пересечений, создание заявки, блокировка слота
	var result *domain.EventRequest
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Все занятые слоты площадки на дату с блокировкой (FOR UPDATE)
		occupied, err := uc.occupancyRepo.ListByVenueAndDate(txCtx, venue.ID, slot.Date)
		if err != nil {
			uc.logger.Error("SubmitBooking: failed to list occupancy: %v", err)
			return fmt.Errorf("%w: failed to list occupancy: %w", ErrInternal, err)
		}

		// 6.2. Полная проверка пересечения интервалов
		if taken, busy := domain.ConflictsWith(slot, occupied); busy {
			uc.logger.Warn("SubmitBooking: slot %s overlaps %s held by request id=%s",
				slot, taken.Key(), taken.RequestID)
			return ErrSlotNotAvailable
		}

		// 6.3. Заявка создается до блокировки слота
		created, err := uc.requestRepo.Create(txCtx, &domain.EventRequest{
			ID:                 uc.newID(),
			UserID:             req.UserID,
			EventName:          req.EventName,
			Description:        req.Description,
			Date:               slot.Date,
			StartTime:          slot.Start,
			DurationHours:      req.DurationHours,
			SeatsRequired:      req.SeatsRequired,
			FacilitiesRequired: normalizeFacilities(req.FacilitiesRequired),
			VenueID:            venue.ID,
			VenueName:          venue.Name,
			SlotKey:            slot.Key(),
			Status:             domain.StatusPending,
		})
		if err != nil {
			uc.logger.Error("SubmitBooking: failed to create request: %v", err)
			return fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
		}

		// 6.4. Временная блокировка слота до решения администратора
		if err := uc.occupancyRepo.Block(txCtx, domain.OccupiedSlot{
			VenueID:   venue.ID,
			Slot:      slot,
			RequestID: created.ID,
		}); err != nil {
			if errors.Is(err, occupancyRepo.ErrSlotTaken) {
				uc.logger.Warn("SubmitBooking: slot %s is already held by another request", slot)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("SubmitBooking: failed to block slot %s: %v", slot, err)
			return fmt.Errorf("%w: failed to block slot: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable), pgerr.IsRetryable(err):
			// Исчерпанные повторы сериализации означают, что слот забрала параллельная заявка
			uc.metrics.IncBookingDecision(decisionConflict)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrInternal):
			return nil, err
		default:
			uc.logger.Error("SubmitBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.metrics.IncBookingDecision(decisionSubmitted)
	uc.logger.Info("SubmitBooking: created request id=%s, venue=%s, slot=%s", result.ID, venue.ID, slot)

	// 7. Событие о новой заявке; ошибка брокера не отменяет заявку
	if err := uc.publisher.Publish(ctx, events.KeyRequestSubmitted, events.NewRequestEvent(result, now)); err != nil {
		uc.logger.Warn("SubmitBooking: failed to publish %s for request id=%s: %v",
			events.KeyRequestSubmitted, result.ID, err)
	}

	return &Response{
		RequestID: result.ID,
		VenueID:   result.VenueID,
		VenueName: result.VenueName,
		Date:      result.Date,
		SlotKey:   result.SlotKey,
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt,
	}, nil
}
