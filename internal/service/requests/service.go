package requests

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/internal/infra/report"
	eventRepo "github.com/m04kA/EventSync-BookingService/internal/infra/storage/event"
	requestRepo "github.com/m04kA/EventSync-BookingService/internal/infra/storage/request"
	"github.com/m04kA/EventSync-BookingService/internal/service/requests/models"
)

// Service сервис чтения заявок и мероприятий
type Service struct {
	requestRepo RequestRepository
	eventRepo   EventRepository
	admins      AdminChecker
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	requestRepo RequestRepository,
	eventRepo EventRepository,
	admins AdminChecker,
	logger Logger,
) *Service {
	return &Service{
		requestRepo: requestRepo,
		eventRepo:   eventRepo,
		admins:      admins,
		logger:      logger,
	}
}

// IsAdmin проверяет, является ли пользователь администратором
func (s *Service) IsAdmin(userID string) bool {
	return s.admins.IsAdmin(userID)
}

// GetRequest получает заявку по ID
// Заявку видит ее автор или администратор
func (s *Service) GetRequest(ctx context.Context, requestID string, userID string) (*models.RequestResponse, error) {
	s.logger.Info("GetRequest: fetching request id=%s for user=%s", requestID, userID)

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("GetRequest: request id=%s not found", requestID)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetRequest: repository error for request id=%s: %v", requestID, err)
		return nil, fmt.Errorf("%w: GetRequest - repository error: %v", ErrInternal, err)
	}

	if !request.IsOwnedBy(userID) && !s.admins.IsAdmin(userID) {
		s.logger.Warn("GetRequest: access denied for user=%s to request id=%s", userID, requestID)
		return nil, ErrForbidden
	}

	return models.FromDomainRequest(request), nil
}

// GetPendingForUser возвращает ожидающие решения заявки пользователя, новые первыми
func (s *Service) GetPendingForUser(ctx context.Context, viewerID, userID string) (*models.RequestListResponse, error) {
	status := string(domain.StatusPending)
	return s.GetUserRequests(ctx, &models.GetUserRequestsRequest{
		ViewerID: viewerID,
		UserID:   userID,
		Status:   &status,
	})
}

// GetUserRequests получает историю заявок пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserRequests(ctx context.Context, req *models.GetUserRequestsRequest) (*models.RequestListResponse, error) {
	s.logger.Info("GetUserRequests: fetching requests for user=%s, status=%v", req.UserID, req.Status)

	if strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if err := s.checkOwnerAccess(req.ViewerID, req.UserID); err != nil {
		return nil, err
	}

	var domainStatus *domain.RequestStatus
	if req.Status != nil {
		status, err := models.ToDomainRequestStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserRequests: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	list, err := s.requestRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserRequests: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserRequests: fetched %d requests for user=%s", len(list), req.UserID)
	return models.FromDomainRequestList(list), nil
}

// GetApprovedForUser возвращает одобренные мероприятия пользователя по дате
func (s *Service) GetApprovedForUser(ctx context.Context, viewerID, userID string) (*models.EventListResponse, error) {
	s.logger.Info("GetApprovedForUser: fetching events for user=%s", userID)

	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if err := s.checkOwnerAccess(viewerID, userID); err != nil {
		return nil, err
	}

	list, err := s.eventRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetApprovedForUser: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetApprovedForUser - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEventList(list), nil
}

// ListPending очередь заявок на рассмотрение, старые первыми
// Доступно только администраторам
func (s *Service) ListPending(ctx context.Context, adminID string) (*models.RequestListResponse, error) {
	s.logger.Info("ListPending: requested by user=%s", adminID)

	if !s.admins.IsAdmin(adminID) {
		s.logger.Warn("ListPending: user=%s is not an admin", adminID)
		return nil, ErrForbidden
	}

	list, err := s.requestRepo.ListPending(ctx)
	if err != nil {
		s.logger.Error("ListPending: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPending - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPending: %d requests awaiting decision", len(list))
	return models.FromDomainRequestList(list), nil
}

// SetCalendarEventID привязывает событие внешнего календаря к мероприятию
// Привязка выполняется один раз; сделать ее может владелец или администратор
func (s *Service) SetCalendarEventID(ctx context.Context, eventID string, req *models.SetCalendarEventRequest) error {
	s.logger.Info("SetCalendarEventID: event id=%s by user=%s", eventID, req.UserID)

	if strings.TrimSpace(req.CalendarEventID) == "" {
		return fmt.Errorf("%w: calendarEventId is required", ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("SetCalendarEventID: event id=%s not found", eventID)
			return ErrEventNotFound
		}
		s.logger.Error("SetCalendarEventID: repository error for event id=%s: %v", eventID, err)
		return fmt.Errorf("%w: SetCalendarEventID - repository error: %v", ErrInternal, err)
	}

	if event.UserID != req.UserID && !s.admins.IsAdmin(req.UserID) {
		s.logger.Warn("SetCalendarEventID: access denied for user=%s to event id=%s", req.UserID, eventID)
		return ErrForbidden
	}

	if event.HasCalendarEvent() {
		s.logger.Warn("SetCalendarEventID: event id=%s already linked to %s", eventID, *event.CalendarEventID)
		return ErrAlreadySet
	}

	if err := s.eventRepo.SetCalendarEventID(ctx, eventID, req.CalendarEventID); err != nil {
		switch {
		case errors.Is(err, eventRepo.ErrCalendarEventAlreadySet):
			s.logger.Warn("SetCalendarEventID: event id=%s linked concurrently", eventID)
			return ErrAlreadySet
		case errors.Is(err, eventRepo.ErrEventNotFound):
			return ErrEventNotFound
		}
		s.logger.Error("SetCalendarEventID: repository error for event id=%s: %v", eventID, err)
		return fmt.Errorf("%w: SetCalendarEventID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetCalendarEventID: event id=%s linked to calendar event %s", eventID, req.CalendarEventID)
	return nil
}

// ExportAudit выгружает заявки за период в xlsx
// Доступно только администраторам
func (s *Service) ExportAudit(ctx context.Context, req *models.ExportAuditRequest, w io.Writer) (int, error) {
	s.logger.Info("ExportAudit: period=%s to %s by user=%s",
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.AdminID)

	if !s.admins.IsAdmin(req.AdminID) {
		s.logger.Warn("ExportAudit: user=%s is not an admin", req.AdminID)
		return 0, ErrForbidden
	}

	if req.From.IsZero() || req.To.IsZero() {
		return 0, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	from := domain.TruncateDate(req.From)
	to := domain.TruncateDate(req.To)
	if to.Before(from) {
		return 0, fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}

	filter := domain.RequestsPeriodFilter{
		From: from,
		To:   to.AddDate(0, 0, 1),
	}
	if req.Status != nil {
		status, err := models.ToDomainRequestStatus(*req.Status)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	list, err := s.requestRepo.ListByPeriod(ctx, filter)
	if err != nil {
		s.logger.Error("ExportAudit: repository error: %v", err)
		return 0, fmt.Errorf("%w: ExportAudit - repository error: %v", ErrInternal, err)
	}

	if err := report.WriteRequestsAudit(w, list, from, to); err != nil {
		s.logger.Error("ExportAudit: failed to write report: %v", err)
		return 0, fmt.Errorf("%w: ExportAudit - write report: %v", ErrInternal, err)
	}

	s.logger.Info("ExportAudit: exported %d requests", len(list))
	return len(list), nil
}

// checkOwnerAccess разрешает доступ владельцу данных и администраторам
func (s *Service) checkOwnerAccess(viewerID, userID string) error {
	if viewerID == userID || s.admins.IsAdmin(viewerID) {
		return nil
	}
	s.logger.Warn("checkOwnerAccess: user=%s has no access to data of user=%s", viewerID, userID)
	return ErrForbidden
}
