package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EventSync-BookingService/pkg/pgerr"
	"github.com/m04kA/EventSync-BookingService/pkg/psqlbuilder"
)

const table = "event_requests"

var requestColumns = []string{
	"id",
	"user_id",
	"event_name",
	"description",
	"event_date",
	"start_time",
	"duration_hours",
	"seats_required",
	"facilities_required",
	"venue_id",
	"venue_name",
	"slot_key",
	"status",
	"rejection_reason",
	"resolved_by",
	"resolved_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий заявок на мероприятия
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заявку; ID генерирует вызывающая сторона
// Внутри транзакции вызывается до блокировки слота в реестре занятости
func (r *Repository) Create(ctx context.Context, req *domain.EventRequest) (*domain.EventRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"user_id",
			"event_name",
			"description",
			"event_date",
			"start_time",
			"duration_hours",
			"seats_required",
			"facilities_required",
			"venue_id",
			"venue_name",
			"slot_key",
			"status",
		).
		Values(
			req.ID,
			req.UserID,
			req.EventName,
			req.Description,
			domain.TruncateDate(req.Date),
			req.StartTime,
			req.DurationHours,
			req.SeatsRequired,
			pq.Array(req.FacilitiesRequired),
			req.VenueID,
			req.VenueName,
			req.SlotKey,
			req.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: id=%s", ErrDuplicateRequest, req.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает заявку по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы решения администраторов не гонялись
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.EventRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %w", ErrScanRow, err)
	}

	return req, nil
}

// GetByUserID получает заявки пользователя, новые сначала
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID string, status *domain.RequestStatus) ([]*domain.EventRequest, error) {
	selectBuilder := psqlbuilder.Select(requestColumns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	return r.list(ctx, "GetByUserID", selectBuilder)
}

// ListPending возвращает очередь заявок на рассмотрение, старые сначала
func (r *Repository) ListPending(ctx context.Context) ([]*domain.EventRequest, error) {
	selectBuilder := psqlbuilder.Select(requestColumns...).
		From(table).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		OrderBy("created_at ASC")

	return r.list(ctx, "ListPending", selectBuilder)
}

// ListPendingCreatedBefore возвращает зависшие заявки, созданные раньше before
func (r *Repository) ListPendingCreatedBefore(ctx context.Context, before time.Time, limit uint64) ([]*domain.EventRequest, error) {
	selectBuilder := psqlbuilder.Select(requestColumns...).
		From(table).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Lt{"created_at": before}).
		OrderBy("created_at ASC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit)
	}

	return r.list(ctx, "ListPendingCreatedBefore", selectBuilder)
}

// ListByPeriod возвращает заявки, созданные в [From, To), для аудита
func (r *Repository) ListByPeriod(ctx context.Context, filter domain.RequestsPeriodFilter) ([]*domain.EventRequest, error) {
	selectBuilder := psqlbuilder.Select(requestColumns...).
		From(table).
		Where(squirrel.GtOrEq{"created_at": filter.From}).
		Where(squirrel.Lt{"created_at": filter.To}).
		OrderBy("created_at ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	return r.list(ctx, "ListByPeriod", selectBuilder)
}

// Resolve переводит заявку из pending в терминальный статус
// Если заявка не найдена или уже разрешена, возвращает ErrNotPending
func (r *Repository) Resolve(ctx context.Context, id string, status domain.RequestStatus, resolvedBy, reason *string, resolvedAt time.Time) error {
	if !status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("resolved_by", resolvedBy).
		Set("rejection_reason", reason).
		Set("resolved_at", resolvedAt).
		Set("updated_at", resolvedAt).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Resolve - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Resolve - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Resolve - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%s", ErrNotPending, id)
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.EventRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	requests := make([]*domain.EventRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return requests, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.EventRequest, error) {
	var req domain.EventRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.EventName,
		&req.Description,
		&req.Date,
		&req.StartTime,
		&req.DurationHours,
		&req.SeatsRequired,
		pq.Array(&req.FacilitiesRequired),
		&req.VenueID,
		&req.VenueName,
		&req.SlotKey,
		&req.Status,
		&req.RejectionReason,
		&req.ResolvedBy,
		&req.ResolvedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time
	if req.FacilitiesRequired == nil {
		req.FacilitiesRequired = []string{}
	}

	return &req, nil
}
