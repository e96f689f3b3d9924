package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EventSync-BookingService/pkg/pgerr"
	"github.com/m04kA/EventSync-BookingService/pkg/psqlbuilder"
)

const table = "approved_events"

var eventColumns = []string{
	"id",
	"request_id",
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
	"approved_by",
	"approved_at",
	"calendar_event_id",
}

// Repository репозиторий одобренных мероприятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мероприятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет одобренное мероприятие
// request_id уникален: одна заявка не может быть одобрена дважды
func (r *Repository) Create(ctx context.Context, ev *domain.ApprovedEvent) (*domain.ApprovedEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"request_id",
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
			"approved_by",
			"approved_at",
		).
		Values(
			ev.ID,
			ev.RequestID,
			ev.UserID,
			ev.EventName,
			ev.Description,
			domain.TruncateDate(ev.Date),
			ev.StartTime,
			ev.DurationHours,
			ev.SeatsRequired,
			pq.Array(ev.FacilitiesRequired),
			ev.VenueID,
			ev.VenueName,
			ev.SlotKey,
			ev.Status,
			ev.ApprovedBy,
			ev.ApprovedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	_, err = executor.ExecContext(ctx, query, args...)
	if pgerr.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: request_id=%s", ErrEventExists, ev.RequestID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return ev, nil
}

// GetByID получает мероприятие по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ApprovedEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	ev, err := scanEvent(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan event: %w", ErrScanRow, err)
	}

	return ev, nil
}

// GetByUserID получает мероприятия пользователя в порядке проведения
func (r *Repository) GetByUserID(ctx context.Context, userID string) ([]*domain.ApprovedEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("event_date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.ApprovedEvent, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan row: %w", ErrScanRow, err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows error: %w", ErrScanRow, err)
	}

	return events, nil
}

// SetCalendarEventID проставляет идентификатор события календаря один раз
func (r *Repository) SetCalendarEventID(ctx context.Context, id, calendarEventID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("calendar_event_id", calendarEventID).
		Where(squirrel.Eq{"id": id, "calendar_event_id": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	// Строка не обновилась: либо мероприятия нет, либо id уже проставлен
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("%w: id=%s", ErrCalendarEventAlreadySet, id)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*domain.ApprovedEvent, error) {
	var ev domain.ApprovedEvent
	var approvedAt sql.NullTime

	err := row.Scan(
		&ev.ID,
		&ev.RequestID,
		&ev.UserID,
		&ev.EventName,
		&ev.Description,
		&ev.Date,
		&ev.StartTime,
		&ev.DurationHours,
		&ev.SeatsRequired,
		pq.Array(&ev.FacilitiesRequired),
		&ev.VenueID,
		&ev.VenueName,
		&ev.SlotKey,
		&ev.Status,
		&ev.ApprovedBy,
		&approvedAt,
		&ev.CalendarEventID,
	)
	if err != nil {
		return nil, err
	}

	ev.ApprovedAt = approvedAt.Time
	if ev.FacilitiesRequired == nil {
		ev.FacilitiesRequired = []string{}
	}

	return &ev, nil
}
