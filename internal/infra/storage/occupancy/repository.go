package occupancy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EventSync-BookingService/pkg/psqlbuilder"
)

const table = "venue_occupancy"

// Repository реестр занятости площадок: (venue_id, date, slot_key) -> request_id
// Решений о конфликтах не принимает, это делает уровень выше
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр реестра занятости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsOccupied проверяет точное совпадение ключа; отсутствие записи означает "свободно"
func (r *Repository) IsOccupied(ctx context.Context, venueID string, date time.Time, slotKey string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{
			"venue_id": venueID,
			"date":     domain.TruncateDate(date),
			"slot_key": slotKey,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsOccupied - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsOccupied - execute query: %w", ErrExecQuery, err)
	}

	return true, nil
}

// ListByVenueAndDate возвращает все занятые слоты площадки на дату
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) ListByVenueAndDate(ctx context.Context, venueID string, date time.Time) ([]domain.OccupiedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("venue_id", "date", "slot_key", "request_id", "created_at").
		From(table).
		Where(squirrel.Eq{"venue_id": venueID, "date": domain.TruncateDate(date)}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVenueAndDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVenueAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListByDate возвращает занятость всех площадок на дату, сгруппированную по venue_id
func (r *Repository) ListByDate(ctx context.Context, date time.Time) (map[string][]domain.OccupiedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("venue_id", "date", "slot_key", "request_id", "created_at").
		From(table).
		Where(squirrel.Eq{"date": domain.TruncateDate(date)}).
		OrderBy("venue_id ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots, err := scanSlots(rows)
	if err != nil {
		return nil, err
	}

	byVenue := make(map[string][]domain.OccupiedSlot)
	for _, s := range slots {
		byVenue[s.VenueID] = append(byVenue[s.VenueID], s)
	}
	return byVenue, nil
}

// Block помечает слот занятым заявкой
// Повторная блокировка тем же request_id ничего не меняет; ключ другой заявки дает ErrSlotTaken
func (r *Repository) Block(ctx context.Context, slot domain.OccupiedSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("venue_id", "date", "slot_key", "start_time", "end_time", "request_id").
		Values(
			slot.VenueID,
			domain.TruncateDate(slot.Slot.Date),
			slot.Key(),
			slot.Slot.Start,
			slot.Slot.End,
			slot.RequestID,
		).
		Suffix("ON CONFLICT (venue_id, date, slot_key) DO UPDATE SET request_id = EXCLUDED.request_id " +
			"WHERE " + table + ".request_id = EXCLUDED.request_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Block - build insert query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Block - execute insert: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Block - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: venue=%s date=%s key=%s", ErrSlotTaken,
			slot.VenueID, slot.Slot.Date.Format(domain.DateFormat), slot.Key())
	}

	return nil
}

// Release освобождает слот; освобождение свободного слота не является ошибкой
func (r *Repository) Release(ctx context.Context, venueID string, date time.Time, slotKey string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{
			"venue_id": venueID,
			"date":     domain.TruncateDate(date),
			"slot_key": slotKey,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// ReleaseByRequest освобождает все слоты, удерживаемые заявкой
func (r *Repository) ReleaseByRequest(ctx context.Context, requestID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"request_id": requestID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByRequest - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByRequest - execute delete: %w", ErrExecQuery, err)
	}

	released, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByRequest - get rows affected: %w", ErrExecQuery, err)
	}

	return released, nil
}

func scanSlots(rows *sql.Rows) ([]domain.OccupiedSlot, error) {
	slots := make([]domain.OccupiedSlot, 0)

	for rows.Next() {
		var (
			venueID, slotKey, requestID string
			date                        time.Time
			createdAt                   sql.NullTime
		)
		if err := rows.Scan(&venueID, &date, &slotKey, &requestID, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %w", ErrScanRow, err)
		}

		slot, err := domain.NewTimeSlotFromKey(date, slotKey)
		if err != nil {
			return nil, fmt.Errorf("%w: venue=%s date=%s key=%q: %w", ErrInvalidSlot, venueID, date.Format(domain.DateFormat), slotKey, err)
		}

		slots = append(slots, domain.OccupiedSlot{
			VenueID:   venueID,
			Slot:      slot,
			RequestID: requestID,
			CreatedAt: createdAt.Time,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}
