package venue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/EventSync-BookingService/internal/domain"
	"github.com/m04kA/EventSync-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EventSync-BookingService/pkg/psqlbuilder"
)

var venueColumns = []string{
	"id",
	"name",
	"capacity",
	"facilities",
	"building",
	"floor",
	"updated_at",
}

// Repository репозиторий каталога площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает весь каталог площадок, отсортированный по названию
func (r *Repository) List(ctx context.Context) ([]domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From("venues").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	venues := make([]domain.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return venues, nil
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	v, err := scanVenue(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan venue: %w", ErrScanRow, err)
	}

	return &v, nil
}

// Upsert создает площадку или обновляет её атрибуты (загрузка каталога)
func (r *Repository) Upsert(ctx context.Context, v domain.Venue) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venues").
		Columns("id", "name", "capacity", "facilities", "building", "floor").
		Values(v.ID, v.Name, int64(v.Capacity), pq.Array(v.Facilities), v.Building, v.Floor).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			capacity = EXCLUDED.capacity,
			facilities = EXCLUDED.facilities,
			building = EXCLUDED.building,
			floor = EXCLUDED.floor,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(row rowScanner) (domain.Venue, error) {
	var v domain.Venue
	var capacity int64
	var building sql.NullString
	var floor sql.NullInt64
	var updatedAt sql.NullTime

	err := row.Scan(
		&v.ID,
		&v.Name,
		&capacity,
		pq.Array(&v.Facilities),
		&building,
		&floor,
		&updatedAt,
	)
	if err != nil {
		return domain.Venue{}, err
	}

	if capacity > 0 {
		v.Capacity = uint(capacity)
	}
	v.Building = building.String
	v.Floor = int(floor.Int64)
	v.UpdatedAt = updatedAt.Time
	if v.Facilities == nil {
		v.Facilities = []string{}
	}

	return v, nil
}
