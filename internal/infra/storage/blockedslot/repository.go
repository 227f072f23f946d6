package blockedslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	"github.com/m04kA/SMC-WashBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-WashBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-WashBooking/pkg/types"
)

// Repository репозиторий заблокированных слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заблокированных слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByDate получает заблокированные слоты точки на дату по возрастанию времени
func (r *Repository) ListByDate(ctx context.Context, locationID string, date time.Time) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("location_id", "date", "time_slot", "created_at").
		From("blocked_slots").
		Where(squirrel.Eq{"location_id": locationID, "date": date.Format(domain.DateFormat)}).
		OrderBy("time_slot ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.BlockedSlot, 0)
	for rows.Next() {
		var s domain.BlockedSlot
		if err := rows.Scan(&s.LocationID, &s.Date, &s.TimeSlot, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByDate - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDate - rows iteration: %w", ErrScanRow, err)
	}

	return slots, nil
}

// Exists проверяет, заблокирован ли слот
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) Exists(ctx context.Context, locationID string, date time.Time, slot types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("time_slot").
		From("blocked_slots").
		Where(squirrel.Eq{
			"location_id": locationID,
			"date":        date.Format(domain.DateFormat),
			"time_slot":   slot,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var found types.TimeString
	err = executor.QueryRowContext(ctx, query, args...).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: Exists - scan slot: %w", ErrScanRow, err)
	}

	return true, nil
}

// Create блокирует слот
// Повторная блокировка того же слота не является ошибкой
func (r *Repository) Create(ctx context.Context, slot *domain.BlockedSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns("location_id", "date", "time_slot").
		Values(slot.LocationID, slot.Date.Format(domain.DateFormat), slot.TimeSlot).
		Suffix("ON CONFLICT (location_id, date, time_slot) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete снимает блокировку слота
func (r *Repository) Delete(ctx context.Context, locationID string, date time.Time, slot types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{
			"location_id": locationID,
			"date":        date.Format(domain.DateFormat),
			"time_slot":   slot,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}
