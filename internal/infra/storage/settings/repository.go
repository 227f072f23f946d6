package settings

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
)

// Repository репозиторий настроек вместимости
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetGlobal получает глобальные настройки точки
func (r *Repository) GetGlobal(ctx context.Context, locationID string) (*domain.GlobalSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("location_id", "active_bays", "updated_at").
		From("location_settings").
		Where(squirrel.Eq{"location_id": locationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetGlobal - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.GlobalSettings
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.LocationID, &s.ActiveBays, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetGlobal - scan settings: %w", ErrScanRow, err)
	}

	return &s, nil
}

// GetDaily получает настройки точки на дату
func (r *Repository) GetDaily(ctx context.Context, locationID string, date time.Time) (*domain.DailySettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("location_id", "date", "active_bays", "updated_at").
		From("daily_settings").
		Where(squirrel.Eq{"location_id": locationID, "date": date.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDaily - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.DailySettings
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.LocationID, &s.Date, &s.ActiveBays, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDaily - scan settings: %w", ErrScanRow, err)
	}

	return &s, nil
}

// UpsertGlobal создает или обновляет глобальные настройки точки
func (r *Repository) UpsertGlobal(ctx context.Context, settings *domain.GlobalSettings) (*domain.GlobalSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("location_settings").
		Columns("location_id", "active_bays").
		Values(settings.LocationID, settings.ActiveBays).
		Suffix("ON CONFLICT (location_id) DO UPDATE SET active_bays = EXCLUDED.active_bays, updated_at = now() RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertGlobal - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&settings.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertGlobal - execute insert: %w", ErrExecQuery, err)
	}

	return settings, nil
}

// UpsertDaily создает или обновляет настройки точки на дату
func (r *Repository) UpsertDaily(ctx context.Context, settings *domain.DailySettings) (*domain.DailySettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("daily_settings").
		Columns("location_id", "date", "active_bays").
		Values(settings.LocationID, settings.Date.Format(domain.DateFormat), settings.ActiveBays).
		Suffix("ON CONFLICT (location_id, date) DO UPDATE SET active_bays = EXCLUDED.active_bays, updated_at = now() RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertDaily - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&settings.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertDaily - execute insert: %w", ErrExecQuery, err)
	}

	return settings, nil
}
