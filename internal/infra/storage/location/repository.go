package location

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	"github.com/m04kA/SMC-WashBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-WashBooking/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"location_id",
	"name",
	"duration_minutes",
	"is_active",
	"display_order",
}

// Repository репозиторий точек и их услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория точек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает точку по ID
// Внутри транзакции строка точки блокируется (FOR UPDATE): это сериализует
// все бронирования одной точки.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "created_at").
		From("locations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var loc domain.Location
	err = executor.QueryRowContext(ctx, query, args...).Scan(&loc.ID, &loc.Name, &loc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan location: %w", ErrScanRow, err)
	}

	return &loc, nil
}

// GetService получает услугу точки по ID
func (r *Repository) GetService(ctx context.Context, locationID, serviceID string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "location_id": locationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.LocationID,
		&s.Name,
		&s.DurationMinutes,
		&s.IsActive,
		&s.DisplayOrder,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	return &s, nil
}

// ListServices получает услуги точки в порядке отображения
// При activeOnly == false возвращает и выключенные услуги: они нужны,
// чтобы посчитать занятость по старым бронированиям.
func (r *Repository) ListServices(ctx context.Context, locationID string, activeOnly bool) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("display_order ASC", "name ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(
			&s.ID,
			&s.LocationID,
			&s.Name,
			&s.DurationMinutes,
			&s.IsActive,
			&s.DisplayOrder,
		); err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan service: %v", ErrScanRow, err)
		}
		services = append(services, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows iteration: %w", ErrScanRow, err)
	}

	return services, nil
}
