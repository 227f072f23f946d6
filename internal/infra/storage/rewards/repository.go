package rewards

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

var rewardsColumns = []string{"user_id", "location_id", "loyalty_points", "free_washes", "updated_at"}

// Repository репозиторий балансов лояльности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория балансов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает баланс пользователя на точке
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы начисление
// и списание не теряли параллельные обновления.
func (r *Repository) Get(ctx context.Context, userID, locationID string) (*domain.Rewards, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(rewardsColumns...).
		From("user_rewards").
		Where(squirrel.Eq{"user_id": userID, "location_id": locationID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var rw domain.Rewards
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rw.UserID,
		&rw.LocationID,
		&rw.LoyaltyPoints,
		&rw.FreeWashes,
		&rw.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRewardsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan rewards: %w", ErrScanRow, err)
	}

	return &rw, nil
}

// ListByUser получает балансы пользователя по всем точкам
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Rewards, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(rewardsColumns...).
		From("user_rewards").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("location_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Rewards, 0)
	for rows.Next() {
		var rw domain.Rewards
		if err := rows.Scan(&rw.UserID, &rw.LocationID, &rw.LoyaltyPoints, &rw.FreeWashes, &rw.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan rewards: %v", ErrScanRow, err)
		}
		result = append(result, &rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - rows iteration: %w", ErrScanRow, err)
	}

	return result, nil
}

// Upsert сохраняет баланс целиком
// Вызывается после Get внутри той же транзакции
func (r *Repository) Upsert(ctx context.Context, rw *domain.Rewards) (*domain.Rewards, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("user_rewards").
		Columns("user_id", "location_id", "loyalty_points", "free_washes").
		Values(rw.UserID, rw.LocationID, rw.LoyaltyPoints, rw.FreeWashes).
		Suffix("ON CONFLICT (user_id, location_id) DO UPDATE SET " +
			"loyalty_points = EXCLUDED.loyalty_points, free_washes = EXCLUDED.free_washes, updated_at = now() " +
			"RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rw.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return rw, nil
}
