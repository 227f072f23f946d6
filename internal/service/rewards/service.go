package rewards

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	rewardsRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/rewards"
)

// Service сервис баланса лояльности
type Service struct {
	repo      RewardsRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса лояльности
func NewService(repo RewardsRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// AccruePoint начисляет балл за оплаченную мойку
// Чтение, изменение и запись выполняются в одной транзакции с блокировкой строки.
func (s *Service) AccruePoint(ctx context.Context, userID, locationID string) (*domain.Rewards, error) {
	if userID == "" || locationID == "" {
		return nil, fmt.Errorf("%w: userId and locationId are required", ErrInvalidInput)
	}

	var result *domain.Rewards
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.load(txCtx, userID, locationID)
		if err != nil {
			return err
		}

		earned := current.Accrue()

		saved, err := s.repo.Upsert(txCtx, current)
		if err != nil {
			return fmt.Errorf("%w: failed to save rewards: %w", ErrInternal, err)
		}
		if earned {
			s.logger.Info("AccruePoint: user=%s earned a free wash at location=%s", userID, locationID)
		}
		result = saved
		return nil
	})
	if err != nil {
		s.logger.Error("AccruePoint: user=%s, location=%s: %v", userID, locationID, err)
		return nil, err
	}

	return result, nil
}

// Get возвращает баланс пользователя на точке (пустой, если записи нет)
func (s *Service) Get(ctx context.Context, userID, locationID string) (*domain.Rewards, error) {
	current, err := s.load(ctx, userID, locationID)
	if err != nil {
		s.logger.Error("Get: user=%s, location=%s: %v", userID, locationID, err)
		return nil, err
	}
	return current, nil
}

// List возвращает балансы пользователя по всем точкам
func (s *Service) List(ctx context.Context, userID string) ([]*domain.Rewards, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("List: user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to list rewards: %v", ErrInternal, err)
	}
	return list, nil
}

func (s *Service) load(ctx context.Context, userID, locationID string) (*domain.Rewards, error) {
	current, err := s.repo.Get(ctx, userID, locationID)
	if errors.Is(err, rewardsRepo.ErrRewardsNotFound) {
		return domain.NewRewards(userID, locationID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get rewards: %w", ErrInternal, err)
	}
	return current, nil
}
