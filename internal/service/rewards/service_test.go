package rewards

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WashBooking/internal/domain"
	rewardsRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/rewards"
	"github.com/m04kA/SMC-WashBooking/pkg/logger"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Get(ctx context.Context, userID, locationID string) (*domain.Rewards, error) {
	args := m.Called(ctx, userID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rewards), args.Error(1)
}

func (m *mockRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Rewards, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*domain.Rewards), args.Error(1)
}

func (m *mockRepo) Upsert(ctx context.Context, rw *domain.Rewards) (*domain.Rewards, error) {
	args := m.Called(ctx, rw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rewards), args.Error(1)
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService(repo *mockRepo) *Service {
	return NewService(repo, passthroughTx{}, logger.NewWithWriter(io.Discard, "error"))
}

func TestService_AccruePoint(t *testing.T) {
	t.Run("tenth booking converts points into a free wash", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("Get", mock.Anything, "u-1", "loc-1").
			Return(&domain.Rewards{UserID: "u-1", LocationID: "loc-1", LoyaltyPoints: 9, FreeWashes: 0}, nil)
		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(rw *domain.Rewards) bool {
			return rw.LoyaltyPoints == 0 && rw.FreeWashes == 1
		})).Return(&domain.Rewards{UserID: "u-1", LocationID: "loc-1", LoyaltyPoints: 0, FreeWashes: 1}, nil)

		got, err := newService(repo).AccruePoint(context.Background(), "u-1", "loc-1")

		require.NoError(t, err)
		assert.Equal(t, 0, got.LoyaltyPoints)
		assert.Equal(t, 1, got.FreeWashes)
	})

	t.Run("first booking creates the balance", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("Get", mock.Anything, "u-2", "loc-1").Return(nil, rewardsRepo.ErrRewardsNotFound)
		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(rw *domain.Rewards) bool {
			return rw.UserID == "u-2" && rw.LoyaltyPoints == 1 && rw.FreeWashes == 0
		})).Return(&domain.Rewards{UserID: "u-2", LocationID: "loc-1", LoyaltyPoints: 1}, nil)

		got, err := newService(repo).AccruePoint(context.Background(), "u-2", "loc-1")

		require.NoError(t, err)
		assert.Equal(t, 1, got.LoyaltyPoints)
		repo.AssertExpectations(t)
	})

	t.Run("store failure is reported", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("Get", mock.Anything, "u-3", "loc-1").Return(nil, errors.New("timeout"))

		_, err := newService(repo).AccruePoint(context.Background(), "u-3", "loc-1")

		assert.ErrorIs(t, err, ErrInternal)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}
