package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
	services "github.com/magabrotheeeer/fund-subscriptions/internal/services/fund"
)

// Мок для FundRepository
type FundRepoMock struct {
	mock.Mock
}

func (m *FundRepoMock) CreateFund(ctx context.Context, fund models.Fund) (string, error) {
	args := m.Called(ctx, fund)
	return args.String(0), args.Error(1)
}

func (m *FundRepoMock) GetFund(ctx context.Context, fundUID string) (*models.Fund, error) {
	args := m.Called(ctx, fundUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Fund), args.Error(1)
}

func (m *FundRepoMock) ListFunds(ctx context.Context) ([]*models.Fund, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Fund), args.Error(1)
}

func (m *FundRepoMock) UpdateFund(ctx context.Context, fund models.Fund) (int64, error) {
	args := m.Called(ctx, fund)
	return args.Get(0).(int64), args.Error(1)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if args.Bool(0) {
		ptr := result.(**models.Fund)
		*ptr = args.Get(2).(*models.Fund)
	}
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newFundService(repo *FundRepoMock, cache *CacheMock) *services.FundService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return services.NewFundService(repo, cache, log)
}

var catalogFund = &models.Fund{
	UID:           "DEUDAPRIVADA",
	Name:          "DEUDAPRIVADA",
	Category:      models.CategoryDeudaPrivada,
	MinimumAmount: decimal.NewFromInt(50000),
	IsActive:      true,
}

func TestFundService_Read(t *testing.T) {
	t.Run("cache hit skips the repository", func(t *testing.T) {
		repo := new(FundRepoMock)
		cache := new(CacheMock)
		cache.On("Get", "fund:DEUDAPRIVADA", mock.Anything).Return(true, nil, catalogFund).Once()

		fund, err := newFundService(repo, cache).Read(context.Background(), "DEUDAPRIVADA")
		assert.NoError(t, err)
		assert.Equal(t, catalogFund, fund)
		repo.AssertNotCalled(t, "GetFund")
		cache.AssertExpectations(t)
	})

	t.Run("cache miss falls back to the repository and caches", func(t *testing.T) {
		repo := new(FundRepoMock)
		cache := new(CacheMock)
		cache.On("Get", "fund:DEUDAPRIVADA", mock.Anything).Return(false, nil).Once()
		repo.On("GetFund", mock.Anything, "DEUDAPRIVADA").Return(catalogFund, nil).Once()
		cache.On("Set", "fund:DEUDAPRIVADA", catalogFund, time.Hour).Return(nil).Once()

		fund, err := newFundService(repo, cache).Read(context.Background(), "DEUDAPRIVADA")
		assert.NoError(t, err)
		assert.Equal(t, catalogFund, fund)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache errors are non-fatal", func(t *testing.T) {
		repo := new(FundRepoMock)
		cache := new(CacheMock)
		cache.On("Get", "fund:DEUDAPRIVADA", mock.Anything).
			Return(false, errors.New("redis down")).Once()
		repo.On("GetFund", mock.Anything, "DEUDAPRIVADA").Return(catalogFund, nil).Once()
		cache.On("Set", "fund:DEUDAPRIVADA", catalogFund, time.Hour).
			Return(errors.New("redis down")).Once()

		fund, err := newFundService(repo, cache).Read(context.Background(), "DEUDAPRIVADA")
		assert.NoError(t, err)
		assert.Equal(t, catalogFund, fund)
	})

	t.Run("unknown fund", func(t *testing.T) {
		repo := new(FundRepoMock)
		cache := new(CacheMock)
		cache.On("Get", "fund:UNKNOWN", mock.Anything).Return(false, nil).Once()
		repo.On("GetFund", mock.Anything, "UNKNOWN").Return(nil, models.ErrFundNotFound).Once()

		fund, err := newFundService(repo, cache).Read(context.Background(), "UNKNOWN")
		assert.ErrorIs(t, err, models.ErrFundNotFound)
		assert.Nil(t, fund)
	})
}

func TestFundService_Update(t *testing.T) {
	req := models.DummyFund{
		UID:           "DEUDAPRIVADA",
		Name:          "DEUDAPRIVADA",
		Category:      models.CategoryDeudaPrivada,
		MinimumAmount: 60000,
		IsActive:      false,
	}

	t.Run("update invalidates the cache entry", func(t *testing.T) {
		repo := new(FundRepoMock)
		cache := new(CacheMock)
		repo.On("UpdateFund", mock.Anything, mock.MatchedBy(func(f models.Fund) bool {
			return f.UID == req.UID && !f.IsActive &&
				f.MinimumAmount.Equal(decimal.NewFromInt(60000))
		})).Return(int64(1), nil).Once()
		cache.On("Invalidate", "fund:DEUDAPRIVADA").Return(nil).Once()

		count, err := newFundService(repo, cache).Update(context.Background(), req)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("unknown fund", func(t *testing.T) {
		repo := new(FundRepoMock)
		cache := new(CacheMock)
		repo.On("UpdateFund", mock.Anything, mock.Anything).Return(int64(0), nil).Once()

		_, err := newFundService(repo, cache).Update(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrFundNotFound)
		cache.AssertNotCalled(t, "Invalidate")
	})
}

func TestFundService_Seed(t *testing.T) {
	t.Run("creates only missing funds", func(t *testing.T) {
		repo := new(FundRepoMock)
		cache := new(CacheMock)

		// Один фонд уже существует, остальные четыре создаются.
		repo.On("GetFund", mock.Anything, "DEUDAPRIVADA").Return(catalogFund, nil).Once()
		repo.On("GetFund", mock.Anything, mock.Anything).Return(nil, models.ErrFundNotFound).Times(4)
		repo.On("CreateFund", mock.Anything, mock.Anything).Return("", nil).Times(4)

		err := newFundService(repo, cache).Seed(context.Background())
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("stops on repository error", func(t *testing.T) {
		repo := new(FundRepoMock)
		cache := new(CacheMock)
		repo.On("GetFund", mock.Anything, mock.Anything).Return(nil, models.ErrFundNotFound).Once()
		repo.On("CreateFund", mock.Anything, mock.Anything).Return("", errors.New("db error")).Once()

		err := newFundService(repo, cache).Seed(context.Background())
		assert.Error(t, err)
	})

	t.Run("transient lookup failure aborts without inserting", func(t *testing.T) {
		repo := new(FundRepoMock)
		cache := new(CacheMock)
		repo.On("GetFund", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused")).Once()

		err := newFundService(repo, cache).Seed(context.Background())
		assert.Error(t, err)
		repo.AssertNotCalled(t, "CreateFund")
	})

	t.Run("fund inserted by a concurrent replica is skipped", func(t *testing.T) {
		repo := new(FundRepoMock)
		cache := new(CacheMock)
		// Другой экземпляр сервиса успел вставить фонд между проверкой
		// и вставкой: конфликт ключа не должен срывать наполнение.
		repo.On("GetFund", mock.Anything, mock.Anything).Return(nil, models.ErrFundNotFound).Times(5)
		repo.On("CreateFund", mock.Anything, mock.Anything).
			Return("", models.ErrFundAlreadyExists).Times(5)

		err := newFundService(repo, cache).Seed(context.Background())
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
