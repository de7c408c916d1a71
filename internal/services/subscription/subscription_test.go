package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fund-subscriptions/internal/metrics"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
	services "github.com/magabrotheeeer/fund-subscriptions/internal/services/subscription"
)

// Мок для SubscriptionRepository
type SubscriptionRepoMock struct {
	mock.Mock
}

func (m *SubscriptionRepoMock) CreateSubscription(ctx context.Context, sub models.Subscription) (string, error) {
	args := m.Called(ctx, sub)
	return args.String(0), args.Error(1)
}

func (m *SubscriptionRepoMock) GetSubscription(ctx context.Context, subUID string) (*models.Subscription, error) {
	args := m.Called(ctx, subUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *SubscriptionRepoMock) ListSubscriptions(ctx context.Context, userUID string, activeOnly bool) ([]*models.Subscription, error) {
	args := m.Called(ctx, userUID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *SubscriptionRepoMock) ListAllSubscriptions(ctx context.Context, activeOnly bool) ([]*models.Subscription, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *SubscriptionRepoMock) CancelSubscription(ctx context.Context, subUID string, at time.Time) (int64, error) {
	args := m.Called(ctx, subUID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SubscriptionRepoMock) ReactivateSubscription(ctx context.Context, subUID string) (int64, error) {
	args := m.Called(ctx, subUID)
	return args.Get(0).(int64), args.Error(1)
}

// Мок для FundCatalog
type FundCatalogMock struct {
	mock.Mock
}

func (m *FundCatalogMock) Read(ctx context.Context, fundUID string) (*models.Fund, error) {
	args := m.Called(ctx, fundUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Fund), args.Error(1)
}

// Мок для Balance
type BalanceMock struct {
	mock.Mock
}

func (m *BalanceMock) Debit(ctx context.Context, userUID string, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, userUID, amount)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *BalanceMock) Credit(ctx context.Context, userUID string, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, userUID, amount)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// Мок для Ledger
type LedgerMock struct {
	mock.Mock
}

func (m *LedgerMock) Record(ctx context.Context, userUID, txnType, fundUID string,
	amount, balanceBefore, balanceAfter decimal.Decimal) (string, error) {
	args := m.Called(ctx, userUID, txnType, fundUID, amount, balanceBefore, balanceAfter)
	return args.String(0), args.Error(1)
}

// Мок для Notifier
type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) CreateAndPublish(ctx context.Context, user *models.User, ntfType, content string) (string, error) {
	args := m.Called(ctx, user, ntfType, content)
	return args.String(0), args.Error(1)
}

// Мок для UserDirectory
type UserDirMock struct {
	mock.Mock
}

func (m *UserDirMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mocks struct {
	repo     *SubscriptionRepoMock
	funds    *FundCatalogMock
	balance  *BalanceMock
	ledger   *LedgerMock
	notifier *NotifierMock
	users    *UserDirMock
}

func newService(t *testing.T) (*services.SubscriptionService, *mocks) {
	t.Helper()
	m := &mocks{
		repo:     new(SubscriptionRepoMock),
		funds:    new(FundCatalogMock),
		balance:  new(BalanceMock),
		ledger:   new(LedgerMock),
		notifier: new(NotifierMock),
		users:    new(UserDirMock),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewSubscriptionService(m.repo, m.funds, m.balance, m.ledger,
		m.notifier, m.users, metrics.New(prometheus.NewRegistry()), log)
	return svc, m
}

var (
	activeFund = &models.Fund{
		UID:           "FPV_BTG_PACTUAL_RECAUDADORA",
		Name:          "FPV_BTG_PACTUAL_RECAUDADORA",
		Category:      models.CategoryFPV,
		MinimumAmount: decimal.NewFromInt(75000),
		IsActive:      true,
	}
	testUser = &models.User{
		UID:                    "user-1",
		Email:                  "client@example.com",
		Phone:                  "+573001234567",
		NotificationPreference: models.ChannelEmail,
		Role:                   models.RoleClient,
	}
)

func TestSubscriptionService_Subscribe(t *testing.T) {
	// Совпадает с представлением, которое движок строит из JSON-числа.
	amount := decimal.NewFromFloat(100000)

	tests := []struct {
		name       string
		req        models.DummySubscription
		setupMocks func(m *mocks)
		wantErr    error
	}{
		{
			name: "successful subscription",
			req:  models.DummySubscription{FundUID: activeFund.UID, Amount: 100000},
			setupMocks: func(m *mocks) {
				m.funds.On("Read", mock.Anything, activeFund.UID).Return(activeFund, nil)
				m.balance.On("Debit", mock.Anything, "user-1", amount).
					Return(decimal.NewFromInt(500000), decimal.NewFromInt(400000), nil).Once()
				m.repo.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(sub models.Subscription) bool {
					return sub.UserUID == "user-1" &&
						sub.FundUID == activeFund.UID &&
						sub.Amount.Equal(amount) &&
						sub.Status == models.SubscriptionActive
				})).Return("sub_abc", nil).Once()
				m.ledger.On("Record", mock.Anything, "user-1", models.TransactionSubscription,
					activeFund.UID, amount, decimal.NewFromInt(500000), decimal.NewFromInt(400000)).
					Return("txn_abc", nil).Once()
				m.users.On("GetUser", mock.Anything, "user-1").Return(testUser, nil).Once()
				m.notifier.On("CreateAndPublish", mock.Anything, testUser,
					models.NotificationSubscriptionConfirmation, mock.MatchedBy(func(content string) bool {
						return len(content) > 0
					})).Return("ntf_abc", nil).Once()
				m.repo.On("GetSubscription", mock.Anything, mock.Anything).Return(&models.Subscription{
					UID:     "sub_abc",
					UserUID: "user-1",
					FundUID: activeFund.UID,
					Amount:  amount,
					Status:  models.SubscriptionActive,
				}, nil).Once()
			},
		},
		{
			name: "fund not found",
			req:  models.DummySubscription{FundUID: "UNKNOWN", Amount: 100000},
			setupMocks: func(m *mocks) {
				m.funds.On("Read", mock.Anything, "UNKNOWN").Return(nil, models.ErrFundNotFound).Once()
			},
			wantErr: models.ErrFundNotFound,
		},
		{
			name: "fund inactive",
			req:  models.DummySubscription{FundUID: "CLOSED", Amount: 100000},
			setupMocks: func(m *mocks) {
				inactive := *activeFund
				inactive.UID = "CLOSED"
				inactive.IsActive = false
				m.funds.On("Read", mock.Anything, "CLOSED").Return(&inactive, nil).Once()
			},
			wantErr: models.ErrFundInactive,
		},
		{
			name: "amount below fund minimum",
			req:  models.DummySubscription{FundUID: activeFund.UID, Amount: 50000},
			setupMocks: func(m *mocks) {
				m.funds.On("Read", mock.Anything, activeFund.UID).Return(activeFund, nil).Once()
			},
			wantErr: models.ErrBelowMinimumAmount,
		},
		{
			name: "insufficient balance",
			req:  models.DummySubscription{FundUID: activeFund.UID, Amount: 100000},
			setupMocks: func(m *mocks) {
				m.funds.On("Read", mock.Anything, activeFund.UID).Return(activeFund, nil).Once()
				m.balance.On("Debit", mock.Anything, "user-1", amount).
					Return(decimal.Zero, decimal.Zero, models.ErrInsufficientBalance).Once()
			},
			wantErr: models.ErrInsufficientBalance,
		},
		{
			name: "debit is compensated when insert fails",
			req:  models.DummySubscription{FundUID: activeFund.UID, Amount: 100000},
			setupMocks: func(m *mocks) {
				m.funds.On("Read", mock.Anything, activeFund.UID).Return(activeFund, nil).Once()
				m.balance.On("Debit", mock.Anything, "user-1", amount).
					Return(decimal.NewFromInt(500000), decimal.NewFromInt(400000), nil).Once()
				m.repo.On("CreateSubscription", mock.Anything, mock.Anything).
					Return("", errors.New("db error")).Once()
				m.balance.On("Credit", mock.Anything, "user-1", amount).
					Return(decimal.NewFromInt(400000), decimal.NewFromInt(500000), nil).Once()
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMocks(m)

			sub, err := svc.Subscribe(context.Background(), "user-1", tt.req)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, sub)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, models.SubscriptionActive, sub.Status)
				assert.True(t, sub.Amount.Equal(amount))
			}

			m.repo.AssertExpectations(t)
			m.funds.AssertExpectations(t)
			m.balance.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_SubscribeBelowMinimumMessage(t *testing.T) {
	svc, m := newService(t)
	m.funds.On("Read", mock.Anything, activeFund.UID).Return(activeFund, nil).Once()

	_, err := svc.Subscribe(context.Background(), "user-1",
		models.DummySubscription{FundUID: activeFund.UID, Amount: 50000})
	assert.ErrorIs(t, err, models.ErrBelowMinimumAmount)
	// Сообщение называет фонд и обе суммы: минимальную и запрошенную.
	assert.Contains(t, err.Error(), activeFund.Name)
	assert.Contains(t, err.Error(), "COP $75.000")
	assert.Contains(t, err.Error(), "COP $50.000")
	m.balance.AssertNotCalled(t, "Debit")
}

func TestSubscriptionService_Cancel(t *testing.T) {
	owner := models.Principal{UserUID: "user-1", Role: models.RoleClient}
	stranger := models.Principal{UserUID: "user-2", Role: models.RoleClient}
	admin := models.Principal{UserUID: "admin-1", Role: models.RoleAdmin}

	amount := decimal.NewFromInt(100000)
	activeSub := &models.Subscription{
		UID:     "sub_abc",
		UserUID: "user-1",
		FundUID: activeFund.UID,
		Amount:  amount,
		Status:  models.SubscriptionActive,
	}
	cancelledAt := time.Now().UTC()
	cancelledSub := &models.Subscription{
		UID:         "sub_abc",
		UserUID:     "user-1",
		FundUID:     activeFund.UID,
		Amount:      amount,
		Status:      models.SubscriptionCancelled,
		CancelledAt: &cancelledAt,
	}

	setupHappyPath := func(m *mocks) {
		m.repo.On("GetSubscription", mock.Anything, "sub_abc").Return(activeSub, nil).Once()
		m.repo.On("CancelSubscription", mock.Anything, "sub_abc", mock.Anything).
			Return(int64(1), nil).Once()
		m.balance.On("Credit", mock.Anything, "user-1", amount).
			Return(decimal.NewFromInt(400000), decimal.NewFromInt(500000), nil).Once()
		m.funds.On("Read", mock.Anything, activeFund.UID).Return(activeFund, nil).Once()
		m.ledger.On("Record", mock.Anything, "user-1", models.TransactionCancellation,
			activeFund.UID, amount, decimal.NewFromInt(400000), decimal.NewFromInt(500000)).
			Return("txn_abc", nil).Once()
		m.users.On("GetUser", mock.Anything, "user-1").Return(testUser, nil).Once()
		m.notifier.On("CreateAndPublish", mock.Anything, testUser,
			models.NotificationCancellationConfirmation, mock.Anything).
			Return("ntf_abc", nil).Once()
		m.repo.On("GetSubscription", mock.Anything, "sub_abc").Return(cancelledSub, nil).Once()
	}

	tests := []struct {
		name       string
		principal  models.Principal
		setupMocks func(m *mocks)
		wantErr    error
	}{
		{
			name:       "owner cancels own subscription",
			principal:  owner,
			setupMocks: setupHappyPath,
		},
		{
			name:       "admin cancels any subscription",
			principal:  admin,
			setupMocks: setupHappyPath,
		},
		{
			name:      "foreign subscription looks missing",
			principal: stranger,
			setupMocks: func(m *mocks) {
				m.repo.On("GetSubscription", mock.Anything, "sub_abc").Return(activeSub, nil).Once()
			},
			wantErr: models.ErrSubscriptionNotFound,
		},
		{
			name:      "double cancel is rejected",
			principal: owner,
			setupMocks: func(m *mocks) {
				m.repo.On("GetSubscription", mock.Anything, "sub_abc").Return(cancelledSub, nil).Once()
			},
			wantErr: models.ErrSubscriptionCancelled,
		},
		{
			name:      "concurrent cancel loses the conditional update",
			principal: owner,
			setupMocks: func(m *mocks) {
				m.repo.On("GetSubscription", mock.Anything, "sub_abc").Return(activeSub, nil).Once()
				m.repo.On("CancelSubscription", mock.Anything, "sub_abc", mock.Anything).
					Return(int64(0), nil).Once()
			},
			wantErr: models.ErrSubscriptionCancelled,
		},
		{
			name:      "cancellation reverted when credit fails",
			principal: owner,
			setupMocks: func(m *mocks) {
				m.repo.On("GetSubscription", mock.Anything, "sub_abc").Return(activeSub, nil).Once()
				m.repo.On("CancelSubscription", mock.Anything, "sub_abc", mock.Anything).
					Return(int64(1), nil).Once()
				m.balance.On("Credit", mock.Anything, "user-1", amount).
					Return(decimal.Zero, decimal.Zero, models.ErrBalanceConflict).Once()
				m.repo.On("ReactivateSubscription", mock.Anything, "sub_abc").
					Return(int64(1), nil).Once()
			},
			wantErr: models.ErrBalanceConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMocks(m)

			sub, err := svc.Cancel(context.Background(), tt.principal, "sub_abc")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sub)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, models.SubscriptionCancelled, sub.Status)
				assert.NotNil(t, sub.CancelledAt)
			}

			m.repo.AssertExpectations(t)
			m.balance.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_List(t *testing.T) {
	subs := []*models.Subscription{{UID: "sub_abc", UserUID: "user-1"}}

	t.Run("client always sees only own subscriptions", func(t *testing.T) {
		svc, m := newService(t)
		m.repo.On("ListSubscriptions", mock.Anything, "user-1", false).Return(subs, nil).Once()

		// Запрошен чужой UID, но область видимости остаётся собственной.
		got, err := svc.List(context.Background(),
			models.Principal{UserUID: "user-1", Role: models.RoleClient}, "user-2", false)
		assert.NoError(t, err)
		assert.Equal(t, subs, got)
		m.repo.AssertExpectations(t)
	})

	t.Run("admin sees all subscriptions", func(t *testing.T) {
		svc, m := newService(t)
		m.repo.On("ListAllSubscriptions", mock.Anything, true).Return(subs, nil).Once()

		got, err := svc.List(context.Background(),
			models.Principal{UserUID: "admin-1", Role: models.RoleAdmin}, "", true)
		assert.NoError(t, err)
		assert.Equal(t, subs, got)
		m.repo.AssertExpectations(t)
	})

	t.Run("admin narrows to a requested user", func(t *testing.T) {
		svc, m := newService(t)
		m.repo.On("ListSubscriptions", mock.Anything, "user-1", false).Return(subs, nil).Once()

		got, err := svc.List(context.Background(),
			models.Principal{UserUID: "admin-1", Role: models.RoleAdmin}, "user-1", false)
		assert.NoError(t, err)
		assert.Equal(t, subs, got)
		m.repo.AssertExpectations(t)
	})
}
