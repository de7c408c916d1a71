package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
	services "github.com/magabrotheeeer/fund-subscriptions/internal/services/notification"
)

// Мок для NotificationRepository
type NotificationRepoMock struct {
	mock.Mock
}

func (m *NotificationRepoMock) CreateNotification(ctx context.Context, ntf models.Notification) (string, error) {
	args := m.Called(ctx, ntf)
	return args.String(0), args.Error(1)
}

func (m *NotificationRepoMock) GetNotification(ctx context.Context, ntfUID string) (*models.Notification, error) {
	args := m.Called(ctx, ntfUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *NotificationRepoMock) ListNotifications(ctx context.Context, userUID string) ([]*models.Notification, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *NotificationRepoMock) ListAllNotifications(ctx context.Context) ([]*models.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *NotificationRepoMock) MarkNotificationSent(ctx context.Context, ntfUID string, at time.Time) (int64, error) {
	args := m.Called(ctx, ntfUID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepoMock) MarkNotificationFailed(ctx context.Context, ntfUID string) (int64, error) {
	args := m.Called(ctx, ntfUID)
	return args.Get(0).(int64), args.Error(1)
}

// Мок для Publisher
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newNotificationService(repo *NotificationRepoMock, pub *PublisherMock) *services.NotificationService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return services.NewNotificationService(repo, pub, log)
}

var smsUser = &models.User{
	UID:                    "user-1",
	Email:                  "client@example.com",
	Phone:                  "+573001234567",
	NotificationPreference: models.ChannelSMS,
}

func TestNotificationService_CreateAndPublish(t *testing.T) {
	t.Run("publishes on the channel the user prefers", func(t *testing.T) {
		repo := new(NotificationRepoMock)
		pub := new(PublisherMock)
		repo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(ntf models.Notification) bool {
			return strings.HasPrefix(ntf.UID, "ntf_") &&
				ntf.UserUID == "user-1" &&
				ntf.Channel == models.ChannelSMS &&
				ntf.Status == models.NotificationPending
		})).Return("ntf_abc", nil).Once()
		pub.On("Publish", models.ChannelSMS, mock.MatchedBy(func(msg models.NotificationMessage) bool {
			return msg.NotificationUID == "ntf_abc" &&
				msg.Phone == smsUser.Phone &&
				msg.Channel == models.ChannelSMS
		})).Return(nil).Once()

		uid, err := newNotificationService(repo, pub).CreateAndPublish(context.Background(),
			smsUser, models.NotificationSubscriptionConfirmation, "Su suscripcion fue creada.")
		assert.NoError(t, err)
		assert.Equal(t, "ntf_abc", uid)
		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("notification stays pending when publish fails", func(t *testing.T) {
		repo := new(NotificationRepoMock)
		pub := new(PublisherMock)
		repo.On("CreateNotification", mock.Anything, mock.Anything).Return("ntf_abc", nil).Once()
		pub.On("Publish", models.ChannelSMS, mock.Anything).
			Return(errors.New("broker down")).Once()

		uid, err := newNotificationService(repo, pub).CreateAndPublish(context.Background(),
			smsUser, models.NotificationSubscriptionConfirmation, "Su suscripcion fue creada.")
		assert.Error(t, err)
		assert.Equal(t, "ntf_abc", uid)
		repo.AssertExpectations(t)
	})
}

func TestNotificationService_Scope(t *testing.T) {
	ntf := &models.Notification{UID: "ntf_abc", UserUID: "user-1"}

	t.Run("client reads only own notifications", func(t *testing.T) {
		repo := new(NotificationRepoMock)
		repo.On("GetNotification", mock.Anything, "ntf_abc").Return(ntf, nil).Twice()
		svc := newNotificationService(repo, new(PublisherMock))

		got, err := svc.Read(context.Background(),
			models.Principal{UserUID: "user-1", Role: models.RoleClient}, "ntf_abc")
		assert.NoError(t, err)
		assert.Equal(t, ntf, got)

		got, err = svc.Read(context.Background(),
			models.Principal{UserUID: "user-2", Role: models.RoleClient}, "ntf_abc")
		assert.ErrorIs(t, err, models.ErrNotificationNotFound)
		assert.Nil(t, got)
	})

	t.Run("admin lists all notifications", func(t *testing.T) {
		repo := new(NotificationRepoMock)
		repo.On("ListAllNotifications", mock.Anything).
			Return([]*models.Notification{ntf}, nil).Once()

		got, err := newNotificationService(repo, new(PublisherMock)).List(context.Background(),
			models.Principal{UserUID: "admin-1", Role: models.RoleAdmin}, "")
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		repo.AssertExpectations(t)
	})
}

func TestNotificationService_MarkStatus(t *testing.T) {
	t.Run("mark sent", func(t *testing.T) {
		repo := new(NotificationRepoMock)
		repo.On("MarkNotificationSent", mock.Anything, "ntf_abc", mock.Anything).
			Return(int64(1), nil).Once()

		err := newNotificationService(repo, new(PublisherMock)).MarkSent(context.Background(), "ntf_abc")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("mark sent for unknown notification", func(t *testing.T) {
		repo := new(NotificationRepoMock)
		repo.On("MarkNotificationSent", mock.Anything, "missing", mock.Anything).
			Return(int64(0), nil).Once()

		err := newNotificationService(repo, new(PublisherMock)).MarkSent(context.Background(), "missing")
		assert.ErrorIs(t, err, models.ErrNotificationNotFound)
	})

	t.Run("mark failed", func(t *testing.T) {
		repo := new(NotificationRepoMock)
		repo.On("MarkNotificationFailed", mock.Anything, "ntf_abc").
			Return(int64(1), nil).Once()

		err := newNotificationService(repo, new(PublisherMock)).MarkFailed(context.Background(), "ntf_abc")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
