// Package services содержит логику бизнес-уровня уведомлений:
// создание записей, публикацию в очередь доставки и отметки статуса.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
	"github.com/magabrotheeeer/fund-subscriptions/internal/services/access"
)

// NotificationRepository описывает контракт для работы с уведомлениями в базе данных.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, ntf models.Notification) (string, error)
	GetNotification(ctx context.Context, ntfUID string) (*models.Notification, error)
	ListNotifications(ctx context.Context, userUID string) ([]*models.Notification, error)
	ListAllNotifications(ctx context.Context) ([]*models.Notification, error)
	MarkNotificationSent(ctx context.Context, ntfUID string, at time.Time) (int64, error)
	MarkNotificationFailed(ctx context.Context, ntfUID string) (int64, error)
}

// Publisher описывает контракт публикации сообщения в очередь доставки.
// Ключ маршрутизации совпадает с каналом уведомления.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// NotificationService создает уведомления и публикует их в очередь доставки.
type NotificationService struct {
	repo      NotificationRepository
	publisher Publisher
	log       *slog.Logger
}

// NewNotificationService создает новый экземпляр NotificationService.
func NewNotificationService(repo NotificationRepository, publisher Publisher, log *slog.Logger) *NotificationService {
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// CreateAndPublish сохраняет уведомление в статусе pending и публикует
// сообщение для воркера доставки. Канал берётся из предпочтения получателя.
func (s *NotificationService) CreateAndPublish(ctx context.Context, user *models.User, ntfType, content string) (string, error) {
	ntf := models.Notification{
		UID:     fmt.Sprintf("ntf_%s", uuid.New().String()),
		UserUID: user.UID,
		Type:    ntfType,
		Channel: user.NotificationPreference,
		Content: content,
		Status:  models.NotificationPending,
	}
	uid, err := s.repo.CreateNotification(ctx, ntf)
	if err != nil {
		return "", err
	}

	msg := models.NotificationMessage{
		NotificationUID: uid,
		Email:           user.Email,
		Phone:           user.Phone,
		Channel:         ntf.Channel,
		Content:         content,
	}
	if err := s.publisher.Publish(ntf.Channel, msg); err != nil {
		// Уведомление остаётся в pending, доставка не состоится до
		// повторной публикации. Сама операция подписки уже завершена.
		s.log.Warn("failed to publish notification",
			slog.String("uid", uid), slog.Any("err", err))
		return uid, err
	}
	s.log.Info("published notification",
		slog.String("uid", uid),
		slog.String("channel", ntf.Channel))
	return uid, nil
}

// List возвращает уведомления в области видимости вызывающего
// от новых к старым.
func (s *NotificationService) List(ctx context.Context, p models.Principal, requestedUID string) ([]*models.Notification, error) {
	scope := access.Resolve(p, requestedUID)
	if scope.All {
		return s.repo.ListAllNotifications(ctx)
	}
	return s.repo.ListNotifications(ctx, scope.UserUID)
}

// Read возвращает уведомление по UID. Клиент может читать только
// собственные уведомления.
func (s *NotificationService) Read(ctx context.Context, p models.Principal, ntfUID string) (*models.Notification, error) {
	ntf, err := s.repo.GetNotification(ctx, ntfUID)
	if err != nil {
		return nil, err
	}
	if !access.CanView(p, ntf.UserUID) {
		return nil, models.ErrNotificationNotFound
	}
	return ntf, nil
}

// MarkSent переводит уведомление в статус sent.
func (s *NotificationService) MarkSent(ctx context.Context, ntfUID string) error {
	count, err := s.repo.MarkNotificationSent(ctx, ntfUID, time.Now().UTC())
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrNotificationNotFound
	}
	return nil
}

// MarkFailed переводит уведомление в статус failed.
func (s *NotificationService) MarkFailed(ctx context.Context, ntfUID string) error {
	count, err := s.repo.MarkNotificationFailed(ctx, ntfUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrNotificationNotFound
	}
	return nil
}
