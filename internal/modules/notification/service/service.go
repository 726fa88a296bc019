package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/internal/modules/notification/repository"
)

// AdminChannel is the redis pub/sub channel every connected admin
// websocket listens on. Notifications are broadcast, not per user.
const AdminChannel = "admin_notifications"

type NotificationService interface {
	NotifySubmission(ctx context.Context, request *entity.LetterRequest) error
	GetNotifications(ctx context.Context, limit, offset int) ([]*entity.Notification, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context) error
	UnreadCount(ctx context.Context) (int64, error)
}

type notificationService struct {
	repo        repository.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

func (s *notificationService) NotifySubmission(ctx context.Context, request *entity.LetterRequest) error {
	typeName := request.TypeCode
	if request.LetterType.Name != "" {
		typeName = request.LetterType.Name
	}

	notification := &entity.Notification{
		Title:     "Pengajuan surat baru",
		Body:      fmt.Sprintf("%s mengajukan %s", request.FullName, typeName),
		RequestID: &request.ID,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	// Best effort broadcast. Redis being down must not fail the submission.
	if s.redisClient != nil {
		payload, err := json.Marshal(notification)
		if err == nil {
			s.redisClient.Publish(ctx, AdminChannel, payload)
		}
	}

	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, limit, offset int) ([]*entity.Notification, error) {
	return s.repo.FindAll(ctx, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context) error {
	return s.repo.MarkAllAsRead(ctx)
}

func (s *notificationService) UnreadCount(ctx context.Context) (int64, error) {
	return s.repo.CountUnread(ctx)
}
