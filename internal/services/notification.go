package services

import (
	"context"

	"go.uber.org/zap"

	"order-management/internal/dto"
	"order-management/internal/repositories"
)

type NotificationServiceInterface interface {
	GetMyNotifications(ctx context.Context, userID uint64, limit, offset uint64) ([]dto.NotificationDTO, uint64, error)
	MarkAsRead(ctx context.Context, id uint64, userID uint64) error
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
	logger           *zap.Logger
}

func NewNotificationService(notificationRepo repositories.NotificationRepositoryInterface, logger *zap.Logger) NotificationServiceInterface {
	return &NotificationService{notificationRepo: notificationRepo, logger: logger}
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uint64, limit, offset uint64) ([]dto.NotificationDTO, uint64, error) {
	notifications, total, err := s.notificationRepo.GetForUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, dto.NotificationDTO{
			ID:             n.ID,
			Content:        n.Content,
			IsRead:         n.IsRead,
			RelatedOrderID: n.RelatedOrderID,
			CreatedAt:      n.CreatedAt.Local().Format(dtoTimeFormat),
		})
	}
	return result, total, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uint64, userID uint64) error {
	return s.notificationRepo.MarkAsRead(ctx, id, userID)
}
