package services

import (
	"context"

	"go.uber.org/zap"

	"order-management/internal/dto"
	"order-management/internal/entities"
	"order-management/internal/repositories"
	"order-management/pkg/constants"
	apperrors "order-management/pkg/errors"
)

type WorkLogServiceInterface interface {
	AddWorkLog(ctx context.Context, orderID uint64, data dto.CreateWorkLogDTO, actorID uint64, role constants.Role) (*dto.WorkLogDTO, error)
	GetWorkLogs(ctx context.Context, orderID uint64, actorID uint64, role constants.Role) ([]dto.WorkLogDTO, error)
}

type WorkLogService struct {
	workLogRepo repositories.WorkLogRepositoryInterface
	orderRepo   repositories.OrderRepositoryInterface
	logger      *zap.Logger
}

func NewWorkLogService(
	workLogRepo repositories.WorkLogRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	logger *zap.Logger,
) WorkLogServiceInterface {
	return &WorkLogService{workLogRepo: workLogRepo, orderRepo: orderRepo, logger: logger}
}

// AddWorkLog - запись в журнал работ. Писать может только назначенный
// разработчик и только пока заказ не заблокирован.
func (s *WorkLogService) AddWorkLog(ctx context.Context, orderID uint64, data dto.CreateWorkLogDTO, actorID uint64, role constants.Role) (*dto.WorkLogDTO, error) {
	if role != constants.RoleDeveloper {
		return nil, apperrors.ErrForbidden
	}

	order, err := s.orderRepo.FindOrderEntity(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsLocked {
		return nil, apperrors.ErrOrderLocked
	}
	if order.DeveloperID == nil || *order.DeveloperID != actorID {
		return nil, apperrors.ErrNotOrderDeveloper
	}

	log := entities.WorkLog{
		OrderID:     orderID,
		DeveloperID: actorID,
		LogContent:  data.LogContent,
	}
	created, err := s.workLogRepo.CreateWorkLog(ctx, log)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Добавлена запись в журнал работ",
		zap.Uint64("order_id", orderID),
		zap.Uint64("developer_id", actorID),
	)

	result := toWorkLogDTO(*created)
	return &result, nil
}

func (s *WorkLogService) GetWorkLogs(ctx context.Context, orderID uint64, actorID uint64, role constants.Role) ([]dto.WorkLogDTO, error) {
	order, err := s.orderRepo.FindOrderEntity(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canViewOrder(order.CreatorID, order.DeveloperID, actorID, role) {
		return nil, apperrors.ErrForbidden
	}

	logs, err := s.workLogRepo.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.WorkLogDTO, 0, len(logs))
	for _, l := range logs {
		result = append(result, toWorkLogDTO(l))
	}
	return result, nil
}

func toWorkLogDTO(l entities.WorkLog) dto.WorkLogDTO {
	return dto.WorkLogDTO{
		ID:          l.ID,
		OrderID:     l.OrderID,
		DeveloperID: l.DeveloperID,
		LogContent:  l.LogContent,
		CreatedAt:   l.CreatedAt.Local().Format(dtoTimeFormat),
	}
}
