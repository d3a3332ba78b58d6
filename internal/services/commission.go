package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"order-management/internal/dto"
	"order-management/internal/entities"
	"order-management/internal/repositories"
	"order-management/pkg/constants"
	apperrors "order-management/pkg/errors"
)

type CommissionServiceInterface interface {
	// Calculate - чистый расчет комиссий по заказу. Детерминированный:
	// одинаковые входные данные всегда дают одинаковый набор комиссий.
	Calculate(order *entities.Order, creator *entities.User, developer *entities.User) []entities.Commission
	// RecalculateInTx пересчитывает и перезаписывает комиссии заказа
	// в рамках уже открытой транзакции.
	RecalculateInTx(ctx context.Context, tx pgx.Tx, order *entities.Order) ([]entities.Commission, error)
	RecalculateForOrder(ctx context.Context, orderID uint64, actorID uint64, role constants.Role) ([]dto.CommissionDTO, error)
	GetForOrder(ctx context.Context, orderID uint64, actorID uint64, role constants.Role) ([]dto.CommissionDTO, error)
}

type CommissionService struct {
	commissionRepo repositories.CommissionRepositoryInterface
	orderRepo      repositories.OrderRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	txManager      repositories.TxManagerInterface
	logger         *zap.Logger
}

func NewCommissionService(
	commissionRepo repositories.CommissionRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) CommissionServiceInterface {
	return &CommissionService{
		commissionRepo: commissionRepo,
		orderRepo:      orderRepo,
		userRepo:       userRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

var hundred = decimal.NewFromInt(100)

// Calculate считает комиссии по итоговой цене заказа.
// Правила:
//   - нет итоговой цены или она не положительна - комиссий нет;
//   - ставка берется из особых ставок заказа, иначе из дефолта пользователя,
//     иначе участник пропускается; явная нулевая ставка дает нулевую комиссию;
//   - создатель получает комиссию, только если он сейчас клиентская служба,
//     разработчик - только если он сейчас разработчик;
//   - роль получателя фиксируется в записи на момент расчета.
func (s *CommissionService) Calculate(order *entities.Order, creator *entities.User, developer *entities.User) []entities.Commission {
	commissions := make([]entities.Commission, 0, 2)
	if order.FinalPrice == nil || !order.FinalPrice.IsPositive() {
		return commissions
	}

	resolveRate := func(override *decimal.Decimal, userDefault *decimal.Decimal) *decimal.Decimal {
		if override != nil {
			return override
		}
		return userDefault
	}

	var csOverride, techOverride *decimal.Decimal
	if order.RateOverride != nil {
		csOverride = order.RateOverride.CSRate
		techOverride = order.RateOverride.TechRate
	}

	if creator != nil && creator.Role == constants.RoleCustomerService {
		if rate := resolveRate(csOverride, creator.DefaultCommissionRate); rate != nil {
			commissions = append(commissions, entities.Commission{
				OrderID:    order.ID,
				UserID:     creator.ID,
				Amount:     order.FinalPrice.Mul(*rate).Div(hundred),
				RoleAtTime: constants.RoleCustomerService,
			})
		}
	}

	if developer != nil && developer.Role == constants.RoleDeveloper {
		if rate := resolveRate(techOverride, developer.DefaultCommissionRate); rate != nil {
			commissions = append(commissions, entities.Commission{
				OrderID:    order.ID,
				UserID:     developer.ID,
				Amount:     order.FinalPrice.Mul(*rate).Div(hundred),
				RoleAtTime: constants.RoleDeveloper,
			})
		}
	}

	return commissions
}

func (s *CommissionService) RecalculateInTx(ctx context.Context, tx pgx.Tx, order *entities.Order) ([]entities.Commission, error) {
	// Без итоговой цены пересчет пропускается целиком: существующие
	// записи (если есть) не трогаем.
	if order.FinalPrice == nil || !order.FinalPrice.IsPositive() {
		s.logger.Warn("Пересчет комиссий пропущен: нет итоговой цены",
			zap.Uint64("order_id", order.ID),
			zap.String("order_uid", order.OrderUID),
		)
		return nil, nil
	}

	creator, err := s.userRepo.FindUserByID(ctx, order.CreatorID)
	if err != nil {
		return nil, err
	}

	var developer *entities.User
	if order.DeveloperID != nil {
		developer, err = s.userRepo.FindUserByID(ctx, *order.DeveloperID)
		if err != nil {
			return nil, err
		}
	}

	commissions := s.Calculate(order, creator, developer)
	if err := s.commissionRepo.ReplaceForOrderInTx(ctx, tx, order.ID, commissions); err != nil {
		return nil, err
	}

	s.logger.Info("Комиссии заказа пересчитаны",
		zap.Uint64("order_id", order.ID),
		zap.String("order_uid", order.OrderUID),
		zap.Int("count", len(commissions)),
	)
	return commissions, nil
}

// RecalculateForOrder - ручной пересчет для сверки. Доступен финансам
// и супер-админу, заблокированные заказы не трогает.
func (s *CommissionService) RecalculateForOrder(ctx context.Context, orderID uint64, actorID uint64, role constants.Role) ([]dto.CommissionDTO, error) {
	if role != constants.RoleFinance && role != constants.RoleSuperAdmin {
		return nil, apperrors.ErrForbidden
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderForUpdateInTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.IsLocked {
			return apperrors.ErrOrderLocked
		}

		_, err = s.RecalculateInTx(ctx, tx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Ручной пересчет комиссий",
		zap.Uint64("order_id", orderID),
		zap.Uint64("actor_id", actorID),
	)
	return s.listDTOs(ctx, orderID)
}

func (s *CommissionService) GetForOrder(ctx context.Context, orderID uint64, actorID uint64, role constants.Role) ([]dto.CommissionDTO, error) {
	order, err := s.orderRepo.FindOrderEntity(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canViewOrder(order.CreatorID, order.DeveloperID, actorID, role) {
		return nil, apperrors.ErrForbidden
	}
	return s.listDTOs(ctx, orderID)
}

func (s *CommissionService) listDTOs(ctx context.Context, orderID uint64) ([]dto.CommissionDTO, error) {
	commissions, err := s.commissionRepo.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CommissionDTO, 0, len(commissions))
	for _, c := range commissions {
		result = append(result, dto.CommissionDTO{
			ID:         c.ID,
			OrderID:    c.OrderID,
			UserID:     c.UserID,
			Amount:     c.Amount,
			RoleAtTime: string(c.RoleAtTime),
			CreatedAt:  c.CreatedAt.Local().Format(dtoTimeFormat),
		})
	}
	return result, nil
}

const dtoTimeFormat = "2006-01-02 15:04:05"
