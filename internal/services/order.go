package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"order-management/internal/dto"
	"order-management/internal/entities"
	"order-management/internal/events"
	"order-management/internal/repositories"
	"order-management/pkg/constants"
	apperrors "order-management/pkg/errors"
	"order-management/pkg/eventbus"
	"order-management/pkg/utils"
)

// maxUIDAttempts - сколько раз пробуем сгенерировать уникальный order_uid,
// прежде чем сдаться.
const maxUIDAttempts = 5

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, data dto.CreateOrderDTO, actorID uint64, role constants.Role) (*dto.OrderDTO, error)
	GetOrders(ctx context.Context, params utils.QueryParams, actorID uint64, role constants.Role) ([]dto.OrderDTO, uint64, error)
	FindOrder(ctx context.Context, id uint64, actorID uint64, role constants.Role) (*dto.OrderDTO, error)
	ChangeStatus(ctx context.Context, id uint64, target constants.OrderStatus, actorID uint64, role constants.Role) (*dto.OrderDTO, error)
	UpdateOrderByCS(ctx context.Context, id uint64, data dto.UpdateOrderByCsDTO, actorID uint64, role constants.Role) (*dto.OrderDTO, error)
	SetCommissionOverride(ctx context.Context, id uint64, data dto.CommissionOverrideDTO, actorID uint64, role constants.Role) (*dto.OrderDTO, error)
}

type OrderService struct {
	orderRepo        repositories.OrderRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
	notificationRepo repositories.NotificationRepositoryInterface
	commissionSvc    CommissionServiceInterface
	txManager        repositories.TxManagerInterface
	bus              *eventbus.Bus
	logger           *zap.Logger
}

func NewOrderService(
	orderRepo repositories.OrderRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	notificationRepo repositories.NotificationRepositoryInterface,
	commissionSvc CommissionServiceInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		commissionSvc:    commissionSvc,
		txManager:        txManager,
		bus:              bus,
		logger:           logger,
	}
}

// canViewOrder - единые правила видимости заказа:
// супер-админ и финансы видят всё, клиентская служба - свои созданные,
// разработчик - назначенные на него.
func canViewOrder(creatorID uint64, developerID *uint64, actorID uint64, role constants.Role) bool {
	switch role {
	case constants.RoleSuperAdmin, constants.RoleFinance:
		return true
	case constants.RoleCustomerService:
		return creatorID == actorID
	case constants.RoleDeveloper:
		return developerID != nil && *developerID == actorID
	default:
		return false
	}
}

const uidSuffixAlphabet = "0123456789ABCDEFGHJKMNPQRSTUVWXYZ"

// generateOrderUID собирает читаемый номер вида PROJ-20250114-7K3M.
func generateOrderUID(now time.Time) string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = uidSuffixAlphabet[rand.Intn(len(uidSuffixAlphabet))]
	}
	return fmt.Sprintf("%s-%s-%s", constants.OrderUIDPrefix, now.Format("20060102"), string(suffix))
}

// validateDeveloper проверяет, что пользователь существует, активен
// и сейчас является разработчиком.
func (s *OrderService) validateDeveloper(ctx context.Context, developerID uint64) (*entities.User, error) {
	developer, err := s.userRepo.FindUserByID(ctx, developerID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrInvalidDeveloper
	}
	if err != nil {
		return nil, err
	}
	if !developer.IsActive || developer.Role != constants.RoleDeveloper {
		return nil, apperrors.ErrInvalidDeveloper
	}
	return developer, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, data dto.CreateOrderDTO, actorID uint64, role constants.Role) (*dto.OrderDTO, error) {
	if role != constants.RoleCustomerService && role != constants.RoleSuperAdmin {
		return nil, apperrors.ErrForbidden
	}

	var developer *entities.User
	if data.DeveloperID != nil {
		var err error
		developer, err = s.validateDeveloper(ctx, *data.DeveloperID)
		if err != nil {
			return nil, err
		}
	}

	order := entities.Order{
		CustomerInfo:     data.CustomerInfo,
		RequirementsDesc: data.RequirementsDesc,
		InitialBudget:    data.InitialBudget,
		FinalPrice:       data.FinalPrice,
		Status:           constants.StatusPendingAssignment,
		CreatorID:        actorID,
		DeveloperID:      data.DeveloperID,
	}

	// Номер заказа генерируется с повтором на случай коллизии: сначала
	// проверяем, что номер свободен, гонку между проверкой и вставкой
	// закрывает uniq-индекс по order_uid (23505).
	var newID uint64
	created := false
	for attempt := 0; attempt < maxUIDAttempts; attempt++ {
		order.OrderUID = generateOrderUID(time.Now())

		exists, err := s.orderRepo.OrderUIDExists(ctx, order.OrderUID)
		if err != nil {
			return nil, err
		}
		if exists {
			s.logger.Warn("Коллизия order_uid, пробуем снова", zap.String("order_uid", order.OrderUID))
			continue
		}

		newID, err = s.orderRepo.CreateOrder(ctx, order)
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, apperrors.ErrBadRequest) {
			s.logger.Warn("Коллизия order_uid, пробуем снова", zap.String("order_uid", order.OrderUID))
			continue
		}
		return nil, err
	}
	if !created {
		return nil, apperrors.ErrBadRequest
	}

	if developer != nil {
		content := fmt.Sprintf("Вам назначен новый заказ [%s], приступайте к работе.", order.OrderUID)
		if err := s.notificationRepo.Create(ctx, developer.ID, content, &newID); err != nil {
			// Уведомление не критично для создания заказа.
			s.logger.Error("Не удалось уведомить разработчика о назначении", zap.Error(err))
		}
	}

	s.logger.Info("Создан заказ",
		zap.Uint64("order_id", newID),
		zap.String("order_uid", order.OrderUID),
		zap.Uint64("creator_id", actorID),
	)
	return s.orderRepo.FindOrder(ctx, newID)
}

func (s *OrderService) GetOrders(ctx context.Context, params utils.QueryParams, actorID uint64, role constants.Role) ([]dto.OrderDTO, uint64, error) {
	return s.orderRepo.GetOrders(ctx, params, actorID, role)
}

func (s *OrderService) FindOrder(ctx context.Context, id uint64, actorID uint64, role constants.Role) (*dto.OrderDTO, error) {
	order, err := s.orderRepo.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	var developerID *uint64
	if order.Developer != nil {
		developerID = &order.Developer.ID
	}
	if !canViewOrder(order.Creator.ID, developerID, actorID, role) {
		return nil, apperrors.ErrForbidden
	}
	return order, nil
}

// ChangeStatus - ядро жизненного цикла заказа. Вся проверка и все побочные
// эффекты перехода выполняются в одной транзакции под блокировкой строки:
// либо заказ переходит в новый статус вместе с комиссиями и уведомлениями,
// либо не меняется ничего.
func (s *OrderService) ChangeStatus(ctx context.Context, id uint64, target constants.OrderStatus, actorID uint64, role constants.Role) (*dto.OrderDTO, error) {
	var fromStatus constants.OrderStatus
	var orderUID string

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		fromStatus = order.Status
		orderUID = order.OrderUID

		// Заблокированный заказ не меняется ни для кого, даже для супер-админа.
		if order.IsLocked {
			return apperrors.ErrOrderLocked
		}
		if err := checkTransition(role, order.Status, target); err != nil {
			return err
		}
		// Назначенный разработчик закреплен за заказом. Если разработчик
		// не назначен, переход доступен любому разработчику.
		if role == constants.RoleDeveloper && order.DeveloperID != nil && *order.DeveloperID != actorID {
			return apperrors.ErrNotOrderDeveloper
		}

		// shipped_at ставится один раз, при первой отправке. Возврат
		// SHIPPED -> IN_DEVELOPMENT и повторная отправка метку не трогают.
		var shippedAt *time.Time
		if target == constants.StatusShipped && order.ShippedAt == nil {
			now := time.Now()
			shippedAt = &now
		}

		if err := s.orderRepo.UpdateStatusInTx(ctx, tx, id, target, shippedAt, constants.IsFinalStatus(target)); err != nil {
			return err
		}

		switch target {
		case constants.StatusPendingSettlement:
			if err := s.notifyFinancesInTx(ctx, tx, order); err != nil {
				return err
			}
		case constants.StatusVerified:
			if _, err := s.commissionSvc.RecalculateInTx(ctx, tx, order); err != nil {
				return err
			}
			// Создатель и разработчик узнают о расчете в любом случае,
			// даже если начислений не получилось.
			recipients := []uint64{order.CreatorID}
			if order.DeveloperID != nil {
				recipients = append(recipients, *order.DeveloperID)
			}
			content := fmt.Sprintf("По заказу [%s] рассчитаны комиссии.", order.OrderUID)
			for _, userID := range recipients {
				if err := s.notificationRepo.CreateInTx(ctx, tx, userID, content, &order.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Статус заказа изменен",
		zap.Uint64("order_id", id),
		zap.String("order_uid", orderUID),
		zap.String("from", string(fromStatus)),
		zap.String("to", string(target)),
		zap.Uint64("actor_id", actorID),
		zap.String("role", string(role)),
	)
	s.bus.Publish(ctx, events.NewOrderStatusChangedEvent(id, orderUID, fromStatus, target, actorID, role))

	return s.orderRepo.FindOrder(ctx, id)
}

// notifyFinancesInTx уведомляет всех активных финансистов о заказе,
// готовом к расчету. Без назначенного разработчика уведомлять не о чем.
func (s *OrderService) notifyFinancesInTx(ctx context.Context, tx pgx.Tx, order *entities.Order) error {
	if order.DeveloperID == nil {
		return nil
	}

	developer, err := s.userRepo.FindUserByID(ctx, *order.DeveloperID)
	if err != nil {
		return err
	}
	developerName := developer.Username
	if developer.FullName != nil {
		developerName = *developer.FullName
	}

	finances, err := s.userRepo.GetActiveUsersByRole(ctx, constants.RoleFinance)
	if err != nil {
		return err
	}

	content := fmt.Sprintf("Заказ [%s] подтвержден разработчиком %s как готовый к расчету, требуется проверка.", order.OrderUID, developerName)
	for _, f := range finances {
		if err := s.notificationRepo.CreateInTx(ctx, tx, f.ID, content, &order.ID); err != nil {
			return err
		}
	}
	return nil
}

// UpdateOrderByCS - правки клиентской службы до блокировки заказа:
// итоговая цена и назначение разработчика.
func (s *OrderService) UpdateOrderByCS(ctx context.Context, id uint64, data dto.UpdateOrderByCsDTO, actorID uint64, role constants.Role) (*dto.OrderDTO, error) {
	if role != constants.RoleCustomerService && role != constants.RoleSuperAdmin {
		return nil, apperrors.ErrForbidden
	}
	if data.FinalPrice == nil && data.DeveloperID == nil {
		return nil, apperrors.NewInvalidInputError("нет полей для обновления")
	}

	var newDeveloper *entities.User
	setDeveloper := data.DeveloperID != nil
	var developerID *uint64
	if setDeveloper && data.DeveloperID.Valid {
		var err error
		newDeveloper, err = s.validateDeveloper(ctx, data.DeveloperID.Uint64)
		if err != nil {
			return nil, err
		}
		developerID = &newDeveloper.ID
	}

	var orderUID string
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		orderUID = order.OrderUID

		if order.IsLocked {
			return apperrors.ErrOrderLocked
		}
		if role == constants.RoleCustomerService && order.CreatorID != actorID {
			return apperrors.ErrForbidden
		}

		if err := s.orderRepo.UpdateDetailsInTx(ctx, tx, id, data.FinalPrice, setDeveloper, developerID); err != nil {
			return err
		}

		// Уведомляем только вновь назначенного разработчика.
		if newDeveloper != nil && (order.DeveloperID == nil || *order.DeveloperID != newDeveloper.ID) {
			content := fmt.Sprintf("Вам назначен новый заказ [%s], приступайте к работе.", order.OrderUID)
			if err := s.notificationRepo.CreateInTx(ctx, tx, newDeveloper.ID, content, &order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Заказ обновлен клиентской службой",
		zap.Uint64("order_id", id),
		zap.String("order_uid", orderUID),
		zap.Uint64("actor_id", actorID),
	)
	return s.orderRepo.FindOrder(ctx, id)
}

// SetCommissionOverride устанавливает особые ставки комиссии для заказа.
// Частичное обновление: переданные поля перекрывают существующие,
// отсутствующие остаются как были.
func (s *OrderService) SetCommissionOverride(ctx context.Context, id uint64, data dto.CommissionOverrideDTO, actorID uint64, role constants.Role) (*dto.OrderDTO, error) {
	if role != constants.RoleSuperAdmin {
		return nil, apperrors.ErrForbidden
	}
	if data.CSRate == nil && data.TechRate == nil {
		return nil, apperrors.NewInvalidInputError("нужно указать хотя бы одну ставку")
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if order.IsLocked {
			return apperrors.ErrOrderLocked
		}

		override := order.RateOverride
		if override == nil {
			override = &entities.CommissionRateOverride{}
		}
		if data.CSRate != nil {
			override.CSRate = data.CSRate
		}
		if data.TechRate != nil {
			override.TechRate = data.TechRate
		}

		return s.orderRepo.UpdateRateOverrideInTx(ctx, tx, id, override)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Обновлены особые ставки комиссии", zap.Uint64("order_id", id), zap.Uint64("actor_id", actorID))
	return s.orderRepo.FindOrder(ctx, id)
}
