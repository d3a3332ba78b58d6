package services

import (
	"order-management/pkg/constants"
	apperrors "order-management/pkg/errors"
)

// validTransitions - таблица переходов жизненного цикла заказа:
// роль -> текущий статус -> разрешенные целевые статусы.
// Отсутствие роли в таблице означает полный запрет на смену статусов,
// отсутствие пары (роль, статус) - запрет конкретного хода.
var validTransitions = map[constants.Role]map[constants.OrderStatus][]constants.OrderStatus{
	constants.RoleCustomerService: {
		constants.StatusPendingAssignment: {constants.StatusPendingPayment, constants.StatusCancelled},
		constants.StatusPendingPayment:    {constants.StatusInDevelopment, constants.StatusCancelled},
		constants.StatusInDevelopment:     {constants.StatusShipped, constants.StatusCancelled},
		constants.StatusShipped:           {constants.StatusReceived, constants.StatusInDevelopment, constants.StatusCancelled},
		constants.StatusReceived:          {constants.StatusInDevelopment, constants.StatusCancelled},
	},
	constants.RoleDeveloper: {
		constants.StatusReceived: {constants.StatusPendingSettlement},
	},
	constants.RoleFinance: {
		// Проверка финансами запускает расчет комиссий.
		constants.StatusPendingSettlement: {constants.StatusVerified},
		// Подтверждение расчета блокирует заказ.
		constants.StatusVerified: {constants.StatusSettled},
	},
	constants.RoleSuperAdmin: {
		// Супер-админ может отменить любой незаблокированный заказ.
		constants.StatusPendingAssignment: {constants.StatusCancelled},
		constants.StatusPendingPayment:    {constants.StatusCancelled},
		constants.StatusInDevelopment:     {constants.StatusCancelled},
		constants.StatusShipped:           {constants.StatusCancelled},
		constants.StatusReceived:          {constants.StatusCancelled},
		constants.StatusPendingSettlement: {constants.StatusCancelled},
	},
}

// checkTransition валидирует ход по таблице переходов.
func checkTransition(role constants.Role, from, to constants.OrderStatus) error {
	roleTransitions, ok := validTransitions[role]
	if !ok {
		return apperrors.ErrUnauthorizedRole
	}

	allowed, ok := roleTransitions[from]
	if !ok {
		return apperrors.ErrInvalidTransition
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return apperrors.ErrInvalidTransition
}
