package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-management/pkg/constants"
	apperrors "order-management/pkg/errors"
)

// allowedMoves - эталонный список всех разрешенных ходов.
// Любая пара (роль, from, to) вне этого списка должна отклоняться.
var allowedMoves = []struct {
	role constants.Role
	from constants.OrderStatus
	to   constants.OrderStatus
}{
	{constants.RoleCustomerService, constants.StatusPendingAssignment, constants.StatusPendingPayment},
	{constants.RoleCustomerService, constants.StatusPendingAssignment, constants.StatusCancelled},
	{constants.RoleCustomerService, constants.StatusPendingPayment, constants.StatusInDevelopment},
	{constants.RoleCustomerService, constants.StatusPendingPayment, constants.StatusCancelled},
	{constants.RoleCustomerService, constants.StatusInDevelopment, constants.StatusShipped},
	{constants.RoleCustomerService, constants.StatusInDevelopment, constants.StatusCancelled},
	{constants.RoleCustomerService, constants.StatusShipped, constants.StatusReceived},
	{constants.RoleCustomerService, constants.StatusShipped, constants.StatusInDevelopment},
	{constants.RoleCustomerService, constants.StatusShipped, constants.StatusCancelled},
	{constants.RoleCustomerService, constants.StatusReceived, constants.StatusInDevelopment},
	{constants.RoleCustomerService, constants.StatusReceived, constants.StatusCancelled},

	{constants.RoleDeveloper, constants.StatusReceived, constants.StatusPendingSettlement},

	{constants.RoleFinance, constants.StatusPendingSettlement, constants.StatusVerified},
	{constants.RoleFinance, constants.StatusVerified, constants.StatusSettled},

	{constants.RoleSuperAdmin, constants.StatusPendingAssignment, constants.StatusCancelled},
	{constants.RoleSuperAdmin, constants.StatusPendingPayment, constants.StatusCancelled},
	{constants.RoleSuperAdmin, constants.StatusInDevelopment, constants.StatusCancelled},
	{constants.RoleSuperAdmin, constants.StatusShipped, constants.StatusCancelled},
	{constants.RoleSuperAdmin, constants.StatusReceived, constants.StatusCancelled},
	{constants.RoleSuperAdmin, constants.StatusPendingSettlement, constants.StatusCancelled},
}

func isAllowedMove(role constants.Role, from, to constants.OrderStatus) bool {
	for _, m := range allowedMoves {
		if m.role == role && m.from == from && m.to == to {
			return true
		}
	}
	return false
}

// Полный перебор: каждая роль, каждый исходный и целевой статус.
func TestCheckTransition_Exhaustive(t *testing.T) {
	for _, role := range constants.AllRoles {
		for _, from := range constants.AllStatuses {
			for _, to := range constants.AllStatuses {
				name := fmt.Sprintf("%s/%s->%s", role, from, to)
				t.Run(name, func(t *testing.T) {
					err := checkTransition(role, from, to)
					if isAllowedMove(role, from, to) {
						assert.NoError(t, err, "ход должен быть разрешен")
					} else {
						require.Error(t, err, "ход должен быть запрещен")
						assert.True(t,
							errors.Is(err, apperrors.ErrInvalidTransition) || errors.Is(err, apperrors.ErrUnauthorizedRole),
							"ожидалась доменная ошибка перехода, получено: %v", err)
					}
				})
			}
		}
	}
}

func TestCheckTransition_UnknownRole(t *testing.T) {
	err := checkTransition("WAREHOUSE", constants.StatusPendingAssignment, constants.StatusPendingPayment)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorizedRole, "неизвестная роль не должна менять статусы")
}

// У финансов нет ходов из ранних статусов: это именно недопустимый переход,
// а не отсутствие прав вообще.
func TestCheckTransition_RoleWithoutMoveFromStatus(t *testing.T) {
	err := checkTransition(constants.RoleFinance, constants.StatusInDevelopment, constants.StatusVerified)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

// Из VERIFIED возврат в разработку запрещен всем ролям.
func TestCheckTransition_NoBackwardFromVerified(t *testing.T) {
	for _, role := range constants.AllRoles {
		err := checkTransition(role, constants.StatusVerified, constants.StatusInDevelopment)
		assert.Error(t, err, "роль %s не должна возвращать проверенный заказ в разработку", role)
	}
}

// Финальные статусы - стоки: из них нет ни одного хода.
func TestCheckTransition_FinalStatusesAreSinks(t *testing.T) {
	for _, final := range constants.FinalStatuses {
		for _, role := range constants.AllRoles {
			for _, to := range constants.AllStatuses {
				err := checkTransition(role, final, to)
				assert.Error(t, err, "из %s не должно быть хода в %s для роли %s", final, to, role)
			}
		}
	}
}

func TestCanViewOrder(t *testing.T) {
	creatorID := uint64(1)
	developerID := uint64(2)

	testCases := []struct {
		name        string
		actorID     uint64
		role        constants.Role
		developerID *uint64
		want        bool
	}{
		{"супер-админ видит любой заказ", 99, constants.RoleSuperAdmin, &developerID, true},
		{"финансы видят любой заказ", 99, constants.RoleFinance, &developerID, true},
		{"клиентская служба видит свой заказ", creatorID, constants.RoleCustomerService, &developerID, true},
		{"клиентская служба не видит чужой заказ", 99, constants.RoleCustomerService, &developerID, false},
		{"разработчик видит назначенный заказ", developerID, constants.RoleDeveloper, &developerID, true},
		{"разработчик не видит чужой заказ", 99, constants.RoleDeveloper, &developerID, false},
		{"разработчик не видит заказ без назначения", developerID, constants.RoleDeveloper, nil, false},
		{"неизвестная роль не видит ничего", creatorID, "WAREHOUSE", &developerID, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := canViewOrder(creatorID, tc.developerID, tc.actorID, tc.role)
			assert.Equal(t, tc.want, got)
		})
	}
}
