package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"order-management/pkg/constants"
)

type Commission struct {
	ID      uint64          `json:"id" db:"id"`
	OrderID uint64          `json:"order_id" db:"order_id"`
	UserID  uint64          `json:"user_id" db:"user_id"`
	Amount  decimal.Decimal `json:"amount" db:"amount"`

	// Снимок роли получателя на момент расчета: будущая смена роли
	// пользователя не должна портить историю выплат.
	RoleAtTime constants.Role `json:"role_at_time" db:"role_at_time"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
