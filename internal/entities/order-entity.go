package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"order-management/pkg/constants"
	"order-management/pkg/types"
)

// CommissionRateOverride - особые проценты комиссии для конкретного заказа.
// Хранится в колонке commission_rate_override (jsonb), поля перекрывают
// дефолтные ставки пользователей. Частичное обновление мержится, не заменяется.
type CommissionRateOverride struct {
	CSRate   *decimal.Decimal `json:"cs_rate,omitempty"`
	TechRate *decimal.Decimal `json:"tech_rate,omitempty"`
}

type Order struct {
	ID               uint64                  `json:"id" db:"id"`
	OrderUID         string                  `json:"order_uid" db:"order_uid"`
	CustomerInfo     string                  `json:"customer_info" db:"customer_info"`
	RequirementsDesc string                  `json:"requirements_desc" db:"requirements_desc"`
	InitialBudget    *decimal.Decimal        `json:"initial_budget,omitempty" db:"initial_budget"`
	FinalPrice       *decimal.Decimal        `json:"final_price,omitempty" db:"final_price"`
	Status           constants.OrderStatus   `json:"status" db:"status"`
	CreatorID        uint64                  `json:"creator_id" db:"creator_id"`
	DeveloperID      *uint64                 `json:"developer_id,omitempty" db:"developer_id"`
	RateOverride     *CommissionRateOverride `json:"commission_rate_override,omitempty" db:"commission_rate_override"`
	IsLocked         bool                    `json:"is_locked" db:"is_locked"`
	ShippedAt        *time.Time              `json:"shipped_at,omitempty" db:"shipped_at"`

	types.BaseEntity
}
