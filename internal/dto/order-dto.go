package dto

import (
	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
)

type ShortUserDTO struct {
	ID       uint64  `json:"id"`
	Username string  `json:"username"`
	FullName *string `json:"full_name,omitempty"`
}

// CreateOrderDTO - данные, которые клиентская служба передает при создании заказа.
type CreateOrderDTO struct {
	CustomerInfo     string           `json:"customer_info" validate:"required,min=1,max=500"`
	RequirementsDesc string           `json:"requirements_desc" validate:"required,min=1"`
	InitialBudget    *decimal.Decimal `json:"initial_budget,omitempty" validate:"omitempty,gte=0"`
	FinalPrice       *decimal.Decimal `json:"final_price,omitempty" validate:"omitempty,gte=0"`
	DeveloperID      *uint64          `json:"developer_id,omitempty"`
}

// UpdateOrderByCsDTO - правки клиентской службы до блокировки заказа.
// DeveloperID трёхзначный: поле отсутствует - не трогаем, null - снимаем
// назначение, число - переназначаем.
type UpdateOrderByCsDTO struct {
	FinalPrice  *decimal.Decimal `json:"final_price,omitempty" validate:"omitempty,gte=0"`
	DeveloperID *null.Uint64     `json:"developer_id,omitempty"`
}

// CommissionOverrideDTO - частичное обновление особых ставок (только супер-админ).
// Переданные поля мержатся в существующий override, отсутствующие не трогаются.
type CommissionOverrideDTO struct {
	CSRate   *decimal.Decimal `json:"cs_rate,omitempty" validate:"omitempty,commission_rate"`
	TechRate *decimal.Decimal `json:"tech_rate,omitempty" validate:"omitempty,commission_rate"`
}

// ChangeOrderStatusDTO - запрос на перевод заказа в новый статус.
type ChangeOrderStatusDTO struct {
	Status string `json:"status" validate:"required,order_status"`
}

// OrderDTO - стандартный формат заказа в ответах API.
type OrderDTO struct {
	ID               uint64           `json:"id"`
	OrderUID         string           `json:"order_uid"`
	CustomerInfo     string           `json:"customer_info"`
	RequirementsDesc string           `json:"requirements_desc"`
	InitialBudget    *decimal.Decimal `json:"initial_budget,omitempty"`
	FinalPrice       *decimal.Decimal `json:"final_price,omitempty"`
	Status           string           `json:"status"`
	IsLocked         bool             `json:"is_locked"`
	Creator          ShortUserDTO     `json:"creator"`
	Developer        *ShortUserDTO    `json:"developer,omitempty"`
	CSRateOverride   *decimal.Decimal `json:"cs_rate_override,omitempty"`
	TechRateOverride *decimal.Decimal `json:"tech_rate_override,omitempty"`
	CreatedAt        string           `json:"created_at"`
	UpdatedAt        string           `json:"updated_at"`
	ShippedAt        string           `json:"shipped_at,omitempty"`
}
