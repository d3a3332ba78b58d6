// Файл: internal/entities/user-entity.go
package entities

import (
	"github.com/shopspring/decimal"

	"order-management/pkg/constants"
	"order-management/pkg/types"
)

type User struct {
	ID       uint64         `json:"id" db:"id"`
	Username string         `json:"username" db:"username"`
	FullName *string        `json:"full_name,omitempty" db:"full_name"`
	Role     constants.Role `json:"role" db:"role"`
	Gender   *string        `json:"gender,omitempty" db:"gender"`

	Password string `json:"-" db:"password_hash"`

	// Умолчания для расчета комиссий; в процентах, например 10.00.
	DefaultCommissionRate *decimal.Decimal `json:"default_commission_rate,omitempty" db:"default_commission_rate"`

	Skills           []string `json:"skills,omitempty" db:"skills"`
	FinancialAccount *string  `json:"financial_account,omitempty" db:"financial_account"`
	IsActive         bool     `json:"is_active" db:"is_active"`

	types.BaseEntity
}
