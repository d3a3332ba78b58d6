package dto

import "github.com/shopspring/decimal"

type CommissionDTO struct {
	ID         uint64          `json:"id"`
	OrderID    uint64          `json:"order_id"`
	UserID     uint64          `json:"user_id"`
	Amount     decimal.Decimal `json:"amount"`
	RoleAtTime string          `json:"role_at_time"`
	CreatedAt  string          `json:"created_at"`
}
