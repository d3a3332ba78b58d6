package entities

import "time"

type WorkLog struct {
	ID          uint64    `json:"id" db:"id"`
	OrderID     uint64    `json:"order_id" db:"order_id"`
	DeveloperID uint64    `json:"developer_id" db:"developer_id"`
	LogContent  string    `json:"log_content" db:"log_content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
