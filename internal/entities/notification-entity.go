package entities

import "time"

type Notification struct {
	ID             uint64    `json:"id" db:"id"`
	RecipientID    uint64    `json:"recipient_id" db:"recipient_id"`
	Content        string    `json:"content" db:"content"`
	IsRead         bool      `json:"is_read" db:"is_read"`
	RelatedOrderID *uint64   `json:"related_order_id,omitempty" db:"related_order_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
