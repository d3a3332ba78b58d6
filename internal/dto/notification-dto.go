package dto

type NotificationDTO struct {
	ID             uint64  `json:"id"`
	Content        string  `json:"content"`
	IsRead         bool    `json:"is_read"`
	RelatedOrderID *uint64 `json:"related_order_id,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
