package dto

type CreateWorkLogDTO struct {
	LogContent string `json:"log_content" validate:"required,min=1"`
}

type WorkLogDTO struct {
	ID          uint64 `json:"id"`
	OrderID     uint64 `json:"order_id"`
	DeveloperID uint64 `json:"developer_id"`
	LogContent  string `json:"log_content"`
	CreatedAt   string `json:"created_at"`
}
