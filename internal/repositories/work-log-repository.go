package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"order-management/internal/entities"
)

type WorkLogRepositoryInterface interface {
	CreateWorkLog(ctx context.Context, log entities.WorkLog) (*entities.WorkLog, error)
	GetByOrder(ctx context.Context, orderID uint64) ([]entities.WorkLog, error)
}

type WorkLogRepository struct {
	storage *pgxpool.Pool
}

func NewWorkLogRepository(storage *pgxpool.Pool) WorkLogRepositoryInterface {
	return &WorkLogRepository{storage: storage}
}

func (r *WorkLogRepository) CreateWorkLog(ctx context.Context, log entities.WorkLog) (*entities.WorkLog, error) {
	query := `INSERT INTO work_logs (order_id, developer_id, log_content, created_at) VALUES ($1, $2, $3, NOW()) RETURNING id, created_at`

	if err := r.storage.QueryRow(ctx, query, log.OrderID, log.DeveloperID, log.LogContent).Scan(&log.ID, &log.CreatedAt); err != nil {
		return nil, fmt.Errorf("ошибка создания рабочего журнала: %w", err)
	}
	return &log, nil
}

func (r *WorkLogRepository) GetByOrder(ctx context.Context, orderID uint64) ([]entities.WorkLog, error) {
	query := `SELECT id, order_id, developer_id, log_content, created_at FROM work_logs WHERE order_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.storage.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения рабочих журналов: %w", err)
	}
	defer rows.Close()

	logs := make([]entities.WorkLog, 0)
	for rows.Next() {
		var l entities.WorkLog
		if err := rows.Scan(&l.ID, &l.OrderID, &l.DeveloperID, &l.LogContent, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования рабочего журнала: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
