package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"order-management/internal/entities"
)

const commissionTable = "commissions"

type CommissionRepositoryInterface interface {
	// ReplaceForOrderInTx удаляет все записи комиссий заказа и вставляет
	// новый набор. Замена, а не merge: повторный пересчет с теми же
	// входными данными дает тот же итоговый набор строк.
	ReplaceForOrderInTx(ctx context.Context, q querier, orderID uint64, commissions []entities.Commission) error
	GetByOrder(ctx context.Context, orderID uint64) ([]entities.Commission, error)
}

type CommissionRepository struct {
	storage *pgxpool.Pool
}

func NewCommissionRepository(storage *pgxpool.Pool) CommissionRepositoryInterface {
	return &CommissionRepository{storage: storage}
}

func (r *CommissionRepository) ReplaceForOrderInTx(ctx context.Context, q querier, orderID uint64, commissions []entities.Commission) error {
	if _, err := q.Exec(ctx, `DELETE FROM commissions WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("ошибка удаления старых комиссий: %w", err)
	}

	insertQuery := `INSERT INTO commissions (order_id, user_id, amount, role_at_time, created_at) VALUES ($1, $2, $3, $4, NOW())`
	for _, c := range commissions {
		if _, err := q.Exec(ctx, insertQuery, c.OrderID, c.UserID, c.Amount.StringFixed(2), string(c.RoleAtTime)); err != nil {
			return fmt.Errorf("ошибка вставки комиссии: %w", err)
		}
	}
	return nil
}

func (r *CommissionRepository) GetByOrder(ctx context.Context, orderID uint64) ([]entities.Commission, error) {
	query := `SELECT id, order_id, user_id, amount::text, role_at_time, created_at FROM commissions WHERE order_id = $1 ORDER BY id`

	rows, err := r.storage.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения комиссий заказа: %w", err)
	}
	defer rows.Close()

	commissions := make([]entities.Commission, 0)
	for rows.Next() {
		var c entities.Commission
		var amount sql.NullString

		if err := rows.Scan(&c.ID, &c.OrderID, &c.UserID, &amount, &c.RoleAtTime, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования комиссии: %w", err)
		}
		if amount.Valid {
			d, err := decimal.NewFromString(amount.String)
			if err != nil {
				return nil, fmt.Errorf("некорректная сумма комиссии в БД: %w", err)
			}
			c.Amount = d
		}
		commissions = append(commissions, c)
	}
	return commissions, rows.Err()
}
