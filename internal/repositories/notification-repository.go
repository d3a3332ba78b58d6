package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"order-management/internal/entities"
	apperrors "order-management/pkg/errors"
)

type NotificationRepositoryInterface interface {
	// CreateInTx пишет уведомление тем же querier, что и породившее его
	// изменение заказа: уведомления не должны переживать откат транзакции.
	CreateInTx(ctx context.Context, q querier, recipientID uint64, content string, relatedOrderID *uint64) error
	Create(ctx context.Context, recipientID uint64, content string, relatedOrderID *uint64) error
	GetForUser(ctx context.Context, userID uint64, limit, offset uint64) ([]entities.Notification, uint64, error)
	MarkAsRead(ctx context.Context, id uint64, userID uint64) error
}

type NotificationRepository struct {
	storage *pgxpool.Pool
}

func NewNotificationRepository(storage *pgxpool.Pool) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage}
}

func (r *NotificationRepository) CreateInTx(ctx context.Context, q querier, recipientID uint64, content string, relatedOrderID *uint64) error {
	query := `INSERT INTO notifications (recipient_id, content, is_read, related_order_id, created_at) VALUES ($1, $2, FALSE, $3, NOW())`
	if _, err := q.Exec(ctx, query, recipientID, content, relatedOrderID); err != nil {
		return fmt.Errorf("ошибка создания уведомления: %w", err)
	}
	return nil
}

// Create - вариант вне транзакции, для уведомлений, не связанных
// с переходами статуса.
func (r *NotificationRepository) Create(ctx context.Context, recipientID uint64, content string, relatedOrderID *uint64) error {
	return r.CreateInTx(ctx, r.storage, recipientID, content, relatedOrderID)
}

func (r *NotificationRepository) GetForUser(ctx context.Context, userID uint64, limit, offset uint64) ([]entities.Notification, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета уведомлений: %w", err)
	}

	query := `
		SELECT id, recipient_id, content, is_read, related_order_id, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.storage.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения уведомлений: %w", err)
	}
	defer rows.Close()

	notifications := make([]entities.Notification, 0)
	for rows.Next() {
		var n entities.Notification
		var relatedOrderID sql.NullInt64

		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Content, &n.IsRead, &relatedOrderID, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования уведомления: %w", err)
		}
		if relatedOrderID.Valid {
			id := uint64(relatedOrderID.Int64)
			n.RelatedOrderID = &id
		}
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id uint64, userID uint64) error {
	var recipientID uint64
	err := r.storage.QueryRow(ctx, `SELECT recipient_id FROM notifications WHERE id = $1`, id).Scan(&recipientID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("ошибка поиска уведомления: %w", err)
	}

	// Чужие уведомления читать нельзя.
	if recipientID != userID {
		return apperrors.ErrForbidden
	}

	if _, err := r.storage.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("ошибка обновления уведомления: %w", err)
	}
	return nil
}
