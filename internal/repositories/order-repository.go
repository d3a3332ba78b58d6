package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"order-management/internal/dto"
	"order-management/internal/entities"
	"order-management/pkg/constants"
	apperrors "order-management/pkg/errors"
	"order-management/pkg/utils"
)

const orderTable = "orders"

// ЕДИНАЯ КАРТА ПОЛЕЙ (Фильтр + Сортировка)
var orderFilterMap = map[string]string{
	"status":       "ord.status",
	"creator_id":   "ord.creator_id",
	"developer_id": "ord.developer_id",
	"is_locked":    "ord.is_locked",
	"created_at":   "ord.created_at",
}

type OrderRepositoryInterface interface {
	GetOrders(ctx context.Context, params utils.QueryParams, actorID uint64, role constants.Role) ([]dto.OrderDTO, uint64, error)
	FindOrder(ctx context.Context, id uint64) (*dto.OrderDTO, error)
	FindOrderEntity(ctx context.Context, id uint64) (*entities.Order, error)
	FindOrderForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Order, error)
	CreateOrder(ctx context.Context, order entities.Order) (uint64, error)
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status constants.OrderStatus, shippedAt *time.Time, isLocked bool) error
	UpdateDetailsInTx(ctx context.Context, tx pgx.Tx, id uint64, finalPrice *decimal.Decimal, setDeveloper bool, developerID *uint64) error
	UpdateRateOverrideInTx(ctx context.Context, tx pgx.Tx, id uint64, override *entities.CommissionRateOverride) error
	OrderUIDExists(ctx context.Context, orderUID string) (bool, error)
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

const orderEntityFields = `id, order_uid, customer_info, requirements_desc,
	initial_budget::text, final_price::text, status, creator_id, developer_id,
	commission_rate_override, is_locked, shipped_at, created_at, updated_at`

func scanOrderEntity(row pgx.Row) (*entities.Order, error) {
	var ord entities.Order
	var initialBudget, finalPrice sql.NullString
	var developerID sql.NullInt64
	var override []byte
	var shippedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&ord.ID, &ord.OrderUID, &ord.CustomerInfo, &ord.RequirementsDesc,
		&initialBudget, &finalPrice, &ord.Status, &ord.CreatorID, &developerID,
		&override, &ord.IsLocked, &shippedAt, &createdAt, &updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования заказа: %w", err)
	}

	if initialBudget.Valid {
		d, err := decimal.NewFromString(initialBudget.String)
		if err != nil {
			return nil, fmt.Errorf("некорректный initial_budget в БД: %w", err)
		}
		ord.InitialBudget = &d
	}
	if finalPrice.Valid {
		d, err := decimal.NewFromString(finalPrice.String)
		if err != nil {
			return nil, fmt.Errorf("некорректный final_price в БД: %w", err)
		}
		ord.FinalPrice = &d
	}
	if developerID.Valid {
		id := uint64(developerID.Int64)
		ord.DeveloperID = &id
	}
	if len(override) > 0 {
		var ro entities.CommissionRateOverride
		if err := json.Unmarshal(override, &ro); err != nil {
			return nil, fmt.Errorf("некорректный commission_rate_override в БД: %w", err)
		}
		ord.RateOverride = &ro
	}
	if shippedAt.Valid {
		ord.ShippedAt = &shippedAt.Time
	}
	if createdAt.Valid {
		ord.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		ord.UpdatedAt = &updatedAt.Time
	}

	return &ord, nil
}

func (r *OrderRepository) FindOrderEntity(ctx context.Context, id uint64) (*entities.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, orderEntityFields, orderTable)
	return scanOrderEntity(r.storage.QueryRow(ctx, query, id))
}

// FindOrderForUpdateInTx читает заказ с блокировкой строки: два одновременных
// перехода по одному заказу сериализуются, второй увидит уже новый статус.
func (r *OrderRepository) FindOrderForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, orderEntityFields, orderTable)
	return scanOrderEntity(tx.QueryRow(ctx, query, id))
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order entities.Order) (uint64, error) {
	var initialBudget, finalPrice *string
	if order.InitialBudget != nil {
		s := order.InitialBudget.StringFixed(2)
		initialBudget = &s
	}
	if order.FinalPrice != nil {
		s := order.FinalPrice.StringFixed(2)
		finalPrice = &s
	}

	query := `
		INSERT INTO orders (order_uid, customer_info, requirements_desc, initial_budget, final_price, status, creator_id, developer_id, is_locked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, NOW(), NOW())
		RETURNING id`

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		order.OrderUID, order.CustomerInfo, order.RequirementsDesc,
		initialBudget, finalPrice, string(order.Status), order.CreatorID, order.DeveloperID,
	).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Коллизия order_uid; вызывающий сгенерирует новый и повторит.
			return 0, apperrors.ErrBadRequest
		}
		return 0, fmt.Errorf("ошибка создания заказа: %w", err)
	}
	return newID, nil
}

func (r *OrderRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status constants.OrderStatus, shippedAt *time.Time, isLocked bool) error {
	query := `UPDATE orders SET status = $1, is_locked = $2, shipped_at = COALESCE($3, shipped_at), updated_at = NOW() WHERE id = $4`
	tag, err := tx.Exec(ctx, query, string(status), isLocked, shippedAt, id)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса заказа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) UpdateDetailsInTx(ctx context.Context, tx pgx.Tx, id uint64, finalPrice *decimal.Decimal, setDeveloper bool, developerID *uint64) error {
	updateQuery := "UPDATE orders SET updated_at = NOW()"
	args := []interface{}{}
	argCounter := 1

	if finalPrice != nil {
		updateQuery += fmt.Sprintf(", final_price = $%d", argCounter)
		args = append(args, finalPrice.StringFixed(2))
		argCounter++
	}
	if setDeveloper {
		// developerID == nil означает снятие назначения.
		updateQuery += fmt.Sprintf(", developer_id = $%d", argCounter)
		args = append(args, developerID)
		argCounter++
	}

	updateQuery += fmt.Sprintf(" WHERE id = $%d", argCounter)
	args = append(args, id)

	tag, err := tx.Exec(ctx, updateQuery, args...)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении заказа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) UpdateRateOverrideInTx(ctx context.Context, tx pgx.Tx, id uint64, override *entities.CommissionRateOverride) error {
	payload, err := json.Marshal(override)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать override: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE orders SET commission_rate_override = $1, updated_at = NOW() WHERE id = $2`, payload, id)
	if err != nil {
		return fmt.Errorf("ошибка обновления особых ставок: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) OrderUIDExists(ctx context.Context, orderUID string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE order_uid = $1)`, orderUID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки order_uid: %w", err)
	}
	return exists, nil
}

// GetOrders возвращает страницу заказов с учётом видимости по ролям:
// супер-админ и финансы видят всё, клиентская служба - свои созданные,
// разработчик - назначенные на него.
func (r *OrderRepository) GetOrders(ctx context.Context, params utils.QueryParams, actorID uint64, role constants.Role) ([]dto.OrderDTO, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyVisibility := func(b sq.SelectBuilder) sq.SelectBuilder {
		switch role {
		case constants.RoleSuperAdmin, constants.RoleFinance:
			return b
		case constants.RoleCustomerService:
			return b.Where(sq.Eq{"ord.creator_id": actorID})
		case constants.RoleDeveloper:
			return b.Where(sq.Eq{"ord.developer_id": actorID})
		default:
			// Неизвестная роль не видит ничего.
			return b.Where("1 = 0")
		}
	}

	applyFilters := func(b sq.SelectBuilder) sq.SelectBuilder {
		for key, val := range params.Filters {
			dbCol, ok := orderFilterMap[key]
			if !ok {
				continue
			}
			b = b.Where(sq.Eq{dbCol: val})
		}
		if params.Search != "" {
			pattern := "%" + params.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"ord.order_uid": pattern},
				sq.ILike{"ord.customer_info": pattern},
			})
		}
		return b
	}

	countBuilder := applyFilters(applyVisibility(psql.Select("COUNT(*)").From(orderTable + " ord")))
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса подсчета: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета заказов: %w", err)
	}
	if total == 0 {
		return []dto.OrderDTO{}, 0, nil
	}

	sortCol, ok := orderFilterMap[params.SortBy]
	if !ok {
		sortCol = "ord.created_at"
	}
	sortDir := "DESC"
	if params.SortOrder == "asc" {
		sortDir = "ASC"
	}

	listBuilder := applyFilters(applyVisibility(psql.
		Select(`ord.id, ord.order_uid, ord.customer_info, ord.requirements_desc,
			ord.initial_budget::text, ord.final_price::text, ord.status, ord.is_locked,
			ord.commission_rate_override, ord.created_at, ord.updated_at, ord.shipped_at,
			creator.id, creator.username, creator.full_name,
			developer.id, developer.username, developer.full_name`).
		From(orderTable + " ord").
		Join("users creator ON ord.creator_id = creator.id").
		LeftJoin("users developer ON ord.developer_id = developer.id"))).
		OrderBy(fmt.Sprintf("%s %s", sortCol, sortDir)).
		Limit(params.Limit).
		Offset(params.Offset)

	listQuery, listArgs, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса списка: %w", err)
	}

	rows, err := r.storage.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка заказов: %w", err)
	}
	defer rows.Close()

	orders := make([]dto.OrderDTO, 0)
	for rows.Next() {
		order, err := scanOrderRow(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *order)
	}
	return orders, total, rows.Err()
}

// FindOrder находит один заказ по ID и возвращает его в формате API.
func (r *OrderRepository) FindOrder(ctx context.Context, id uint64) (*dto.OrderDTO, error) {
	query := `
		SELECT
			ord.id, ord.order_uid, ord.customer_info, ord.requirements_desc,
			ord.initial_budget::text, ord.final_price::text, ord.status, ord.is_locked,
			ord.commission_rate_override, ord.created_at, ord.updated_at, ord.shipped_at,
			creator.id, creator.username, creator.full_name,
			developer.id, developer.username, developer.full_name
		FROM orders ord
		JOIN users creator ON ord.creator_id = creator.id
		LEFT JOIN users developer ON ord.developer_id = developer.id
		WHERE ord.id = $1`

	return scanOrderRow(r.storage.QueryRow(ctx, query, id))
}

const dtoTimeLayout = "2006-01-02 15:04:05"

func scanOrderRow(row pgx.Row) (*dto.OrderDTO, error) {
	var order dto.OrderDTO
	var initialBudget, finalPrice sql.NullString
	var creatorFullName sql.NullString
	var developerID sql.NullInt64
	var developerUsername, developerFullName sql.NullString
	var override []byte
	var createdAt, updatedAt time.Time
	var shippedAt sql.NullTime

	err := row.Scan(
		&order.ID, &order.OrderUID, &order.CustomerInfo, &order.RequirementsDesc,
		&initialBudget, &finalPrice, &order.Status, &order.IsLocked,
		&override, &createdAt, &updatedAt, &shippedAt,
		&order.Creator.ID, &order.Creator.Username, &creatorFullName,
		&developerID, &developerUsername, &developerFullName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования заказа в списке: %w", err)
	}

	if initialBudget.Valid {
		d, err := decimal.NewFromString(initialBudget.String)
		if err != nil {
			return nil, fmt.Errorf("некорректный initial_budget в БД: %w", err)
		}
		order.InitialBudget = &d
	}
	if finalPrice.Valid {
		d, err := decimal.NewFromString(finalPrice.String)
		if err != nil {
			return nil, fmt.Errorf("некорректный final_price в БД: %w", err)
		}
		order.FinalPrice = &d
	}
	if creatorFullName.Valid {
		order.Creator.FullName = &creatorFullName.String
	}
	if developerID.Valid {
		dev := dto.ShortUserDTO{ID: uint64(developerID.Int64), Username: developerUsername.String}
		if developerFullName.Valid {
			dev.FullName = &developerFullName.String
		}
		order.Developer = &dev
	}
	if len(override) > 0 {
		var ro entities.CommissionRateOverride
		if err := json.Unmarshal(override, &ro); err != nil {
			return nil, fmt.Errorf("некорректный commission_rate_override в БД: %w", err)
		}
		order.CSRateOverride = ro.CSRate
		order.TechRateOverride = ro.TechRate
	}

	order.CreatedAt = createdAt.Local().Format(dtoTimeLayout)
	order.UpdatedAt = updatedAt.Local().Format(dtoTimeLayout)
	if shippedAt.Valid {
		order.ShippedAt = shippedAt.Time.Local().Format(dtoTimeLayout)
	}

	return &order, nil
}
