package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"order-management/internal/entities"
	"order-management/pkg/constants"
	apperrors "order-management/pkg/errors"
)

const (
	userTable  = "users"
	userFields = "id, username, password_hash, full_name, role, gender, skills, default_commission_rate::text, financial_account, is_active, created_at, updated_at"
)

type UserRepositoryInterface interface {
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByUsername(ctx context.Context, username string) (*entities.User, error)
	GetActiveUsersByRole(ctx context.Context, role constants.Role) ([]entities.User, error)
	CreateUser(ctx context.Context, user entities.User) (uint64, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	var fullName, gender, financialAccount, rate sql.NullString
	var skills []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&u.ID, &u.Username, &u.Password, &fullName, &u.Role, &gender,
		&skills, &rate, &financialAccount, &u.IsActive,
		&createdAt, &updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
	}

	if fullName.Valid {
		u.FullName = &fullName.String
	}
	if gender.Valid {
		u.Gender = &gender.String
	}
	if financialAccount.Valid {
		u.FinancialAccount = &financialAccount.String
	}
	if rate.Valid {
		d, err := decimal.NewFromString(rate.String)
		if err != nil {
			return nil, fmt.Errorf("некорректная ставка комиссии в БД: %w", err)
		}
		u.DefaultCommissionRate = &d
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &u.Skills); err != nil {
			return nil, fmt.Errorf("некорректный jsonb skills: %w", err)
		}
	}
	if createdAt.Valid {
		u.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		u.UpdatedAt = &updatedAt.Time
	}

	return &u, nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, userFields, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE username = $1`, userFields, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, username))
}

func (r *UserRepository) GetActiveUsersByRole(ctx context.Context, role constants.Role) ([]entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE role = $1 AND is_active = TRUE ORDER BY id`, userFields, userTable)

	rows, err := r.storage.Query(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователей по роли: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) CreateUser(ctx context.Context, user entities.User) (uint64, error) {
	var skills []byte
	if user.Skills != nil {
		var err error
		skills, err = json.Marshal(user.Skills)
		if err != nil {
			return 0, fmt.Errorf("не удалось сериализовать skills: %w", err)
		}
	}

	var rate *string
	if user.DefaultCommissionRate != nil {
		s := user.DefaultCommissionRate.StringFixed(2)
		rate = &s
	}

	query := `
		INSERT INTO users (username, password_hash, full_name, role, gender, skills, default_commission_rate, financial_account, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id`

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		user.Username, user.Password, user.FullName, string(user.Role), user.Gender,
		skills, rate, user.FinancialAccount, user.IsActive,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return newID, nil
}
