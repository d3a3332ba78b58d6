package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"order-management/pkg/constants"
	"order-management/pkg/utils"
)

type seedUser struct {
	username string
	fullName string
	role     constants.Role
	rate     *string
	skills   *string
}

func seedSuperAdmin(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание пользователя 'Super Admin'...")

	var exists bool
	if err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", "superadmin").Scan(&exists); err != nil {
		return err
	}
	if exists {
		log.Println("    - Пользователь Super Admin уже существует. Пропускаем.")
		return nil
	}

	hashedPassword, err := utils.HashPassword("Password123!")
	if err != nil {
		return err
	}

	query := `INSERT INTO users (username, password_hash, full_name, role, is_active) VALUES ($1, $2, $3, $4, TRUE)`
	_, err = db.Exec(ctx, query, "superadmin", hashedPassword, "Главный администратор", string(constants.RoleSuperAdmin))
	return err
}

func seedDemoUsers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание демо-пользователей...")

	users := []seedUser{
		{username: "cs.anna", fullName: "Анна (Клиентская служба)", role: constants.RoleCustomerService, rate: utils.ToPtr("10.00")},
		{username: "cs.olim", fullName: "Олим (Клиентская служба)", role: constants.RoleCustomerService, rate: utils.ToPtr("8.50")},
		{username: "dev.ivan", fullName: "Иван (Разработчик)", role: constants.RoleDeveloper, rate: utils.ToPtr("15.00"), skills: utils.ToPtr(`["go","postgres"]`)},
		{username: "dev.zarina", fullName: "Зарина (Разработчик)", role: constants.RoleDeveloper, rate: utils.ToPtr("12.00"), skills: utils.ToPtr(`["frontend","design"]`)},
		{username: "fin.rustam", fullName: "Рустам (Финансы)", role: constants.RoleFinance},
	}

	query := `
		INSERT INTO users (username, password_hash, full_name, role, skills, default_commission_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (username) DO NOTHING`

	for _, u := range users {
		hashedPassword, err := utils.HashPassword("Password123!")
		if err != nil {
			return err
		}
		if _, err := db.Exec(ctx, query, u.username, hashedPassword, u.fullName, string(u.role), u.skills, u.rate); err != nil {
			return err
		}
	}
	return nil
}
