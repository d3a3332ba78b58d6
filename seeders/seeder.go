package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedAll наполняет БД стартовым набором пользователей.
func SeedAll(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения БД...")

	if err := seedSuperAdmin(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка создания SuperAdmin: %v", err)
	}
	if err := seedDemoUsers(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка создания демо-пользователей: %v", err)
	}

	log.Println("✅ Наполнение БД завершено!")
}
