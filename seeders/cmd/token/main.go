package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"order-management/internal/repositories"
	"order-management/pkg/config"
	"order-management/pkg/database/postgresql"
	"order-management/pkg/service"
)

// Утилита для локальной разработки: выпускает пару токенов для
// существующего пользователя, чтобы ходить в API без формы входа.
func main() {
	username := flag.String("username", "superadmin", "Имя пользователя, для которого выпустить токены")
	flag.Parse()

	cfg := config.New()

	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	userRepo := repositories.NewUserRepository(db, zap.NewNop())
	user, err := userRepo.FindUserByUsername(context.Background(), *username)
	if err != nil {
		log.Fatalf("❌ Пользователь '%s' не найден: %v", *username, err)
	}
	if !user.IsActive {
		log.Fatalf("❌ Пользователь '%s' деактивирован", *username)
	}

	jwtService := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	accessToken, refreshToken, err := jwtService.GenerateTokens(user.ID)
	if err != nil {
		log.Fatalf("❌ Не удалось выпустить токены: %v", err)
	}

	log.Printf("Пользователь: %s (id=%d, роль=%s)", user.Username, user.ID, user.Role)
	log.Printf("Access token:\n%s", accessToken)
	log.Printf("Refresh token:\n%s", refreshToken)
}
