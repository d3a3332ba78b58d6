package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"order-management/internal/listeners"
	"order-management/internal/repositories"
	"order-management/internal/services"
	"order-management/pkg/config"
	"order-management/pkg/eventbus"
	"order-management/pkg/middleware"
	"order-management/pkg/service"
)

// InitRouter собирает весь граф зависимостей: репозитории -> сервисы ->
// контроллеры -> маршруты. Все маршруты, кроме health, за авторизацией.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, bus *eventbus.Bus, cfg *config.Config, logger *zap.Logger) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")

	// --- 1. РЕПОЗИТОРИИ ---
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	userRepo := repositories.NewUserRepository(dbConn, logger)
	orderRepo := repositories.NewOrderRepository(dbConn, logger)
	commissionRepo := repositories.NewCommissionRepository(dbConn)
	workLogRepo := repositories.NewWorkLogRepository(dbConn)
	notificationRepo := repositories.NewNotificationRepository(dbConn)

	// --- 2. СЕРВИСЫ ---
	authzService := services.NewAuthzService(userRepo, cacheRepo, cfg.Authz.RoleCacheTTL, logger)
	commissionService := services.NewCommissionService(commissionRepo, orderRepo, userRepo, txManager, logger)
	orderService := services.NewOrderService(orderRepo, userRepo, notificationRepo, commissionService, txManager, bus, logger)
	workLogService := services.NewWorkLogService(workLogRepo, orderRepo, logger)
	notificationService := services.NewNotificationService(notificationRepo, logger)

	// --- 3. СЛУШАТЕЛИ СОБЫТИЙ ---
	listeners.NewOrderAuditListener(logger).Register(bus)

	// --- 4. КОНТРОЛЛЕРЫ И МАРШРУТЫ ---
	authMW := middleware.NewAuthMiddleware(jwtSvc, authzService, logger)
	secureGroup := api.Group("", authMW.Auth)

	runOrderRouter(secureGroup, orderService, logger)
	runCommissionRouter(secureGroup, commissionService, logger)
	runWorkLogRouter(secureGroup, workLogService, logger)
	runNotificationRouter(secureGroup, notificationService, logger)
	runExportRouter(secureGroup, orderService, logger)

	logger.Info("InitRouter: Все маршруты созданы")
}
