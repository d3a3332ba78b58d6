package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"order-management/internal/controllers"
	"order-management/internal/services"
)

func runNotificationRouter(secureGroup *echo.Group, notificationService services.NotificationServiceInterface, logger *zap.Logger) {
	notificationCtrl := controllers.NewNotificationController(notificationService, logger)
	{
		secureGroup.GET("/notifications", notificationCtrl.GetMyNotifications)
		secureGroup.PATCH("/notifications/:id/read", notificationCtrl.MarkAsRead)
	}
}
