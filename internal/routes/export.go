package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"order-management/internal/controllers"
	"order-management/internal/services"
)

func runExportRouter(secureGroup *echo.Group, orderService services.OrderServiceInterface, logger *zap.Logger) {
	exportCtrl := controllers.NewExportController(orderService, logger)
	{
		secureGroup.GET("/orders/export", exportCtrl.ExportOrders)
	}
}
