package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"order-management/internal/controllers"
	"order-management/internal/services"
)

func runOrderRouter(secureGroup *echo.Group, orderService services.OrderServiceInterface, logger *zap.Logger) {
	orderCtrl := controllers.NewOrderController(orderService, logger)
	{
		secureGroup.GET("/orders", orderCtrl.GetOrders)
		secureGroup.POST("/orders", orderCtrl.CreateOrder)
		secureGroup.GET("/orders/:id", orderCtrl.FindOrder)
		secureGroup.PUT("/orders/:id", orderCtrl.UpdateOrder)
		secureGroup.PATCH("/orders/:id/status", orderCtrl.ChangeStatus)
		secureGroup.PATCH("/orders/:id/commission-override", orderCtrl.SetCommissionOverride)
	}
}
