package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"order-management/internal/controllers"
	"order-management/internal/services"
)

func runCommissionRouter(secureGroup *echo.Group, commissionService services.CommissionServiceInterface, logger *zap.Logger) {
	commissionCtrl := controllers.NewCommissionController(commissionService, logger)
	{
		secureGroup.GET("/orders/:id/commissions", commissionCtrl.GetOrderCommissions)
		secureGroup.POST("/orders/:id/commissions/recalculate", commissionCtrl.RecalculateCommissions)
	}
}
