package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"order-management/internal/controllers"
	"order-management/internal/services"
)

func runWorkLogRouter(secureGroup *echo.Group, workLogService services.WorkLogServiceInterface, logger *zap.Logger) {
	workLogCtrl := controllers.NewWorkLogController(workLogService, logger)
	{
		secureGroup.GET("/orders/:id/work-logs", workLogCtrl.GetWorkLogs)
		secureGroup.POST("/orders/:id/work-logs", workLogCtrl.AddWorkLog)
	}
}
