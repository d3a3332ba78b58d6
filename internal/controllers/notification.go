package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"order-management/internal/services"
	"order-management/pkg/api"
	"order-management/pkg/utils"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
	logger              *zap.Logger
}

func NewNotificationController(notificationService services.NotificationServiceInterface, logger *zap.Logger) *NotificationController {
	return &NotificationController{notificationService: notificationService, logger: logger}
}

func (c *NotificationController) GetMyNotifications(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	params := utils.ParseQuery(ctx.Request().URL.Query())

	notifications, total, err := c.notificationService.GetMyNotifications(ctx.Request().Context(), userID, params.Limit, params.Offset)
	if err != nil {
		c.logger.Error("Ошибка при получении уведомлений", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "Уведомления успешно получены", notifications, total, int(params.Page), int(params.Limit))
}

func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if err := c.notificationService.MarkAsRead(ctx.Request().Context(), id, userID); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne[any](ctx, http.StatusOK, "Уведомление отмечено прочитанным", nil)
}
