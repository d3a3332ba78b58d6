package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"order-management/internal/dto"
	"order-management/internal/services"
	"order-management/pkg/api"
	apperrors "order-management/pkg/errors"
)

type WorkLogController struct {
	workLogService services.WorkLogServiceInterface
	logger         *zap.Logger
}

func NewWorkLogController(workLogService services.WorkLogServiceInterface, logger *zap.Logger) *WorkLogController {
	return &WorkLogController{workLogService: workLogService, logger: logger}
}

func (c *WorkLogController) AddWorkLog(ctx echo.Context) error {
	actorID, role, err := actorFromCtx(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	orderID, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.CreateWorkLogDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "некорректное тело запроса", err))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	log, err := c.workLogService.AddWorkLog(ctx.Request().Context(), orderID, payload, actorID, role)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Запись в журнал работ добавлена", log)
}

func (c *WorkLogController) GetWorkLogs(ctx echo.Context) error {
	actorID, role, err := actorFromCtx(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	orderID, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	logs, err := c.workLogService.GetWorkLogs(ctx.Request().Context(), orderID, actorID, role)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Журнал работ успешно получен", logs)
}
