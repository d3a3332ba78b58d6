package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"order-management/internal/services"
	"order-management/pkg/api"
)

type CommissionController struct {
	commissionService services.CommissionServiceInterface
	logger            *zap.Logger
}

func NewCommissionController(commissionService services.CommissionServiceInterface, logger *zap.Logger) *CommissionController {
	return &CommissionController{commissionService: commissionService, logger: logger}
}

func (c *CommissionController) GetOrderCommissions(ctx echo.Context) error {
	actorID, role, err := actorFromCtx(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	orderID, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	commissions, err := c.commissionService.GetForOrder(ctx.Request().Context(), orderID, actorID, role)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Комиссии успешно получены", commissions)
}

// RecalculateCommissions - ручной пересчет для сверки.
func (c *CommissionController) RecalculateCommissions(ctx echo.Context) error {
	actorID, role, err := actorFromCtx(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	orderID, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	commissions, err := c.commissionService.RecalculateForOrder(ctx.Request().Context(), orderID, actorID, role)
	if err != nil {
		c.logger.Error("Ошибка ручного пересчета комиссий", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Комиссии успешно пересчитаны", commissions)
}
