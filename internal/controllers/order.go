package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"order-management/internal/dto"
	"order-management/internal/services"
	"order-management/pkg/api"
	"order-management/pkg/constants"
	apperrors "order-management/pkg/errors"
	"order-management/pkg/utils"
)

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, logger: logger}
}

// actorFromCtx достает ID и роль текущего пользователя, положенные
// в контекст middleware-ом авторизации.
func actorFromCtx(ctx echo.Context) (uint64, constants.Role, error) {
	reqCtx := ctx.Request().Context()
	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return 0, "", err
	}
	role, err := utils.GetUserRoleFromCtx(reqCtx)
	if err != nil {
		return 0, "", err
	}
	return actorID, role, nil
}

func parseIDParam(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "некорректный ID заказа", err)
	}
	return id, nil
}

func (c *OrderController) GetOrders(ctx echo.Context) error {
	actorID, role, err := actorFromCtx(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	params := utils.ParseQuery(ctx.Request().URL.Query())

	orders, total, err := c.orderService.GetOrders(ctx.Request().Context(), params, actorID, role)
	if err != nil {
		c.logger.Error("Ошибка при получении списка заказов", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "Заказы успешно получены", orders, total, int(params.Page), int(params.Limit))
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	actorID, role, err := actorFromCtx(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.FindOrder(ctx.Request().Context(), id, actorID, role)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Заказ успешно получен", order)
}

func (c *OrderController) CreateOrder(ctx echo.Context) error {
	actorID, role, err := actorFromCtx(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.CreateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "некорректное тело запроса", err))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.CreateOrder(ctx.Request().Context(), payload, actorID, role)
	if err != nil {
		c.logger.Error("Ошибка при создании заказа", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Заказ успешно создан", order)
}

// ChangeStatus - перевод заказа по жизненному циклу.
func (c *OrderController) ChangeStatus(ctx echo.Context) error {
	actorID, role, err := actorFromCtx(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.ChangeOrderStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "некорректное тело запроса", err))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.ChangeStatus(ctx.Request().Context(), id, constants.OrderStatus(payload.Status), actorID, role)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Статус заказа успешно изменен", order)
}

func (c *OrderController) UpdateOrder(ctx echo.Context) error {
	actorID, role, err := actorFromCtx(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateOrderByCsDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "некорректное тело запроса", err))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.UpdateOrderByCS(ctx.Request().Context(), id, payload, actorID, role)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Заказ успешно обновлен", order)
}

func (c *OrderController) SetCommissionOverride(ctx echo.Context) error {
	actorID, role, err := actorFromCtx(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.CommissionOverrideDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "некорректное тело запроса", err))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.SetCommissionOverride(ctx.Request().Context(), id, payload, actorID, role)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Особые ставки успешно обновлены", order)
}
