package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"order-management/internal/dto"
	"order-management/internal/services"
	"order-management/pkg/api"
	"order-management/pkg/utils"
)

// ExportController выгружает видимые пользователю заказы в XLSX.
type ExportController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewExportController(orderService services.OrderServiceInterface, logger *zap.Logger) *ExportController {
	return &ExportController{orderService: orderService, logger: logger}
}

var exportHeaders = []interface{}{
	"ID", "Номер заказа", "Клиент", "Статус", "Начальный бюджет", "Итоговая цена",
	"Создатель", "Разработчик", "Заблокирован", "Отправлен", "Создан",
}

func (c *ExportController) ExportOrders(ctx echo.Context) error {
	actorID, role, err := actorFromCtx(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	params := utils.ParseQuery(ctx.Request().URL.Query())
	// Выгружаем все, что видно пользователю, без пагинации.
	params.Limit = 100000
	params.Offset = 0

	orders, _, err := c.orderService.GetOrders(ctx.Request().Context(), params, actorID, role)
	if err != nil {
		c.logger.Error("Ошибка выгрузки заказов в XLSX", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return c.respondWithXLSX(ctx, orders)
}

func (c *ExportController) respondWithXLSX(ctx echo.Context, orders []dto.OrderDTO) error {
	f := excelize.NewFile()
	sheet := "Заказы"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &exportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "K1", style)

	for i, order := range orders {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := orderToRow(order)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 30)
	f.SetColWidth(sheet, "D", "D", 22)
	f.SetColWidth(sheet, "G", "H", 20)
	f.SetColWidth(sheet, "J", "K", 20)

	fileName := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func orderToRow(order dto.OrderDTO) []interface{} {
	initialBudget, finalPrice := "-", "-"
	if order.InitialBudget != nil {
		initialBudget = order.InitialBudget.StringFixed(2)
	}
	if order.FinalPrice != nil {
		finalPrice = order.FinalPrice.StringFixed(2)
	}

	developer := "-"
	if order.Developer != nil {
		developer = order.Developer.Username
		if name := utils.SafeDeref(order.Developer.FullName); name != "" {
			developer = name
		}
	}
	creator := order.Creator.Username
	if name := utils.SafeDeref(order.Creator.FullName); name != "" {
		creator = name
	}

	locked := "Нет"
	if order.IsLocked {
		locked = "Да"
	}
	shippedAt := "-"
	if order.ShippedAt != "" {
		shippedAt = order.ShippedAt
	}

	return []interface{}{
		order.ID, order.OrderUID, order.CustomerInfo, order.Status, initialBudget, finalPrice,
		creator, developer, locked, shippedAt, order.CreatedAt,
	}
}
