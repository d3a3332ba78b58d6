package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "order-management/pkg/errors"
)

type Response[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Body    T      `json:"body,omitempty"`
}

type ListBody[T any] struct {
	List       []T             `json:"list"`
	Pagination *PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	TotalCount uint64 `json:"total_count"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

// SuccessOne — для возврата одного объекта
func SuccessOne[T any](c echo.Context, code int, message string, data T) error {
	return c.JSON(code, Response[T]{
		Status:  true,
		Message: message,
		Body:    data,
	})
}

func SuccessList[T any](c echo.Context, message string, list []T, total uint64, page, limit int) error {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + uint64(limit) - 1) / uint64(limit))
	}

	if list == nil {
		list = make([]T, 0)
	}

	body := ListBody[T]{
		List: list,
		Pagination: &PaginationMeta{
			TotalCount: total,
			TotalPages: totalPages,
			Page:       page,
			Limit:      limit,
		},
	}

	return c.JSON(http.StatusOK, Response[ListBody[T]]{
		Status:  true,
		Message: message,
		Body:    body,
	})
}

// Таблица соответствия доменных ошибок HTTP-кодам.
var errorStatusList = map[error]int{
	apperrors.ErrNotFound:          http.StatusNotFound,
	apperrors.ErrOrderLocked:       http.StatusLocked,
	apperrors.ErrUnauthorizedRole:  http.StatusForbidden,
	apperrors.ErrInvalidTransition: http.StatusConflict,
	apperrors.ErrInvalidDeveloper:  http.StatusBadRequest,
	apperrors.ErrNotOrderDeveloper: http.StatusForbidden,
	apperrors.ErrForbidden:         http.StatusForbidden,
	apperrors.ErrUnauthorized:      http.StatusUnauthorized,
	apperrors.ErrEmptyAuthHeader:   http.StatusUnauthorized,
	apperrors.ErrInvalidAuthHeader: http.StatusUnauthorized,
	apperrors.ErrInvalidToken:      http.StatusUnauthorized,
	apperrors.ErrTokenExpired:      http.StatusUnauthorized,
	apperrors.ErrTokenIsNotAccess:  http.StatusUnauthorized,
	apperrors.ErrBadRequest:        http.StatusBadRequest,
	apperrors.ErrInvalidUserID:     http.StatusUnauthorized,
}

func ErrorResponse(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	msg := err.Error()

	// Для HttpError берем только пользовательское сообщение, без технических деталей
	var httpErr *apperrors.HttpError
	var inputErr *apperrors.InvalidInputError

	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		msg = httpErr.Message
	case errors.As(err, &inputErr):
		code = http.StatusBadRequest
		msg = inputErr.Message
	default:
		for sentinel, statusCode := range errorStatusList {
			if errors.Is(err, sentinel) {
				code = statusCode
				msg = sentinel.Error()
				break
			}
		}
	}

	return c.JSON(code, Response[any]{
		Status:  false,
		Message: msg,
	})
}
