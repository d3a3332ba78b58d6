package validation

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"order-management/pkg/constants"
)

// registerRules регистрирует кастомные правила валидации.
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("order_status", isOrderStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("commission_rate", isCommissionRate); err != nil {
		return err
	}

	// Учим валидатор видеть decimal.Decimal как примитив, а не структуру.
	v.RegisterCustomTypeFunc(decimalToFloat, decimal.Decimal{})

	return nil
}

func isOrderStatus(fl validator.FieldLevel) bool {
	return constants.IsValidStatus(fl.Field().String())
}

// Проценты комиссии: от 0 до 100 включительно.
func isCommissionRate(fl validator.FieldLevel) bool {
	rate, ok := fl.Field().Interface().(float64)
	if !ok {
		return false
	}
	return rate >= 0 && rate <= 100
}

func decimalToFloat(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}
