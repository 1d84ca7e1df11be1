package handlers

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/bestcell/bestsystem_backend/internal/core/domain"
)

var registerValidatorsOnce sync.Once

// RegisterValidators installs the custom binding tags on gin's validator:
//
//	dgt0           decimal strictly greater than zero
//	money          decimal with at most two decimal places
//	closure_reason a closure reason key or its label
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("dgt0", decimalGreaterThanZero)
		_ = v.RegisterValidation("money", decimalWholeCents)
		_ = v.RegisterValidation("closure_reason", validClosureReason)
	})
}

// decimalValue exposes decimals to the validator as their string form.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && d.GreaterThan(decimal.Zero)
}

func decimalWholeCents(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && domain.IsWholeCents(d)
}

func validClosureReason(fl validator.FieldLevel) bool {
	_, ok := domain.ParseClosureReason(fl.Field().String())
	return ok
}
