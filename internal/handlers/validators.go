package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// decimalRules are binding tags for decimal.Decimal fields.
var decimalRules = map[string]func(decimal.Decimal) bool{
	"dpositive":    decimal.Decimal.IsPositive,
	"dnonnegative": func(d decimal.Decimal) bool { return !d.IsNegative() },
	"dnonzero":     func(d decimal.Decimal) bool { return !d.IsZero() },
}

// RegisterValidators adds the decimal binding tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	for tag, rule := range decimalRules {
		if err := v.RegisterValidation(tag, decimalValidation(rule)); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}
	return nil
}

func decimalValidation(rule func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		switch d := fl.Field().Interface().(type) {
		case decimal.Decimal:
			return rule(d)
		case *decimal.Decimal:
			return d == nil || rule(*d)
		}
		return false
	}
}
