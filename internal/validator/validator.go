// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"budgetflow/internal/money"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	}
}

// validateCurrencyCode restricts currency fields to the closed set the
// application supports, rather than all of ISO 4217.
func validateCurrencyCode(fl validator.FieldLevel) bool {
	return money.Valid(fl.Field().String())
}
