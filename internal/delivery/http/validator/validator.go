// Package validator wires go-playground/validator into Echo's binding flow.
package validator

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// requestValidator adapts validator.Validate to echo.Validator.
type requestValidator struct {
	validate *validator.Validate
}

// New creates an Echo request validator backed by go-playground/validator.
func New() echo.Validator {
	return &requestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Struct tag violations surface as a
// 400 with the validator's message so clients see which field failed.
func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
