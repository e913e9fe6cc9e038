package common

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

var (
	defaultValidator     *validator.Validate
	defaultValidatorOnce sync.Once
)

// SharedValidator returns the process-wide validator instance
func SharedValidator() *validator.Validate {
	defaultValidatorOnce.Do(func() {
		defaultValidator = validator.New()
	})
	return defaultValidator
}

// ValidateStruct checks the `validate` tags of the given struct
func ValidateStruct(i interface{}) error {
	return SharedValidator().Struct(i)
}

type GenericEchoValidator struct {
	Validator *validator.Validate
}

// NewGenericEchoValidator returns an echo validator backed by the shared instance
func NewGenericEchoValidator() *GenericEchoValidator {
	return &GenericEchoValidator{Validator: SharedValidator()}
}

func (gv *GenericEchoValidator) Validate(i interface{}) error {
	v := gv.Validator
	if v == nil {
		v = SharedValidator()
	}
	if err := v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("received invalid request body: %v", err))
	}
	return nil
}
