package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// StructValidator runs go-playground validation after fiber binds a request.
type StructValidator struct {
	validate *validator.Validate
}

// NewValidator returns the struct validator used by the fiber app.
func NewValidator() *StructValidator {
	return &StructValidator{validate: validator.New()}
}

// Validate implements fiber.StructValidator.
func (v *StructValidator) Validate(out any) error {
	return v.validate.Struct(out) //nolint:wrapcheck
}

var _ fiber.StructValidator = (*StructValidator)(nil)
