// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"leasing_crm_backend/platform/phone"
)

// Validator wraps the go-playground validator for structured validation.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the phone and region tags registered.
//
//	phone  - the value is empty or contains at least one digit
//	region - the value is empty or a region code known to libphonenumber
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone", validatePhone)
	_ = v.RegisterValidation("region", validateRegion)
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s any) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field any, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

func validatePhone(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	return value == "" || phone.Digits(value) != ""
}

func validateRegion(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	return value == "" || phone.IsSupportedRegion(value)
}
