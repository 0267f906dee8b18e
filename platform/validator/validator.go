// Package validator provides request validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"telinput/platform/phone"
)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator with the phone tags registered:
//
//	regioncode     two uppercase letters, e.g. NL
//	regioncodes    comma separated regioncode list
//	formatstrategy one of the phone.FormatStrategy names
func New() *Validator {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("regioncode", validateRegionCode)
	_ = v.RegisterValidation("regioncodes", validateRegionCodes)
	_ = v.RegisterValidation("formatstrategy", validateFormatStrategy)
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

func validateRegionCode(fl validator.FieldLevel) bool {
	return phone.RegionCode(fl.Field().String()).Valid()
}

func validateRegionCodes(fl validator.FieldLevel) bool {
	for _, part := range strings.Split(fl.Field().String(), ",") {
		if !phone.NormalizeRegion(part).Valid() {
			return false
		}
	}
	return true
}

func validateFormatStrategy(fl validator.FieldLevel) bool {
	_, err := phone.ParseFormatStrategy(fl.Field().String())
	return err == nil
}
