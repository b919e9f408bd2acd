package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/learnsphere/assessment-engine/internal/errors"
	"github.com/learnsphere/assessment-engine/internal/models"
)

// Validator wraps go-playground/validator with the engine's custom rules.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	RegisterCustomValidators(validate)
	return &Validator{validate: validate}
}

// Validate checks the struct's `validate` tags. Failures come back as
// field-level ValidationErrors with wire names and readable messages.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

// ValidateQuestionType accepts any type the evaluator set knows. Registration
// rejects unknown types so callers hear about typos early; an empty type
// passes through (omitempty) and is left to the session-build defaulting,
// like the rest of the item payload.
func ValidateQuestionType(fl validator.FieldLevel) bool {
	return models.QuestionType(fl.Field().String()).Known()
}

func ValidateNavigationDirection(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "next", "previous":
		return true
	}
	return false
}

// RegisterCustomValidators registers all custom validators.
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", ValidateQuestionType)
	validate.RegisterValidation("nav_direction", ValidateNavigationDirection)

	// Report field names as they appear on the wire.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
