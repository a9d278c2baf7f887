// Package validation wraps go-playground/validator with field names taken
// from json tags and messages suitable for API clients.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	apperrors "wardrobe/pkg/errors"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Fields returns the offending field names in order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, err := range v {
		fields = append(fields, err.Field)
	}
	return fields
}

func Field(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("max_bytes", validateMaxBytes); err != nil {
		panic(fmt.Sprintf("validation: register max_bytes: %v", err))
	}
	if err := v.RegisterValidation("max_decimals", validateMaxDecimals); err != nil {
		panic(fmt.Sprintf("validation: register max_decimals: %v", err))
	}
	return &Validator{validate: v}
}

// validateMaxBytes bounds the encoded length of a string, as opposed to
// max which counts runes.
func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// validateMaxDecimals bounds the fractional digits of a float in its shortest
// decimal form, so 19.99 passes max_decimals=2 and 12.345 does not.
func validateMaxDecimals(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	field := fl.Field()
	if field.Kind() != reflect.Float32 && field.Kind() != reflect.Float64 {
		return false
	}
	formatted := strconv.FormatFloat(field.Float(), 'f', -1, field.Type().Bits())
	dot := strings.IndexByte(formatted, '.')
	return dot < 0 || len(formatted)-dot-1 <= limit
}

// Engine exposes the underlying validator for custom rule registration.
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

// Struct validates s and returns ValidationErrors for rule failures.
func (v *Validator) Struct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "max_bytes":
			message = fmt.Sprintf("%s must be at most %s bytes", err.Field(), err.Param())
		case "max_decimals":
			message = fmt.Sprintf("%s must have at most %s decimal places", err.Field(), err.Param())
		case "lte":
			message = fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "http_url":
			message = fmt.Sprintf("%s must be an absolute http(s) URL", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

// ToAppError converts validation output into a 400 AppError listing every
// failed field. Other errors pass through unchanged.
func ToAppError(err error) error {
	var validationErrs ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	return apperrors.Validation("Validation failed", map[string]any{
		"errors": []ValidationError(validationErrs),
	})
}
