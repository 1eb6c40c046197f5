package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var Validate = validator.New()

func init() {
	// Report errors under the JSON field name, not the Go field name.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// FieldError is one entry of a validation_error detail list. Loc scopes
// the error to the violated field.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationDetails flattens a validator error into one FieldError per
// violated field. Every violation is reported, never just the first.
func ValidationDetails(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Loc: []string{"body"}, Msg: err.Error(), Type: "validation"}}
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Loc:  []string{fe.Field()},
			Msg:  fieldErrorMessage(fe),
			Type: fe.Tag(),
		})
	}
	return details
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "eq":
		return fmt.Sprintf("%s must be %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("value is not a valid enumeration member; permitted: %s",
			strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("failed on the '%s' constraint", fe.Tag())
	}
}

// ErrorResponse writes a JSON error body with a machine-readable code
// and a human-readable message.
func ErrorResponse(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

// FieldErrorResponse writes a 422 body carrying the given field-scoped
// detail list.
func FieldErrorResponse(c *fiber.Ctx, details []FieldError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":   "validation_error",
		"details": details,
	})
}

// ValidationErrorResponse writes the 422 body carrying the full
// per-field detail list for a failed validation.
func ValidationErrorResponse(c *fiber.Ctx, err error) error {
	return FieldErrorResponse(c, ValidationDetails(err))
}
