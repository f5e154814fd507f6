package httputil

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator builds a validator that reports fields by their json tag name,
// so validation errors line up with the wire format.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// required only rejects the zero value; a whitespace-only string must
	// also read as blank
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ValidationMessages converts validator errors into a field->messages map
// with the human-readable phrasing the API promises to clients.
func ValidationMessages(err error) map[string][]string {
	messages := make(map[string][]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		messages["base"] = []string{"is invalid"}
		return messages
	}

	for _, fe := range verrs {
		field := fe.Field()
		messages[field] = append(messages[field], messageFor(fe))
	}
	return messages
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "can't be blank"
	case "min":
		return fmt.Sprintf("is too short (minimum is %s characters)", fe.Param())
	case "email":
		return "is invalid"
	case "eqfield":
		return fmt.Sprintf("doesn't match %s", fe.Param())
	default:
		return "is invalid"
	}
}
