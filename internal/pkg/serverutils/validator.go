package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError marks a request that failed DTO validation; the error
// middleware maps it to a 400.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// ValidateRequest checks a DTO's validate tags and collapses failures into a
// single readable message.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			parts := make([]string, 0, len(fieldErrors))
			for _, fe := range fieldErrors {
				parts = append(parts, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
			}
			return &ValidationError{Detail: strings.Join(parts, "; ")}
		}
		return &ValidationError{Detail: err.Error()}
	}
	return nil
}
