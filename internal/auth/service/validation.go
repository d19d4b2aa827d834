package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/mkalinin/tasklight/internal/common/errors"
)

var validate = validator.New()

type signupCredentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// validateSignup is presence-level only: the email must look like an
// email and both fields must be set. Passwords are otherwise
// unrestricted.
func validateSignup(email, password string) error {
	err := validate.Struct(signupCredentials{Email: email, Password: password})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return newValidationError(describeFieldError(fieldErrs[0]))
	}
	return newValidationError("invalid input")
}

func newValidationError(message string) commonerrors.DomainError {
	return commonerrors.NewDomainError(
		"INVALID_INPUT",
		commonerrors.CategoryValidation,
		400,
		message,
	)
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "email is not a valid address"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
