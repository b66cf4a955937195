package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/splitledger/internal/models"
)

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

// userFields carries the editable user fields through validation.
type userFields struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Mobile string `json:"mobile" validate:"required,mobile"`
}

// fieldMessages maps field and failed tag to the message reported to clients.
var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
	},
	"email": {
		"required": "Email is required",
		"email":    "Invalid email format",
	},
	"mobile": {
		"required": "Mobile is required",
		"mobile":   "Invalid mobile format",
	},
}

func newValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("failed to register 'mobile': %w", err)
	}

	return v, nil
}

// validateUser checks every field and reports all violations together.
func (s *Service) validateUser(f userFields) error {
	err := s.validate.Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate user: %w", err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.Field()][fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("failed '%s' check", fe.Tag())
		}
		fields[fe.Field()] = msg
	}
	return &models.ValidationError{Message: "invalid user fields", Fields: fields}
}
