package trip

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput marks a request rejected before any external call.
var ErrInvalidInput = errors.New("invalid trip request")

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", ErrInvalidInput, e.Msg)
	}
	return fmt.Sprintf("%v: %s %s", ErrInvalidInput, e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Msg: err.Error()}
	}

	fe := verrs[0]
	field := fe.Field()
	if strings.HasPrefix(field, "activities[") {
		field = "activities"
	}

	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: field, Msg: "must not be empty"}
	case "min", "max":
		if field == "days" {
			return &ValidationError{Field: field, Msg: fmt.Sprintf("must be between %d and %d", MinDays, MaxDays)}
		}
		return &ValidationError{Field: field, Msg: "is out of range"}
	case "oneof":
		return &ValidationError{Field: field, Msg: fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), "'", ""))}
	default:
		return &ValidationError{Field: field, Msg: fmt.Sprintf("failed %q validation", fe.Tag())}
	}
}
