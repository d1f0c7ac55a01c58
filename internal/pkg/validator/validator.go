package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	playground "github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(time.DateOnly, dateStr)
	return date, err == nil
}

// IsValidClock checks a 24-hour "HH:MM" time of day.
func IsValidClock(s string) bool {
	_, err := time.Parse("15:04", strings.TrimSpace(s))
	return err == nil
}

// Phone number validation (Ethiopian mobile: 09/07, 2519/2517, +2519/+2517)
func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")

	var subscriber string
	switch {
	case strings.HasPrefix(phone, "+251"):
		subscriber = strings.TrimPrefix(phone, "+251")
	case strings.HasPrefix(phone, "251"):
		subscriber = strings.TrimPrefix(phone, "251")
	case strings.HasPrefix(phone, "0"):
		subscriber = strings.TrimPrefix(phone, "0")
	default:
		return false
	}

	if len(subscriber) != 9 || !IsNumeric(subscriber) {
		return false
	}
	return subscriber[0] == '9' || subscriber[0] == '7'
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

var (
	structValidator *playground.Validate
	structOnce      sync.Once
)

func engine() *playground.Validate {
	structOnce.Do(func() {
		v := playground.New(playground.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("clock", func(fl playground.FieldLevel) bool {
			return IsValidClock(fl.Field().String())
		})
		_ = v.RegisterValidation("phone", func(fl playground.FieldLevel) bool {
			return IsValidPhoneNumber(fl.Field().String())
		})
		structValidator = v
	})
	return structValidator
}

// Struct validates `validate` tags on s and reports failures as
// ValidationErrors keyed by JSON field name.
func Struct(s any) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{Field: fe.Field(), Message: message(fe)})
	}
	return errs
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "clock":
		return "must be a time in HH:MM format"
	case "phone":
		return "must be a valid Ethiopian mobile number"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
