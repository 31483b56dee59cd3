package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// MissingRequiredError reports required client keys that are empty after defaulting
type MissingRequiredError struct {
	Keys []Key
}

// Error implements the error interface
func (e *MissingRequiredError) Error() string {
	names := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		names[i] = string(k)
	}
	return "Missing required environment variables: " + strings.Join(names, ", ")
}

// IsMissingRequired reports whether err carries a MissingRequiredError
func IsMissingRequired(err error) bool {
	var target *MissingRequiredError
	return errors.As(err, &target)
}

// Validation is the outcome of checking the required keys. Callers decide whether a
// failed validation aborts startup or is logged and tolerated.
type Validation struct {
	Missing []Key
}

// OK reports whether every required key is present
func (v Validation) OK() bool {
	return len(v.Missing) == 0
}

// Err returns nil when OK, otherwise a *MissingRequiredError
func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return &MissingRequiredError{Keys: append([]Key(nil), v.Missing...)}
}

// Validate checks the required keys in their fixed order
func (e Environment) Validate() Validation {
	var v Validation
	for _, key := range RequiredKeys {
		if e.Value(key) == "" {
			v.Missing = append(v.Missing, key)
		}
	}
	return v
}

// ValidateEnvironment is the startup gate: nil when all required keys are set,
// a *MissingRequiredError listing the missing ones otherwise.
func ValidateEnvironment(env Environment) error {
	return env.Validate().Err()
}

var (
	formatValidator     *validator.Validate
	formatValidatorOnce sync.Once
)

func getFormatValidator() *validator.Validate {
	formatValidatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		formatValidator = v
	})
	return formatValidator
}

// Warning is a non-fatal format problem found in a loaded Environment
type Warning struct {
	Key     Key    `json:"key"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Warnings runs format checks (URL syntax, known themes, positive limits). They are
// diagnostics only: missing required keys are reported by Validate, not here.
func (e Environment) Warnings() []Warning {
	err := getFormatValidator().Struct(e)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Warning{{Message: err.Error()}}
	}

	var out []Warning
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			continue
		}
		key := Key(fe.Field())
		out = append(out, Warning{
			Key:     key,
			Value:   e.Value(key),
			Message: formatWarning(fe),
		})
	}
	return out
}

func formatWarning(fe validator.FieldError) string {
	switch fe.Tag() {
	case "url":
		return "is not a valid URL"
	case "oneof":
		return fmt.Sprintf("should be one of [%s]", fe.Param())
	case "gt":
		return fmt.Sprintf("should be greater than %s", fe.Param())
	case "bcp47_language_tag":
		return "is not a valid language tag"
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
