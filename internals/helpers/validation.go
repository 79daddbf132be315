package helper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator reports json field names instead of Go field names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldErrors holds domain validation failures keyed by json field.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msgs := range fe {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// ValidationErrors turns a validator or FieldErrors error into a field map.
// It returns nil when err is neither.
func ValidationErrors(err error) map[string][]string {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string][]string, len(ve))
	for _, e := range ve {
		out[e.Field()] = append(out[e.Field()], describeTag(e))
	}
	return out
}

func describeTag(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + e.Param()
	case "datetime":
		return "must match layout " + e.Param()
	default:
		return "failed " + e.Tag()
	}
}
