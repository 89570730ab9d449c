package validation

import (
	"reflect" // For struct tag lookup
	"strings" // String manipulation

	"github.com/go-playground/validator/v10" // Struct validation
)

// Errors maps a field name to the message describing why it was rejected
type Errors map[string]string

// Error implements the error interface
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+" "+msg)
	}
	return strings.Join(parts, "; ")
}

var validate = newValidator()

// newValidator builds a validator that reports fields by their json names
func newValidator() *validator.Validate {
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

// Struct checks s against its validate tags. It is a pure function of its
// input: it returns nil when s is valid and an Errors value otherwise.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	errs := Errors{}
	for _, fe := range fieldErrs {
		errs[fe.Field()] = message(fe)
	}
	return errs
}

// message translates a single failed rule into a human-readable string
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
