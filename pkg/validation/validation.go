package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "carteira/pkg/domain-errors"
)

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// Report fields by their localized label so messages can go straight to the form.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	return v
}

// Validate checks req against its `validate` tags. Every field failing a
// presence rule is collected into a single missing_fields error, in field
// order; otherwise the first failing rule is reported as validation_failed.
func Validate(req any) error {
	err := defaultValidator.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "requisição inválida")
	}

	var missing []string
	for _, fe := range validationErrs {
		if isPresenceRule(fe.ActualTag()) {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) > 0 {
		return dErrors.NewMissingFields(MissingMessage(missing), missing)
	}

	return dErrors.New(dErrors.CodeValidation, ErrorMessage(err))
}

// MissingMessage renders the message for a set of missing field labels.
func MissingMessage(labels []string) string {
	if len(labels) == 1 {
		return "Campo obrigatório: " + labels[0]
	}
	return "Campos obrigatórios: " + strings.Join(labels, ", ")
}

func isPresenceRule(tag string) bool {
	switch tag {
	case "required", "notblank", "required_if", "required_unless", "required_with":
		return true
	}
	return false
}

// ErrorMessage converts a validator error into a human-readable pt-BR message.
func ErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "requisição inválida"
	}

	fe := validationErrs[0]
	field := fe.Field()

	switch fe.ActualTag() {
	case "email":
		return fmt.Sprintf("%s deve ser um e-mail válido", field)
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s deve ter no mínimo %s caracteres", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s deve ser um de [%s]", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s deve estar no formato AAAA-MM-DD", field)
	default:
		return fmt.Sprintf("%s é inválido", field)
	}
}
