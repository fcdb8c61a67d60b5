// Package validation reúne las comprobaciones de entrada comunes a los servicios:
// presencia de campos, formato de email y teléfono, números no negativos y saneamiento de strings.
// Todos los fallos son errores de dominio de tipo validación (HTTP 400).
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

	validate = newValidator()
	upper    = cases.Upper(language.Und)
	lower    = cases.Lower(language.Und)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Nombres de campo según el tag json, así los mensajes coinciden con el cuerpo de la request.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("email_address", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}

// Required falla si value está vacío.
func Required(value, field string) error {
	if value == "" {
		return domain.NewValidationError("%s is required", field)
	}
	return nil
}

// Email indica si email tiene forma local@dominio.tld.
func Email(email string) bool {
	return validate.Var(email, "email_address") == nil
}

// Phone indica si phone contiene solo dígitos, espacios, guiones y paréntesis, con '+' inicial opcional.
func Phone(phone string) bool {
	return validate.Var(phone, "phone") == nil
}

// CheckEmail devuelve error de validación si email no tiene formato válido.
func CheckEmail(email string) error {
	if !Email(email) {
		return domain.NewValidationError("Invalid email format")
	}
	return nil
}

// CheckPhone devuelve error de validación si phone no tiene formato válido.
func CheckPhone(phone string) error {
	if !Phone(phone) {
		return domain.NewValidationError("Invalid phone number format")
	}
	return nil
}

// NonNegative falla si value < 0.
func NonNegative(value decimal.Decimal, field string) error {
	if value.IsNegative() {
		return domain.NewValidationError("%s must be a positive number", field)
	}
	return nil
}

// NonNegativeInt falla si value < 0.
func NonNegativeInt(value int64, field string) error {
	if value < 0 {
		return domain.NewValidationError("%s must be a positive number", field)
	}
	return nil
}

// Positive falla si value <= 0.
func Positive(value int64, field string) error {
	if value <= 0 {
		return domain.NewValidationError("%s must be greater than zero", field)
	}
	return nil
}

// Struct valida los tags `validate` de v y devuelve el primer fallo como error de dominio.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError("invalid request body")
	}
	return domain.NewValidationError("%s", message(verrs[0]))
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email_address":
		return "Invalid email format"
	case "phone":
		return "Invalid phone number format"
	case "gte", "min":
		return e.Field() + " must be greater than or equal to " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}

// Sanitize elimina espacios al inicio y al final.
func Sanitize(s string) string {
	return strings.TrimSpace(s)
}

// Upper sanea y pasa a mayúsculas (SKU).
func Upper(s string) string {
	return upper.String(strings.TrimSpace(s))
}

// Lower sanea y pasa a minúsculas (emails).
func Lower(s string) string {
	return lower.String(strings.TrimSpace(s))
}
