// Package validator envuelve go-playground/validator con las reglas propias del registro de stock.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describe un campo que no pasó la validación.
type FieldError struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"value,omitempty"`
}

func (e FieldError) String() string {
	if e.Value == "" {
		return fmt.Sprintf("%s (%s)", e.FailedField, e.Tag)
	}
	return fmt.Sprintf("%s (%s=%s)", e.FailedField, e.Tag, e.Value)
}

var validate = validator.New()

func init() {
	// direction: "in" u "out"
	_ = validate.RegisterValidation("direction", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "in", "out":
			return true
		}
		return false
	})
	// notblank: texto con al menos un carácter distinto de espacio
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// ValidateStruct valida data según sus tags `validate`. Devuelve nil si es válido.
func ValidateStruct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{FailedField: "body", Tag: "invalid"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			FailedField: fe.StructNamespace(),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}
	return out
}

// Describe resume los errores en una sola línea.
func Describe(errs []FieldError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
