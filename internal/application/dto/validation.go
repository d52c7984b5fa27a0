package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/mf-comercial/internal/domain/derive"
)

// NewValidator validador con las reglas propias de la consola registradas.
// Los nombres de campo en los errores son los del JSON.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := RegisterCustomValidations(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterCustomValidations registra las reglas "pi" y "period".
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("pi", isPI); err != nil {
		return err
	}
	if err := v.RegisterValidation("period", isPeriod); err != nil {
		return err
	}
	return nil
}

func isPI(fl validator.FieldLevel) bool {
	_, err := derive.ValidatePI(fl.Field().String())
	return err == nil
}

func isPeriod(fl validator.FieldLevel) bool {
	return derive.ValidPeriod(fl.Field().String())
}

// ValidationFields traduce los errores del validador a campo → mensaje.
// Devuelve nil si err no es de validación.
func ValidationFields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "pi":
		return "formato de PI inválido (ej: 12345 o 1234-12345)"
	case "period":
		return "se espera un periodo YYYY-MM"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "min", "gte":
		return "mínimo " + fe.Param()
	default:
		return fmt.Sprintf("no cumple la regla %s", fe.Tag())
	}
}
