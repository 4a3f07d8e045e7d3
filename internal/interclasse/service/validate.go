package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/projetointerclasse/interclasse/internal/interclasse/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has a local@domain.tld shape.
func ValidEmail(s string) bool { return emailPattern.MatchString(s) }

// ValidDOB reports whether dob (YYYY-MM-DD) falls between 70 and 10 years
// before today, both ends inclusive.
func ValidDOB(dob string, now time.Time) bool {
	d, err := time.Parse(domain.DateLayout, dob)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	oldest := today.AddDate(-70, 0, 0)
	youngest := today.AddDate(-10, 0, 0)
	return !d.Before(oldest) && !d.After(youngest)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// structFieldErrors runs tag validation and converts failures to FieldErrors.
func structFieldErrors(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		fe[e.Field()] = tagMessage(e.Tag())
	}
	return fe
}

func tagMessage(tag string) string {
	switch tag {
	case "required":
		return "Campo obrigatório"
	case "min":
		return "Valor muito curto"
	case "oneof":
		return "Opção inválida"
	case "datetime":
		return "Data inválida"
	case "nefield":
		return "Deve ser diferente"
	default:
		return "Valor inválido"
	}
}
