package usecase

import (
	"fmt"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Nome) == "" {
		errors = append(errors, ValidationError{"nome", "is required"})
	} else if len(input.Nome) > 200 {
		errors = append(errors, ValidationError{"nome", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Origem) == "" {
		errors = append(errors, ValidationError{"origem", "is required"})
	}

	if input.Sexo != "" && !isValidSexo(input.Sexo) {
		errors = append(errors, ValidationError{"sexo", "must be M, F or I"})
	}

	if input.Classe != "" && !isValidClasse(input.Classe) {
		errors = append(errors, ValidationError{"classe", "must be A, B, C, D or E"})
	}

	if input.AnoNascimento != nil && !isValidAnoNascimento(*input.AnoNascimento) {
		errors = append(errors, ValidationError{"ano_nascimento", "must be a plausible year"})
	}

	if input.UF != "" && len(strings.TrimSpace(input.UF)) != 2 {
		errors = append(errors, ValidationError{"uf", "must be a 2-letter state code"})
	}

	return errors
}

func isValidSexo(sexo string) bool {
	s := strings.ToUpper(strings.TrimSpace(sexo))
	return s == "M" || s == "F" || s == "I"
}

func isValidClasse(classe string) bool {
	c := strings.ToUpper(strings.TrimSpace(classe))
	return c == "A" || c == "B" || c == "C" || c == "D" || c == "E"
}

func isValidAnoNascimento(ano int) bool {
	return ano >= 1900 && ano <= time.Now().Year()
}

func joinValidationErrors(errs []ValidationError) string {
	msg := "validation failed: "
	for _, e := range errs {
		msg += e.Field + " (" + e.Message + "), "
	}
	return msg
}
