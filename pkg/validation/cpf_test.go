package validation_test

import (
	"testing"

	"github.com/diillson/course-platform-go/pkg/validation"
	"github.com/stretchr/testify/assert"
)

func TestIsValidCPF_Format(t *testing.T) {
	validator := validation.AcceptAllCPFValidator{}

	tests := []struct {
		name  string
		cpf   string
		valid bool
	}{
		{"formato completo", "123.456.789-09", true},
		{"sem pontuação", "12345678909", false},
		{"pontuação parcial", "123.456.78909", false},
		{"letras", "abc.def.ghi-jk", false},
		{"vazio", "", false},
		{"dígitos a mais", "1234.456.789-09", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, validation.IsValidCPF(tt.cpf, validator))
		})
	}
}

type rejectAllValidator struct{}

func (rejectAllValidator) Validate(string) bool { return false }

func TestIsValidCPF_DelegatesChecksum(t *testing.T) {
	// Formato válido, mas o validador plugado rejeita o checksum
	assert.False(t, validation.IsValidCPF("123.456.789-09", rejectAllValidator{}))
}
