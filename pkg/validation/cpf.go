package validation

import "regexp"

// CPFRegex valida o formato do CPF: 000.000.000-00
var CPFRegex = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}\-\d{2}$`)

// CPFValidator valida os dígitos verificadores de um CPF já no formato
// correto. A implementação padrão aceita qualquer valor; uma validação de
// checksum real pode ser plugada sem tocar nos serviços.
type CPFValidator interface {
	Validate(cpf string) bool
}

// AcceptAllCPFValidator aceita qualquer CPF com formato válido
type AcceptAllCPFValidator struct{}

// Validate sempre retorna verdadeiro
func (AcceptAllCPFValidator) Validate(cpf string) bool {
	return true
}

// IsValidCPF verifica formato e checksum usando o validador dado
func IsValidCPF(cpf string, validator CPFValidator) bool {
	if !CPFRegex.MatchString(cpf) {
		return false
	}
	return validator.Validate(cpf)
}
