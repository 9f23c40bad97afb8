package utils

import "regexp"

var (
	cpfRe = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cepRe = regexp.MustCompile(`^\d{5}-\d{3}$`)
)

// ValidCPF valida apenas o FORMATO (000.000.000-00); dígitos verificadores
// ficam fora do escopo do cadastro.
func ValidCPF(cpf string) bool {
	return cpfRe.MatchString(cpf)
}

// ValidCEP valida o formato 00000-000.
func ValidCEP(cep string) bool {
	return cepRe.MatchString(cep)
}
