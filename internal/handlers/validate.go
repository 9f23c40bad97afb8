package handlers

import (
	"math"
	"strings"
	"time"

	"github.com/rhteam/contratos-rh/internal/models"
	"github.com/rhteam/contratos-rh/internal/utils"
)

// Limites de tamanho dos campos de texto.
const (
	maxLenNome   = 100
	maxLenRG     = 20
	maxLenRua    = 200
	maxLenBairro = 100
	maxLenCidade = 100
	maxLenCargo  = 100
)

const (
	minIdade   = 16
	maxIdade   = 100
	maxSalario = 999999.99
)

const dateInputLayout = "2006-01-02"

// ValidationError acumula os campos que violaram alguma restrição.
type ValidationError struct {
	Campos []string
}

func (e *ValidationError) Error() string {
	return "campos inválidos: " + strings.Join(e.Campos, ", ")
}

func inSet(v string, set []string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

// salário com no máximo 2 casas decimais
func validSalario(s float64) bool {
	if s < 0 || s > maxSalario {
		return false
	}
	cents := s * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}

func validDate(s string) bool {
	_, err := time.Parse(dateInputLayout, s)
	return err == nil
}

func validateCreateDTO(d FuncionarioCreateDTO) *ValidationError {
	var campos []string

	if d.Nome == "" || len([]rune(d.Nome)) > maxLenNome {
		campos = append(campos, "nome")
	}
	if !utils.ValidCPF(d.CPF) {
		campos = append(campos, "cpf")
	}
	if d.RG == "" || len([]rune(d.RG)) > maxLenRG {
		campos = append(campos, "rg")
	}
	if d.Idade < minIdade || d.Idade > maxIdade {
		campos = append(campos, "idade")
	}
	if !inSet(d.EstadoCivil, models.EstadosCivis) {
		campos = append(campos, "estado_civil")
	}
	if !inSet(d.Sexo, models.Sexos) {
		campos = append(campos, "sexo")
	}
	if d.DataNascimento != "" && !validDate(d.DataNascimento) {
		campos = append(campos, "data_nascimento")
	}
	if len([]rune(d.Rua)) > maxLenRua {
		campos = append(campos, "rua")
	}
	if len([]rune(d.Bairro)) > maxLenBairro {
		campos = append(campos, "bairro")
	}
	if len([]rune(d.Cidade)) > maxLenCidade {
		campos = append(campos, "cidade")
	}
	if d.CEP != "" && !utils.ValidCEP(d.CEP) {
		campos = append(campos, "cep")
	}
	if d.Estado != "" && !inSet(d.Estado, models.Estados) {
		campos = append(campos, "estado")
	}
	if d.DataEntrada != "" && !validDate(d.DataEntrada) {
		campos = append(campos, "data_entrada")
	}
	if len([]rune(d.Cargo)) > maxLenCargo {
		campos = append(campos, "cargo")
	}
	if !validSalario(d.Salario) {
		campos = append(campos, "salario")
	}

	if len(campos) > 0 {
		return &ValidationError{Campos: campos}
	}
	return nil
}

func validatePatchDTO(d FuncionarioPatchDTO) *ValidationError {
	var campos []string

	if d.Nome != nil && (*d.Nome == "" || len([]rune(*d.Nome)) > maxLenNome) {
		campos = append(campos, "nome")
	}
	if d.CPF != nil && !utils.ValidCPF(*d.CPF) {
		campos = append(campos, "cpf")
	}
	if d.RG != nil && (*d.RG == "" || len([]rune(*d.RG)) > maxLenRG) {
		campos = append(campos, "rg")
	}
	if d.Idade != nil && (*d.Idade < minIdade || *d.Idade > maxIdade) {
		campos = append(campos, "idade")
	}
	if d.EstadoCivil != nil && !inSet(*d.EstadoCivil, models.EstadosCivis) {
		campos = append(campos, "estado_civil")
	}
	if d.Sexo != nil && !inSet(*d.Sexo, models.Sexos) {
		campos = append(campos, "sexo")
	}
	if d.DataNascimento != nil && !validDate(*d.DataNascimento) {
		campos = append(campos, "data_nascimento")
	}
	if d.Rua != nil && len([]rune(*d.Rua)) > maxLenRua {
		campos = append(campos, "rua")
	}
	if d.Bairro != nil && len([]rune(*d.Bairro)) > maxLenBairro {
		campos = append(campos, "bairro")
	}
	if d.Cidade != nil && len([]rune(*d.Cidade)) > maxLenCidade {
		campos = append(campos, "cidade")
	}
	if d.CEP != nil && !utils.ValidCEP(*d.CEP) {
		campos = append(campos, "cep")
	}
	if d.Estado != nil && !inSet(*d.Estado, models.Estados) {
		campos = append(campos, "estado")
	}
	if d.DataEntrada != nil && !validDate(*d.DataEntrada) {
		campos = append(campos, "data_entrada")
	}
	if d.Cargo != nil && len([]rune(*d.Cargo)) > maxLenCargo {
		campos = append(campos, "cargo")
	}
	if d.Salario != nil && !validSalario(*d.Salario) {
		campos = append(campos, "salario")
	}

	if len(campos) > 0 {
		return &ValidationError{Campos: campos}
	}
	return nil
}
