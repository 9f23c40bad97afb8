package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rhteam/contratos-rh/internal/models"
)

// Formato de exibição de datas no padrão brasileiro.
const DisplayDateLayout = "02/01/2006"

// Formato de timestamp usado na composição de nomes de arquivo.
const FilenameTimestampLayout = "20060102150405"

// SanitizeFilename troca qualquer caractere fora de [A-Za-z0-9] por "_",
// colapsa underscores consecutivos e remove os das pontas.
// Ex.: "João Costa" -> "Jo_o_Costa"
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	out := b.String()
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return strings.Trim(out, "_")
}

// UniqueFilename monta "<base sanitizada>_<YYYYMMDDHHMMSS><ext>".
func UniqueFilename(base, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s%s", SanitizeFilename(base), now.Format(FilenameTimestampLayout), ext)
}

// FormatCurrency formata em Real, sempre com 2 casas. Ex.: "R$ 2500.50"
func FormatCurrency(value float64) string {
	return fmt.Sprintf("R$ %.2f", value)
}

// FormatDate exibe dd/mm/yyyy; data ausente vira string vazia, nunca erro.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DisplayDateLayout)
}

// BuildAddress monta o endereço completo de um funcionário.
// Ex.: "Rua das Flores, Centro, São Paulo - SP, CEP: 01234-567"
func BuildAddress(rua, bairro, cidade, estado, cep string) string {
	if rua == "" {
		return ""
	}
	parts := []string{rua, bairro, fmt.Sprintf("%s - %s", cidade, estado), fmt.Sprintf("CEP: %s", cep)}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

// ContractTypeFromFilename recupera o tipo de contrato pelo prefixo do nome
// do arquivo gerado. Prefixo desconhecido cai no contrato de entrada
// (comportamento herdado; ver chamador que loga o fallback).
func ContractTypeFromFilename(filename string) string {
	switch {
	case strings.HasPrefix(filename, models.TipoContratoEntrada+"_"):
		return models.TipoContratoEntrada
	case strings.HasPrefix(filename, models.TipoTermoUso+"_"):
		return models.TipoTermoUso
	case strings.HasPrefix(filename, models.TipoSindicato+"_"):
		return models.TipoSindicato
	default:
		return models.TipoContratoEntrada
	}
}

// ValidFileExtension compara a extensão (case-insensitive) com a lista permitida.
func ValidFileExtension(filename string, allowed []string) bool {
	if filename == "" {
		return false
	}
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	ext := strings.ToLower(filename[idx:])
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// EnsureDir cria o diretório se não existir.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
