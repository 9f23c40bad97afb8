package contract

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rhteam/contratos-rh/internal/config"
	"github.com/rhteam/contratos-rh/internal/models"
	"github.com/rhteam/contratos-rh/internal/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

var ErrTemplateNotFound = errors.New("template de contrato não encontrado")

// Valores padrão injetados em todo contrato.
const (
	defaultCargaHoraria = "40"
	defaultDiasSemana   = "Segunda a Sexta"
	defaultCTPS         = "Nº da CTPS"
)

// Referência de stylesheet externo que os templates carregam; na geração do
// PDF ela é trocada pelo CSS inline para o documento não depender de assets.
const stylesheetLink = `<link rel="stylesheet" href="/static/css/contratos.css">`

const inlineCSS = `<style>
    body {
        font-family: Arial, sans-serif;
        line-height: 1.6;
        margin: 20px;
        color: #333;
    }
    h1 {
        text-align: center;
        color: #2c3e50;
        border-bottom: 2px solid #3498db;
        padding-bottom: 10px;
    }
    h3 {
        color: #2c3e50;
        border-bottom: 1px solid #bdc3c7;
        padding-bottom: 5px;
    }
    .contrato {
        max-width: 800px;
        margin: 0 auto;
    }
    .dados-pessoais {
        background-color: #f8f9fa;
        padding: 15px;
        border-radius: 5px;
        margin-bottom: 20px;
    }
    .dados-pessoais p {
        margin: 5px 0;
    }
    .assinaturas {
        display: flex;
        justify-content: space-between;
        margin-top: 40px;
        margin-bottom: 20px;
    }
    .assinatura {
        text-align: center;
        width: 45%;
    }
    .assinatura strong {
        display: block;
        margin-top: 10px;
    }
    p {
        text-align: justify;
        margin-bottom: 15px;
    }
    strong {
        color: #2c3e50;
    }
</style>`

// Resolver carrega o template de um tipo de contrato e substitui os
// marcadores [campo] pelos dados do funcionário e da empresa.
type Resolver struct {
	empresa config.Empresa
	now     func() time.Time
}

func NewResolver(empresa config.Empresa) *Resolver {
	return &Resolver{empresa: empresa, now: time.Now}
}

func (r *Resolver) Resolve(tipoContrato string, f *models.Funcionario) (string, error) {
	raw, err := templatesFS.ReadFile("templates/" + tipoContrato + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, tipoContrato)
	}
	html := strings.Replace(string(raw), stylesheetLink, inlineCSS, 1)
	return Substitute(html, r.Dados(f)), nil
}

// Substitute troca cada token literal [campo] pelo valor correspondente.
// Tokens sem valor no mapa ficam como estão, sem erro.
func Substitute(template string, dados map[string]string) string {
	for campo, valor := range dados {
		template = strings.ReplaceAll(template, "["+campo+"]", valor)
	}
	return template
}

// Dados monta o mapa de substituição a partir do funcionário, da configuração
// da empresa e dos defaults fixos.
func (r *Resolver) Dados(f *models.Funcionario) map[string]string {
	return map[string]string{
		"nome_empresa":     r.empresa.Nome,
		"cnpj":             r.empresa.CNPJ,
		"endereco_empresa": r.empresa.Endereco,

		"nome_funcionario": f.Nome,
		"data_nascimento":  utils.FormatDate(f.DataNascimento),
		"sexo":             f.Sexo,
		"rg":               f.RG,
		"ctps":             defaultCTPS,
		"cargo":            f.Cargo,
		"carga_horaria":    defaultCargaHoraria,
		"dias_semana":      defaultDiasSemana,
		"salario":          utils.FormatCurrency(f.Salario),
		"data_inicio":      utils.FormatDate(f.DataEntrada),
		"cidade":           f.Cidade,
		"cpf":              f.CPF,
		"estado_civil":     f.EstadoCivil,
		"endereco":         utils.BuildAddress(f.Rua, f.Bairro, f.Cidade, f.Estado, f.CEP),
		"idade":            fmt.Sprintf("%d", f.Idade),

		"data": r.now().Format(utils.DisplayDateLayout),
	}
}
