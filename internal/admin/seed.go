package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/rhteam/contratos-rh/internal/models"
	"github.com/rhteam/contratos-rh/internal/repository"
	"github.com/rhteam/contratos-rh/internal/utils"
)

//go:embed seeds/funcionarios.json
var funcionariosJSON []byte

type seedItem struct {
	Nome           string  `json:"nome"`
	CPF            string  `json:"cpf"`
	RG             string  `json:"rg"`
	Idade          int     `json:"idade"`
	EstadoCivil    string  `json:"estado_civil"`
	Sexo           string  `json:"sexo"`
	DataNascimento string  `json:"data_nascimento"`
	Rua            string  `json:"rua"`
	Bairro         string  `json:"bairro"`
	Cidade         string  `json:"cidade"`
	CEP            string  `json:"cep"`
	Estado         string  `json:"estado"`
	DataEntrada    string  `json:"data_entrada"`
	Cargo          string  `json:"cargo"`
	Salario        float64 `json:"salario"`
}

func parseSeedDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// Idempotente: cria se não existir; CPF duplicado é ignorado.
func SeedFuncionarios(ctx context.Context, repo *repository.FuncionarioRepository, log *slog.Logger) error {
	var items []seedItem
	if err := json.Unmarshal(funcionariosJSON, &items); err != nil {
		return err
	}

	for _, s := range items {
		if !utils.ValidCPF(s.CPF) {
			log.Warn("seed_skip_invalid_cpf", "raw", s.CPF)
			continue
		}

		f := models.Funcionario{
			Nome:           s.Nome,
			CPF:            s.CPF,
			RG:             s.RG,
			Idade:          s.Idade,
			EstadoCivil:    s.EstadoCivil,
			Sexo:           s.Sexo,
			DataNascimento: parseSeedDate(s.DataNascimento),
			Rua:            s.Rua,
			Bairro:         s.Bairro,
			Cidade:         s.Cidade,
			CEP:            s.CEP,
			Estado:         s.Estado,
			DataEntrada:    parseSeedDate(s.DataEntrada),
			Cargo:          s.Cargo,
			Salario:        s.Salario,
		}

		// timeout curto por item pra não travar
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		_, err := repo.Create(ictx, &f)
		cancel()

		if err != nil {
			if errors.Is(err, repository.ErrDuplicateCPF) {
				log.Info("seed_funcionario_exists", "cpf", s.CPF)
				continue
			}
			return err
		}
		log.Info("seed_funcionario_created", "nome", s.Nome)
	}
	return nil
}
