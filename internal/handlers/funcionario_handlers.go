package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/rhteam/contratos-rh/internal/models"
	"github.com/rhteam/contratos-rh/internal/repository"
	"github.com/rhteam/contratos-rh/internal/utils"
)

type FuncionarioRepo interface {
	Create(ctx context.Context, f *models.Funcionario) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Funcionario, error)
	GetAll(ctx context.Context) ([]models.Funcionario, error)
	Search(ctx context.Context, query string, numericID int64, byID bool, limit int64) ([]models.Funcionario, error)
	Update(ctx context.Context, id int64, f *models.Funcionario) error
}

type ContratoReader interface {
	GetByID(ctx context.Context, id int64) (*models.Contrato, error)
	GetByFuncionario(ctx context.Context, funcionarioID int64) ([]models.Contrato, error)
	FindByArquivo(ctx context.Context, filename string) (*models.Contrato, error)
}

type Publisher interface {
	Publish(ctx context.Context, body string, headers amqp.Table) error
	Close() error
}

type FuncionarioHandler struct {
	Repo      FuncionarioRepo
	Contratos ContratoReader
	Pub       Publisher

	SearchMaxResults     int
	SearchMinQueryLength int
}

func (h *FuncionarioHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /buscar_funcionario?q= — typeahead do UI. Query vazia ou abaixo do
// mínimo devolve lista vazia, nunca erro.
func (h *FuncionarioHandler) Buscar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	minLen := h.SearchMinQueryLength
	if minLen <= 0 {
		minLen = 2
	}
	if query == "" || len([]rune(query)) < minLen {
		utils.WriteJSON(w, http.StatusOK, []BuscaItemDTO{})
		return
	}

	maxResults := h.SearchMaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	// consulta só de dígitos também tenta casar o ID exato
	numericID, numErr := strconv.ParseInt(query, 10, 64)
	byID := numErr == nil

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.Repo.Search(ctx, query, numericID, byID, int64(maxResults))
	if err != nil {
		// como no sistema legado, falha de busca vira lista vazia
		slog.Error("funcionario_search_error", "query", query, "err", err)
		utils.WriteJSON(w, http.StatusOK, []BuscaItemDTO{})
		return
	}

	items := make([]BuscaItemDTO, 0, len(list))
	for _, f := range list {
		items = append(items, BuscaItemDTO{ID: f.ID, Nome: f.Nome})
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

// GET/POST /cadastrar_funcionario — GET devolve o "schema" do formulário
// (listas de opções dos enums); POST cria o funcionário.
func (h *FuncionarioHandler) Cadastrar(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		utils.WriteJSON(w, http.StatusOK, map[string]any{
			"estados_civis":   models.EstadosCivis,
			"sexos":           models.Sexos,
			"estados":         models.Estados,
			"tipos_contrato":  models.TiposContrato,
			"idade_minima":    minIdade,
			"idade_maxima":    maxIdade,
			"salario_maximo":  maxSalario,
			"formato_cpf":     "000.000.000-00",
			"formato_cep":     "00000-000",
			"formato_data":    dateInputLayout,
		})

	case http.MethodPost:
		var dto FuncionarioCreateDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, utils.FormatUnknownFieldError(err))
			return
		}
		if verr := validateCreateDTO(dto); verr != nil {
			utils.WriteJSON(w, http.StatusBadRequest, map[string]any{
				"error":  verr.Error(),
				"campos": verr.Campos,
			})
			return
		}

		f := models.Funcionario{
			Nome:           dto.Nome,
			CPF:            dto.CPF,
			RG:             dto.RG,
			Idade:          dto.Idade,
			EstadoCivil:    dto.EstadoCivil,
			Sexo:           dto.Sexo,
			DataNascimento: parseDate(dto.DataNascimento),
			Rua:            dto.Rua,
			Bairro:         dto.Bairro,
			Cidade:         dto.Cidade,
			CEP:            dto.CEP,
			Estado:         dto.Estado,
			DataEntrada:    parseDate(dto.DataEntrada),
			Cargo:          dto.Cargo,
			Salario:        dto.Salario,
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		id, err := h.Repo.Create(ctx, &f)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateCPF) {
				utils.WriteJSON(w, http.StatusConflict, map[string]any{
					"error":  "cpf already exists",
					"campos": []string{"cpf"},
				})
				return
			}
			utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		f.ID = id

		h.publishEvent("Cadastro", &f)
		utils.WriteJSON(w, http.StatusCreated, f)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// GET /listar_funcionarios — todos os funcionários, datas dd/mm/yyyy.
func (h *FuncionarioHandler) Listar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	list, err := h.Repo.GetAll(ctx)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	items := make([]FuncionarioListItemDTO, 0, len(list))
	for _, f := range list {
		items = append(items, toListItem(f))
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

// garantir que a requisição venha no padrão /funcionario/{id} ou
// /funcionario/{id}/contratos
func parseFuncionarioPath(path string) (id int64, contratos bool, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] != "funcionario" {
		return 0, false, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, false, false
	}
	switch len(parts) {
	case 2:
		return id, false, true
	case 3:
		if parts[2] == "contratos" {
			return id, true, true
		}
	}
	return 0, false, false
}

// GET /funcionario/{id} | GET /funcionario/{id}/contratos | PATCH /funcionario/{id}
func (h *FuncionarioHandler) FuncionarioByID(w http.ResponseWriter, r *http.Request) {
	id, wantContratos, ok := parseFuncionarioPath(r.URL.Path)
	if !ok {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	switch {
	case r.Method == http.MethodGet && wantContratos:
		h.contratosDoFuncionario(w, r, id)

	case r.Method == http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		f, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": msgFuncionarioNaoEncontrado})
			return
		}
		utils.WriteJSON(w, http.StatusOK, f)

	case r.Method == http.MethodPatch && !wantContratos:
		h.patchFuncionario(w, r, id)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *FuncionarioHandler) contratosDoFuncionario(w http.ResponseWriter, r *http.Request, id int64) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	f, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": msgFuncionarioNaoEncontrado})
		return
	}

	contratos, err := h.Contratos.GetByFuncionario(ctx, id)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"funcionario": f,
		"contratos":   contratos,
	})
}

func (h *FuncionarioHandler) patchFuncionario(w http.ResponseWriter, r *http.Request, id int64) {
	var dto FuncionarioPatchDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return
	}
	if verr := validatePatchDTO(dto); verr != nil {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"error":  verr.Error(),
			"campos": verr.Campos,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Repo.GetByID(ctx, id); err != nil {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": msgFuncionarioNaoEncontrado})
		return
	}

	// monta o modelo só com os campos presentes
	upd := models.Funcionario{}
	if dto.Nome != nil {
		upd.Nome = *dto.Nome
	}
	if dto.CPF != nil {
		upd.CPF = *dto.CPF
	}
	if dto.RG != nil {
		upd.RG = *dto.RG
	}
	if dto.Idade != nil {
		upd.Idade = *dto.Idade
	}
	if dto.EstadoCivil != nil {
		upd.EstadoCivil = *dto.EstadoCivil
	}
	if dto.Sexo != nil {
		upd.Sexo = *dto.Sexo
	}
	if dto.DataNascimento != nil {
		upd.DataNascimento = parseDate(*dto.DataNascimento)
	}
	if dto.Rua != nil {
		upd.Rua = *dto.Rua
	}
	if dto.Bairro != nil {
		upd.Bairro = *dto.Bairro
	}
	if dto.Cidade != nil {
		upd.Cidade = *dto.Cidade
	}
	if dto.CEP != nil {
		upd.CEP = *dto.CEP
	}
	if dto.Estado != nil {
		upd.Estado = *dto.Estado
	}
	if dto.DataEntrada != nil {
		upd.DataEntrada = parseDate(*dto.DataEntrada)
	}
	if dto.Cargo != nil {
		upd.Cargo = *dto.Cargo
	}
	if dto.Salario != nil {
		upd.Salario = *dto.Salario
	}

	if err := h.Repo.Update(ctx, id, &upd); err != nil {
		if errors.Is(err, repository.ErrDuplicateCPF) {
			utils.WriteJSON(w, http.StatusConflict, map[string]any{
				"error":  "cpf already exists",
				"campos": []string{"cpf"},
			})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// devolve o doc atualizado
	f2, _ := h.Repo.GetByID(ctx, id)
	if f2 != nil {
		h.publishEvent("Edição", f2)
		utils.WriteJSON(w, http.StatusOK, f2)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *FuncionarioHandler) publishEvent(acao string, f *models.Funcionario) {
	if h.Pub == nil || f == nil {
		return
	}
	msg := fmt.Sprintf("%s de FUNCIONÁRIO %s", acao, f.Nome)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_ = h.Pub.Publish(ctx, msg, amqp.Table{
		"action":         strings.ToLower(acao), // cadastro|edição
		"funcionario_id": f.ID,
		"cpf":            f.CPF,
		"nome":           f.Nome,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateInputLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func toListItem(f models.Funcionario) FuncionarioListItemDTO {
	return FuncionarioListItemDTO{
		ID:             f.ID,
		Nome:           f.Nome,
		CPF:            f.CPF,
		RG:             f.RG,
		Idade:          f.Idade,
		EstadoCivil:    f.EstadoCivil,
		Sexo:           f.Sexo,
		DataNascimento: utils.FormatDate(f.DataNascimento),
		Rua:            f.Rua,
		Bairro:         f.Bairro,
		Cidade:         f.Cidade,
		CEP:            f.CEP,
		Estado:         f.Estado,
		DataEntrada:    utils.FormatDate(f.DataEntrada),
		Cargo:          f.Cargo,
		Salario:        f.Salario,
	}
}
