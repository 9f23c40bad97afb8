package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rhteam/contratos-rh/internal/models"
	"github.com/rhteam/contratos-rh/internal/repository"
)

/*
RODAR TODOS OS TESTES:

go test -v ./internal/handlers -count=1
*/

func novoFuncionarioHandler(rm *funcionarioRepoMock, cm *contratoReaderMock) *FuncionarioHandler {
	return &FuncionarioHandler{
		Repo:                 rm,
		Contratos:            cm,
		Pub:                  &pubMock{},
		SearchMaxResults:     10,
		SearchMinQueryLength: 2,
	}
}

func payloadValido() map[string]any {
	return map[string]any{
		"nome":            "Ana Silva",
		"cpf":             "123.456.789-01",
		"rg":              "12.345.678-9",
		"idade":           29,
		"estado_civil":    "Solteiro",
		"sexo":            "Feminino",
		"data_nascimento": "1996-03-14",
		"rua":             "Rua das Flores, 100",
		"bairro":          "Centro",
		"cidade":          "São Paulo",
		"cep":             "01234-567",
		"estado":          "SP",
		"data_entrada":    "2023-02-01",
		"cargo":           "Analista de RH",
		"salario":         4500.00,
	}
}

// 1) GET /buscar_funcionario

func TestBuscar_QueryVaziaOuCurta(t *testing.T) {
	h := novoFuncionarioHandler(&funcionarioRepoMock{}, &contratoReaderMock{})

	for _, q := range []string{"", "a"} {
		req := httptest.NewRequest(http.MethodGet, "/buscar_funcionario?q="+q, nil)
		rr := httptest.NewRecorder()
		h.Buscar(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("q=%q status=%d want=%d", q, rr.Code, http.StatusOK)
		}
		var got []BuscaItemDTO
		if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
			t.Fatalf("json inválido: %v body=%s", err, rr.Body.String())
		}
		if len(got) != 0 {
			t.Fatalf("q=%q deveria ser lista vazia, got=%#v", q, got)
		}
	}
}

func TestBuscar_NumericaCasaPorIDOuNome(t *testing.T) {
	rm := &funcionarioRepoMock{
		SearchFn: func(_ context.Context, query string, numericID int64, byID bool, limit int64) ([]models.Funcionario, error) {
			if query != "42" || numericID != 42 || !byID {
				t.Fatalf("params: query=%q numericID=%d byID=%v", query, numericID, byID)
			}
			if limit != 10 {
				t.Fatalf("limit=%d want=10", limit)
			}
			return nil, nil
		},
	}
	h := novoFuncionarioHandler(rm, &contratoReaderMock{})

	req := httptest.NewRequest(http.MethodGet, "/buscar_funcionario?q=42", nil)
	rr := httptest.NewRecorder()
	h.Buscar(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusOK)
	}
	var got []BuscaItemDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("sem match deveria ser lista vazia, got=%#v", got)
	}
}

func TestBuscar_RetornaIDENome(t *testing.T) {
	rm := &funcionarioRepoMock{
		SearchFn: func(_ context.Context, query string, _ int64, byID bool, _ int64) ([]models.Funcionario, error) {
			if byID {
				t.Fatalf("query %q não é numérica, byID deveria ser false", query)
			}
			return []models.Funcionario{
				{ID: 1, Nome: "Ana Silva", CPF: "123.456.789-01"},
				{ID: 2, Nome: "Ana Souza", CPF: "987.654.321-00"},
			}, nil
		},
	}
	h := novoFuncionarioHandler(rm, &contratoReaderMock{})

	req := httptest.NewRequest(http.MethodGet, "/buscar_funcionario?q=Ana", nil)
	rr := httptest.NewRecorder()
	h.Buscar(rr, req)

	var got []BuscaItemDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if len(got) != 2 || got[0].Nome != "Ana Silva" || got[1].ID != 2 {
		t.Fatalf("payload inesperado: %#v", got)
	}
	// só id e nome no typeahead
	if strings.Contains(rr.Body.String(), "cpf") {
		t.Fatalf("typeahead não deveria expor cpf: %s", rr.Body.String())
	}
}

func TestBuscar_ErroDoRepoViraListaVazia(t *testing.T) {
	rm := &funcionarioRepoMock{
		SearchFn: func(_ context.Context, _ string, _ int64, _ bool, _ int64) ([]models.Funcionario, error) {
			return nil, errors.New("boom")
		},
	}
	h := novoFuncionarioHandler(rm, &contratoReaderMock{})

	req := httptest.NewRequest(http.MethodGet, "/buscar_funcionario?q=Ana", nil)
	rr := httptest.NewRecorder()
	h.Buscar(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusOK)
	}
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("body=%s want=[]", rr.Body.String())
	}
}

// 2) POST /cadastrar_funcionario

func TestCadastrar_Create(t *testing.T) {
	var created *models.Funcionario
	rm := &funcionarioRepoMock{
		CreateFn: func(_ context.Context, f *models.Funcionario) (int64, error) {
			created = f
			return 1, nil
		},
	}
	h := novoFuncionarioHandler(rm, &contratoReaderMock{})

	body, _ := json.Marshal(payloadValido())
	req := httptest.NewRequest(http.MethodPost, "/cadastrar_funcionario", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Cadastrar(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	if created == nil || created.Nome != "Ana Silva" || created.CPF != "123.456.789-01" {
		t.Fatalf("modelo inesperado: %#v", created)
	}
	if created.DataNascimento == nil || created.DataNascimento.Format("2006-01-02") != "1996-03-14" {
		t.Fatalf("data_nascimento não parseada: %#v", created.DataNascimento)
	}
}

func TestCadastrar_CamposInvalidos(t *testing.T) {
	h := novoFuncionarioHandler(&funcionarioRepoMock{}, &contratoReaderMock{})

	cases := []struct {
		campo string
		valor any
	}{
		{"cpf", "12345678901"},           // sem pontuação
		{"idade", 15},                    // abaixo do mínimo
		{"idade", 101},                   // acima do máximo
		{"estado_civil", "Comprometido"}, // fora do conjunto
		{"sexo", "X"},                    // fora do conjunto
		{"estado", "XX"},                 // UF inexistente
		{"cep", "123"},                   // formato inválido
		{"salario", 1000000.00},          // acima do teto
		{"salario", 10.999},              // mais de 2 casas
		{"nome", strings.Repeat("a", 101)},
		{"rg", strings.Repeat("1", 21)},
	}
	for _, tc := range cases {
		p := payloadValido()
		p[tc.campo] = tc.valor
		body, _ := json.Marshal(p)

		req := httptest.NewRequest(http.MethodPost, "/cadastrar_funcionario", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.Cadastrar(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("campo=%s valor=%v status=%d want=%d body=%s",
				tc.campo, tc.valor, rr.Code, http.StatusBadRequest, rr.Body.String())
		}
		var resp struct {
			Campos []string `json:"campos"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("json inválido: %v", err)
		}
		found := false
		for _, c := range resp.Campos {
			if c == tc.campo {
				found = true
			}
		}
		if !found {
			t.Fatalf("campo %s deveria estar em %v", tc.campo, resp.Campos)
		}
	}
}

func TestCadastrar_CPFDuplicado(t *testing.T) {
	rm := &funcionarioRepoMock{
		CreateFn: func(_ context.Context, _ *models.Funcionario) (int64, error) {
			return 0, repository.ErrDuplicateCPF
		},
	}
	h := novoFuncionarioHandler(rm, &contratoReaderMock{})

	body, _ := json.Marshal(payloadValido())
	req := httptest.NewRequest(http.MethodPost, "/cadastrar_funcionario", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Cadastrar(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusConflict, rr.Body.String())
	}
}

func TestCadastrar_CampoDesconhecido(t *testing.T) {
	h := novoFuncionarioHandler(&funcionarioRepoMock{}, &contratoReaderMock{})

	p := payloadValido()
	p["foo"] = "bar"
	body, _ := json.Marshal(p)

	req := httptest.NewRequest(http.MethodPost, "/cadastrar_funcionario", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Cadastrar(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusBadRequest)
	}
}

func TestCadastrar_GetDevolveSchema(t *testing.T) {
	h := novoFuncionarioHandler(&funcionarioRepoMock{}, &contratoReaderMock{})

	req := httptest.NewRequest(http.MethodGet, "/cadastrar_funcionario", nil)
	rr := httptest.NewRecorder()
	h.Cadastrar(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusOK)
	}
	var got map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if _, ok := got["estados_civis"]; !ok {
		t.Fatalf("schema sem estados_civis: %v", got)
	}
}

// 3) GET /listar_funcionarios

func TestListar_DatasFormatadas(t *testing.T) {
	nasc := time.Date(1996, 3, 14, 0, 0, 0, 0, time.UTC)
	rm := &funcionarioRepoMock{
		GetAllFn: func(_ context.Context) ([]models.Funcionario, error) {
			return []models.Funcionario{
				{ID: 1, Nome: "Ana Silva", DataNascimento: &nasc, Salario: 4500},
				{ID: 2, Nome: "João Costa"}, // sem datas
			}, nil
		},
	}
	h := novoFuncionarioHandler(rm, &contratoReaderMock{})

	req := httptest.NewRequest(http.MethodGet, "/listar_funcionarios", nil)
	rr := httptest.NewRecorder()
	h.Listar(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusOK)
	}
	var got []FuncionarioListItemDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len=%d want=2", len(got))
	}
	if got[0].DataNascimento != "14/03/1996" {
		t.Fatalf("data formatada=%q want=14/03/1996", got[0].DataNascimento)
	}
	if got[1].DataNascimento != "" {
		t.Fatalf("data ausente deveria ser vazia, got=%q", got[1].DataNascimento)
	}
}

// 4) GET /funcionario/{id} e /funcionario/{id}/contratos

func TestFuncionarioByID_Found(t *testing.T) {
	rm := &funcionarioRepoMock{
		GetByIDFn: func(_ context.Context, id int64) (*models.Funcionario, error) {
			if id != 7 {
				t.Fatalf("id=%d want=7", id)
			}
			return &models.Funcionario{ID: 7, Nome: "Ana Silva"}, nil
		},
	}
	h := novoFuncionarioHandler(rm, &contratoReaderMock{})

	req := httptest.NewRequest(http.MethodGet, "/funcionario/7", nil)
	rr := httptest.NewRecorder()
	h.FuncionarioByID(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestFuncionarioByID_NotFound(t *testing.T) {
	rm := &funcionarioRepoMock{
		GetByIDFn: func(_ context.Context, _ int64) (*models.Funcionario, error) {
			return nil, repository.ErrNotFound
		},
	}
	h := novoFuncionarioHandler(rm, &contratoReaderMock{})

	req := httptest.NewRequest(http.MethodGet, "/funcionario/99", nil)
	rr := httptest.NewRecorder()
	h.FuncionarioByID(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusNotFound)
	}
}

func TestFuncionarioByID_PathInvalido(t *testing.T) {
	h := novoFuncionarioHandler(&funcionarioRepoMock{}, &contratoReaderMock{})

	for _, p := range []string{"/funcionario/", "/funcionario/abc", "/funcionario/7/outra"} {
		req := httptest.NewRequest(http.MethodGet, p, nil)
		rr := httptest.NewRecorder()
		h.FuncionarioByID(rr, req)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("path=%s status=%d want=%d", p, rr.Code, http.StatusNotFound)
		}
	}
}

func TestFuncionarioByID_Contratos(t *testing.T) {
	rm := &funcionarioRepoMock{
		GetByIDFn: func(_ context.Context, _ int64) (*models.Funcionario, error) {
			return &models.Funcionario{ID: 7, Nome: "Ana Silva"}, nil
		},
	}
	cm := &contratoReaderMock{
		GetByFuncionarioFn: func(_ context.Context, funcionarioID int64) ([]models.Contrato, error) {
			if funcionarioID != 7 {
				t.Fatalf("funcionarioID=%d want=7", funcionarioID)
			}
			return []models.Contrato{
				{ID: 2, Funcionario: 7, Status: models.StatusAssinado},
				{ID: 1, Funcionario: 7, Status: models.StatusAguardandoAssinatura},
			}, nil
		},
	}
	h := novoFuncionarioHandler(rm, cm)

	req := httptest.NewRequest(http.MethodGet, "/funcionario/7/contratos", nil)
	rr := httptest.NewRecorder()
	h.FuncionarioByID(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var got struct {
		Contratos []models.Contrato `json:"contratos"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if len(got.Contratos) != 2 {
		t.Fatalf("len=%d want=2", len(got.Contratos))
	}
}

// 5) PATCH /funcionario/{id}

func TestFuncionarioByID_Patch(t *testing.T) {
	var updated *models.Funcionario
	rm := &funcionarioRepoMock{
		GetByIDFn: func(_ context.Context, id int64) (*models.Funcionario, error) {
			f := &models.Funcionario{ID: id, Nome: "Ana Silva", Cargo: "Analista de RH"}
			if updated != nil {
				f.Cargo = updated.Cargo
			}
			return f, nil
		},
		UpdateFn: func(_ context.Context, id int64, f *models.Funcionario) error {
			updated = f
			return nil
		},
	}
	h := novoFuncionarioHandler(rm, &contratoReaderMock{})

	body := []byte(`{"cargo":"Coordenadora de RH"}`)
	req := httptest.NewRequest(http.MethodPatch, "/funcionario/7", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.FuncionarioByID(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if updated == nil || updated.Cargo != "Coordenadora de RH" {
		t.Fatalf("update inesperado: %#v", updated)
	}
}

func TestFuncionarioByID_PatchInvalido(t *testing.T) {
	h := novoFuncionarioHandler(&funcionarioRepoMock{}, &contratoReaderMock{})

	body := []byte(`{"idade":10}`)
	req := httptest.NewRequest(http.MethodPatch, "/funcionario/7", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.FuncionarioByID(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusBadRequest, rr.Body.String())
	}
}

func TestFuncionario_MethodNotAllowed(t *testing.T) {
	h := novoFuncionarioHandler(&funcionarioRepoMock{}, &contratoReaderMock{})

	req := httptest.NewRequest(http.MethodDelete, "/funcionario/7", nil)
	rr := httptest.NewRecorder()
	h.FuncionarioByID(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusMethodNotAllowed)
	}
}
