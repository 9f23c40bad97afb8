//go:build integration
// +build integration

package repository

/*
	Para Rodar: go test -tags=integration -v ./internal/repository -run TestFuncionarioRepository_Integration -count=1

	obs: Rodar todos os de integração: go test -tags=integration -v ./... -count=1
*/

import (
	"context"
	"errors"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/rhteam/contratos-rh/internal/db"
	"github.com/rhteam/contratos-rh/internal/models"
)

func novoFuncionario(nome, cpf string) models.Funcionario {
	nasc := time.Date(1996, 3, 14, 0, 0, 0, 0, time.UTC)
	return models.Funcionario{
		Nome:           nome,
		CPF:            cpf,
		RG:             "12.345.678-9",
		Idade:          29,
		EstadoCivil:    "Solteiro",
		Sexo:           "Feminino",
		DataNascimento: &nasc,
		Rua:            "Rua das Flores, 100",
		Bairro:         "Centro",
		Cidade:         "São Paulo",
		CEP:            "01234-567",
		Estado:         "SP",
		Cargo:          "Analista de RH",
		Salario:        4500,
	}
}

// Exercita: EnsureIndexes -> Create -> GetByID -> Search -> Update -> CPF duplicado
func TestFuncionarioRepository_Integration_CreateGetSearchUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Sobe Mongo real
	mongoC, err := mongodb.RunContainer(ctx, tc.WithImage("mongo:7"))
	if err != nil {
		t.Fatalf("start mongo: %v", err)
	}
	t.Cleanup(func() { _ = mongoC.Terminate(ctx) })

	uri, err := mongoC.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("conn string: %v", err)
	}

	client, err := db.NewMongoClient(uri)
	if err != nil {
		t.Fatalf("mongo client: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	database := client.Database("testdb")
	repo := NewFuncionarioRepository(database)

	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	// 1) Create — IDs sequenciais vindos da coleção counters
	f1 := novoFuncionario("Ana Silva", "123.456.789-01")
	id1, err := repo.Create(ctx, &f1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id1 != 1 {
		t.Fatalf("primeiro id=%d want=1", id1)
	}

	f2 := novoFuncionario("João Costa", "987.654.321-00")
	id2, err := repo.Create(ctx, &f2)
	if err != nil {
		t.Fatalf("create 2: %v", err)
	}
	if id2 != 2 {
		t.Fatalf("segundo id=%d want=2", id2)
	}

	// 2) GetByID
	got, err := repo.GetByID(ctx, id1)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Nome != "Ana Silva" || got.CPF != "123.456.789-01" {
		t.Fatalf("get mismatch: %#v", got)
	}
	if got.DataNascimento == nil {
		t.Fatalf("data_nascimento não persistida")
	}
	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("id inexistente: err=%v want ErrNotFound", err)
	}

	// 3) Search — substring case-insensitive no nome
	list, err := repo.Search(ctx, "ana", 0, false, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(list) != 1 || list[0].ID != id1 {
		t.Fatalf("search 'ana': %#v", list)
	}

	// consulta numérica casa pelo ID exato
	list, err = repo.Search(ctx, "2", 2, true, 10)
	if err != nil {
		t.Fatalf("search numérica: %v", err)
	}
	if len(list) != 1 || list[0].ID != id2 {
		t.Fatalf("search '2': %#v", list)
	}

	// sem match -> lista vazia, não nil error
	list, err = repo.Search(ctx, "zzz", 0, false, 10)
	if err != nil || len(list) != 0 {
		t.Fatalf("search sem match: list=%#v err=%v", list, err)
	}

	// 4) Update parcial — só o cargo muda
	if err := repo.Update(ctx, id1, &models.Funcionario{Cargo: "Coordenadora de RH"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got2, err := repo.GetByID(ctx, id1)
	if err != nil || got2.Cargo != "Coordenadora de RH" || got2.Nome != "Ana Silva" {
		t.Fatalf("after update mismatch: %#v err=%v", got2, err)
	}
	if err := repo.Update(ctx, 999, &models.Funcionario{Cargo: "X"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update inexistente: err=%v want ErrNotFound", err)
	}

	// 5) CPF duplicado — índice único uniq_cpf
	f3 := novoFuncionario("Ana Clone", "123.456.789-01")
	if _, err := repo.Create(ctx, &f3); !errors.Is(err, ErrDuplicateCPF) {
		t.Fatalf("cpf duplicado: err=%v want ErrDuplicateCPF", err)
	}
	if err := repo.Update(ctx, id2, &models.Funcionario{CPF: "123.456.789-01"}); !errors.Is(err, ErrDuplicateCPF) {
		t.Fatalf("update para cpf duplicado: err=%v want ErrDuplicateCPF", err)
	}

	// 6) GetAll ordena por _id
	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 || all[0].ID != id1 || all[1].ID != id2 {
		t.Fatalf("get all mismatch: %#v", all)
	}
}
