package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/rhteam/contratos-rh/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrDuplicateCPF = errors.New("cpf already exists")
	ErrNotFound     = errors.New("not found")
)

type FuncionarioRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewFuncionarioRepository(db *mongo.Database) *FuncionarioRepository {
	return &FuncionarioRepository{
		coll:     db.Collection("funcionarios"),
		counters: db.Collection("counters"),
	}
}

func (r *FuncionarioRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys: bson.D{{Key: "cpf", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_cpf"),
	}
	_, err := r.coll.Indexes().CreateOne(ctx, model)
	if err == nil {
		return nil
	}
	// Se já existir com outra opção, tenta dropar e recriar
	if ce, ok := err.(mongo.CommandError); ok && ce.Code == 85 { // IndexOptionsConflict
		if _, dropErr := r.coll.Indexes().DropOne(ctx, "uniq_cpf"); dropErr != nil {
			return fmt.Errorf("drop index uniq_cpf: %w", dropErr)
		}
		_, createErr := r.coll.Indexes().CreateOne(ctx, model)
		return createErr
	}
	return err
}

func (r *FuncionarioRepository) Create(ctx context.Context, f *models.Funcionario) (int64, error) {
	id, err := nextSequence(ctx, r.counters, "funcionario")
	if err != nil {
		return 0, err
	}
	f.ID = id
	f.CreatedAt = time.Now()
	f.UpdatedAt = f.CreatedAt

	if _, err := r.coll.InsertOne(ctx, f); err != nil {
		if we, ok := err.(mongo.WriteException); ok {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					return 0, ErrDuplicateCPF
				}
			}
		}
		return 0, err
	}
	return id, nil
}

func (r *FuncionarioRepository) GetByID(ctx context.Context, id int64) (*models.Funcionario, error) {
	var f models.Funcionario
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FuncionarioRepository) GetAll(ctx context.Context) ([]models.Funcionario, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.Funcionario{}
	for cur.Next(ctx) {
		var f models.Funcionario
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, cur.Err()
}

// Search implementa a busca do typeahead: consulta numérica casa por ID exato
// OU por substring no nome; caso contrário só substring no nome (ambas
// case-insensitive, "contains").
func (r *FuncionarioRepository) Search(ctx context.Context, query string, numericID int64, byID bool, limit int64) ([]models.Funcionario, error) {
	nameFilter := bson.M{"nome": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}}

	filter := nameFilter
	if byID {
		filter = bson.M{"$or": []bson.M{{"_id": numericID}, nameFilter}}
	}

	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.Funcionario{}
	for cur.Next(ctx) {
		var f models.Funcionario
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, cur.Err()
}

// Update parcial; só os campos não-zero entram no $set. updated_on sempre
// atualiza a cada escrita.
func (r *FuncionarioRepository) Update(ctx context.Context, id int64, f *models.Funcionario) error {
	set := bson.M{
		"updated_at": time.Now(),
	}

	if f.Nome != "" {
		set["nome"] = f.Nome
	}
	if f.CPF != "" {
		set["cpf"] = f.CPF
	}
	if f.RG != "" {
		set["rg"] = f.RG
	}
	if f.Idade != 0 {
		set["idade"] = f.Idade
	}
	if f.EstadoCivil != "" {
		set["estado_civil"] = f.EstadoCivil
	}
	if f.Sexo != "" {
		set["sexo"] = f.Sexo
	}
	if f.DataNascimento != nil {
		set["data_nascimento"] = f.DataNascimento
	}
	if f.Rua != "" {
		set["rua"] = f.Rua
	}
	if f.Bairro != "" {
		set["bairro"] = f.Bairro
	}
	if f.Cidade != "" {
		set["cidade"] = f.Cidade
	}
	if f.CEP != "" {
		set["cep"] = f.CEP
	}
	if f.Estado != "" {
		set["estado"] = f.Estado
	}
	if f.DataEntrada != nil {
		set["data_entrada"] = f.DataEntrada
	}
	if f.Cargo != "" {
		set["cargo"] = f.Cargo
	}
	if f.Salario != 0 {
		set["salario"] = f.Salario
	}

	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if we, ok := err.(mongo.WriteException); ok {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					return ErrDuplicateCPF
				}
			}
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
