package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rhteam/contratos-rh/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContratoRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewContratoRepository(db *mongo.Database) *ContratoRepository {
	return &ContratoRepository{
		coll:     db.Collection("contratos"),
		counters: db.Collection("counters"),
	}
}

func (r *ContratoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "funcionario", Value: 1}}, Options: options.Index().SetName("idx_funcionario")},
		{Keys: bson.D{{Key: "arquivo", Value: 1}}, Options: options.Index().SetName("idx_arquivo")},
		{Keys: bson.D{{Key: "arquivo_assinado", Value: 1}}, Options: options.Index().SetName("idx_arquivo_assinado")},
		{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("idx_status")},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ContratoRepository) Create(ctx context.Context, c *models.Contrato) (int64, error) {
	id, err := nextSequence(ctx, r.counters, "contrato")
	if err != nil {
		return 0, err
	}
	c.ID = id
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ContratoRepository) GetByID(ctx context.Context, id int64) (*models.Contrato, error) {
	var c models.Contrato
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetByFuncionario lista os contratos de um funcionário, mais recentes primeiro.
func (r *ContratoRepository) GetByFuncionario(ctx context.Context, funcionarioID int64) ([]models.Contrato, error) {
	opts := options.Find().SetSort(bson.D{{Key: "data_geracao", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"funcionario": funcionarioID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.Contrato{}
	for cur.Next(ctx) {
		var c models.Contrato
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, cur.Err()
}

// FindByArquivo localiza o contrato dono de um arquivo, seja o gerado
// (arquivo) ou o assinado (arquivo_assinado).
func (r *ContratoRepository) FindByArquivo(ctx context.Context, filename string) (*models.Contrato, error) {
	filter := bson.M{"$or": []bson.M{
		{"arquivo": filename},
		{"arquivo_assinado": filename},
	}}
	var c models.Contrato
	err := r.coll.FindOne(ctx, filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// MarkSigned grava arquivo assinado, status e data de assinatura numa única
// mutação. Sem lock otimista: assinaturas concorrentes no mesmo contrato
// resolvem por last-write-wins (comportamento herdado do sistema legado).
func (r *ContratoRepository) MarkSigned(ctx context.Context, id int64, arquivoAssinado string, when time.Time) error {
	set := bson.M{
		"arquivo_assinado": arquivoAssinado,
		"status":           models.StatusAssinado,
		"data_assinatura":  when,
		"updated_at":       when,
	}
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
