package handlers

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/rhteam/contratos-rh/internal/models"
)

type funcionarioRepoMock struct {
	CreateFn  func(ctx context.Context, f *models.Funcionario) (int64, error)
	GetByIDFn func(ctx context.Context, id int64) (*models.Funcionario, error)
	GetAllFn  func(ctx context.Context) ([]models.Funcionario, error)
	SearchFn  func(ctx context.Context, query string, numericID int64, byID bool, limit int64) ([]models.Funcionario, error)
	UpdateFn  func(ctx context.Context, id int64, f *models.Funcionario) error
}

func (m *funcionarioRepoMock) Create(ctx context.Context, f *models.Funcionario) (int64, error) {
	if m.CreateFn == nil {
		return 0, errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, f)
}
func (m *funcionarioRepoMock) GetByID(ctx context.Context, id int64) (*models.Funcionario, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *funcionarioRepoMock) GetAll(ctx context.Context) ([]models.Funcionario, error) {
	if m.GetAllFn == nil {
		return nil, errors.New("GetAllFn not set")
	}
	return m.GetAllFn(ctx)
}
func (m *funcionarioRepoMock) Search(ctx context.Context, query string, numericID int64, byID bool, limit int64) ([]models.Funcionario, error) {
	if m.SearchFn == nil {
		return nil, errors.New("SearchFn not set")
	}
	return m.SearchFn(ctx, query, numericID, byID, limit)
}
func (m *funcionarioRepoMock) Update(ctx context.Context, id int64, f *models.Funcionario) error {
	if m.UpdateFn == nil {
		return errors.New("UpdateFn not set")
	}
	return m.UpdateFn(ctx, id, f)
}

type contratoReaderMock struct {
	GetByIDFn          func(ctx context.Context, id int64) (*models.Contrato, error)
	GetByFuncionarioFn func(ctx context.Context, funcionarioID int64) ([]models.Contrato, error)
	FindByArquivoFn    func(ctx context.Context, filename string) (*models.Contrato, error)
}

func (m *contratoReaderMock) GetByID(ctx context.Context, id int64) (*models.Contrato, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *contratoReaderMock) GetByFuncionario(ctx context.Context, funcionarioID int64) ([]models.Contrato, error) {
	if m.GetByFuncionarioFn == nil {
		return nil, errors.New("GetByFuncionarioFn not set")
	}
	return m.GetByFuncionarioFn(ctx, funcionarioID)
}
func (m *contratoReaderMock) FindByArquivo(ctx context.Context, filename string) (*models.Contrato, error) {
	if m.FindByArquivoFn == nil {
		return nil, errors.New("FindByArquivoFn not set")
	}
	return m.FindByArquivoFn(ctx, filename)
}

type pubMock struct {
	PublishFn func(ctx context.Context, body string, headers amqp.Table) error
	CloseFn   func() error
}

func (p *pubMock) Publish(ctx context.Context, body string, headers amqp.Table) error {
	if p.PublishFn == nil {
		return nil
	}
	return p.PublishFn(ctx, body, headers)
}
func (p *pubMock) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}

type resolverMock struct {
	ResolveFn func(tipoContrato string, f *models.Funcionario) (string, error)
}

func (m *resolverMock) Resolve(tipoContrato string, f *models.Funcionario) (string, error) {
	if m.ResolveFn == nil {
		return "", errors.New("ResolveFn not set")
	}
	return m.ResolveFn(tipoContrato, f)
}

type rendererMock struct {
	RenderFn func(ctx context.Context, html string) ([]byte, error)
}

func (m *rendererMock) Render(ctx context.Context, html string) ([]byte, error) {
	if m.RenderFn == nil {
		return nil, errors.New("RenderFn not set")
	}
	return m.RenderFn(ctx, html)
}

type storeMock struct {
	RegisterFn func(ctx context.Context, f *models.Funcionario, tipoContrato string, pdf []byte) (int64, string, error)
	SignFn     func(ctx context.Context, contratoID int64, filename string, data []byte) (*models.Contrato, error)
}

func (m *storeMock) Register(ctx context.Context, f *models.Funcionario, tipoContrato string, pdf []byte) (int64, string, error) {
	if m.RegisterFn == nil {
		return 0, "", errors.New("RegisterFn not set")
	}
	return m.RegisterFn(ctx, f, tipoContrato, pdf)
}
func (m *storeMock) Sign(ctx context.Context, contratoID int64, filename string, data []byte) (*models.Contrato, error) {
	if m.SignFn == nil {
		return nil, errors.New("SignFn not set")
	}
	return m.SignFn(ctx, contratoID, filename, data)
}
