package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rhteam/contratos-rh/internal/models"
	"github.com/rhteam/contratos-rh/internal/utils"
)

var (
	ErrStorage      = errors.New("falha ao gravar arquivo de contrato")
	ErrEmptyUpload  = errors.New("nenhum arquivo foi enviado")
	ErrInvalidFile  = errors.New("arquivo inválido")
	ErrFileTooLarge = errors.New("arquivo muito grande")
)

var allowedExtensions = []string{".pdf"}

// ContratoRepo é o que o Storage precisa do repositório de contratos.
type ContratoRepo interface {
	Create(ctx context.Context, c *models.Contrato) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Contrato, error)
	MarkSigned(ctx context.Context, id int64, arquivoAssinado string, when time.Time) error
}

// Storage cuida do ciclo de vida dos PDFs em disco e das linhas de contrato.
// A escrita do arquivo e a escrita no banco são duas fases SEM transação:
// uma falha entre elas pode deixar arquivo órfão ou linha sem arquivo
// (janela de inconsistência herdada do sistema legado, apenas logada).
type Storage struct {
	dir     string
	maxSize int64
	repo    ContratoRepo
	log     *slog.Logger
	now     func() time.Time
}

func NewStorage(dir string, maxSize int64, repo ContratoRepo, log *slog.Logger) *Storage {
	if log == nil {
		log = slog.Default()
	}
	return &Storage{
		dir:     dir,
		maxSize: maxSize,
		repo:    repo,
		log:     log.With("cmp", "contract.storage"),
		now:     time.Now,
	}
}

// Register grava o PDF gerado e insere a linha de rastreio com status
// "aguardando assinatura". Nome: <tipo>_<nome sanitizado>_<YYYYMMDDHHMMSS>.pdf
func (s *Storage) Register(ctx context.Context, f *models.Funcionario, tipoContrato string, pdf []byte) (int64, string, error) {
	now := s.now()
	nomeArquivo := utils.UniqueFilename(
		fmt.Sprintf("%s_%s", tipoContrato, utils.SanitizeFilename(f.Nome)),
		".pdf", now,
	)

	if err := utils.EnsureDir(s.dir); err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, nomeArquivo), pdf, 0o644); err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	c := models.Contrato{
		Funcionario: f.ID,
		Arquivo:     nomeArquivo,
		Status:      models.StatusAguardandoAssinatura,
		DataGeracao: now,
	}
	id, err := s.repo.Create(ctx, &c)
	if err != nil {
		// arquivo já gravado e sem linha no banco; fica órfão em disco
		s.log.Error("contract_row_insert_failed_after_file_write", "arquivo", nomeArquivo, "err", err)
		return 0, "", err
	}

	s.log.Info("contract_registered", "contrato_id", id, "funcionario_id", f.ID, "arquivo", nomeArquivo)
	return id, nomeArquivo, nil
}

// Sign valida o upload, grava o PDF assinado e atualiza a linha do contrato
// numa única mutação (status, arquivo_assinado, data_assinatura).
func (s *Storage) Sign(ctx context.Context, contratoID int64, filename string, data []byte) (*models.Contrato, error) {
	c, err := s.repo.GetByID(ctx, contratoID)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 || filename == "" {
		return nil, ErrEmptyUpload
	}
	if !utils.ValidFileExtension(filename, allowedExtensions) {
		return nil, ErrInvalidFile
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrFileTooLarge
	}

	// tipo recuperado pelo prefixo do arquivo gerado; prefixo desconhecido
	// cai no contrato de entrada (default herdado), logado para auditoria
	tipo := utils.ContractTypeFromFilename(c.Arquivo)
	if !strings.HasPrefix(c.Arquivo, tipo+"_") {
		s.log.Warn("contract_type_prefix_unrecognized", "arquivo", c.Arquivo, "fallback", tipo)
	}

	now := s.now()
	nomeAssinado := utils.UniqueFilename(
		fmt.Sprintf("%s_assinado_%d", tipo, c.Funcionario),
		".pdf", now,
	)

	if err := utils.EnsureDir(s.dir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, nomeAssinado), data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := s.repo.MarkSigned(ctx, contratoID, nomeAssinado, now); err != nil {
		s.log.Error("contract_sign_update_failed_after_file_write", "arquivo", nomeAssinado, "err", err)
		return nil, err
	}

	c.ArquivoAssinado = nomeAssinado
	c.Status = models.StatusAssinado
	c.DataAssinatura = &now
	c.UpdatedAt = now

	s.log.Info("contract_signed", "contrato_id", contratoID, "arquivo_assinado", nomeAssinado)
	return c, nil
}

// Dir expõe o diretório de uploads para o gateway de leitura.
func (s *Storage) Dir() string { return s.dir }
