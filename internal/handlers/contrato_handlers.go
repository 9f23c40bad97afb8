package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/rhteam/contratos-rh/internal/contract"
	"github.com/rhteam/contratos-rh/internal/models"
	"github.com/rhteam/contratos-rh/internal/repository"
	"github.com/rhteam/contratos-rh/internal/utils"
)

// Resolver monta o HTML do contrato a partir do tipo e do funcionário.
type Resolver interface {
	Resolve(tipoContrato string, f *models.Funcionario) (string, error)
}

// Renderer converte HTML em bytes de PDF.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// ContractStore grava arquivos e linhas de contrato.
type ContractStore interface {
	Register(ctx context.Context, f *models.Funcionario, tipoContrato string, pdf []byte) (int64, string, error)
	Sign(ctx context.Context, contratoID int64, filename string, data []byte) (*models.Contrato, error)
}

type ContratoHandler struct {
	Funcionarios FuncionarioRepo
	Contratos    ContratoReader
	Resolver     Resolver
	Renderer     Renderer
	Store        ContractStore
	Pub          Publisher

	UploadDir     string
	MaxUploadSize int64
}

// POST /gerar_contrato — corpo de formulário: id_funcionario, tipo_contrato.
// Resposta de sucesso: bytes do PDF com Content-Disposition attachment.
func (h *ContratoHandler) Gerar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		utils.BadRequest(w, msgErroProcessamento)
		return
	}
	idStr := r.PostFormValue("id_funcionario")
	tipo := r.PostFormValue("tipo_contrato")
	if idStr == "" || tipo == "" {
		utils.BadRequest(w, msgCamposObrigatorios)
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.BadRequest(w, msgIDInvalido)
		return
	}

	slog.Info("contract_generation_start", "funcionario_id", id, "tipo_contrato", tipo)

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	f, err := h.Funcionarios.GetByID(ctx, id)
	if err != nil {
		slog.Error("funcionario_not_found", "funcionario_id", id)
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": msgFuncionarioNaoEncontrado})
		return
	}

	html, err := h.Resolver.Resolve(tipo, f)
	if err != nil {
		if errors.Is(err, contract.ErrTemplateNotFound) {
			slog.Error("template_not_found", "tipo_contrato", tipo)
			utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": msgTemplateNaoEncontrado})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": msgErroProcessamento})
		return
	}

	pdf, err := h.Renderer.Render(ctx, html)
	if err != nil {
		slog.Error("pdf_render_error", "tipo_contrato", tipo, "err", err)
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": msgErroProcessamento})
		return
	}

	contratoID, nomeArquivo, err := h.Store.Register(ctx, f, tipo, pdf)
	if err != nil {
		slog.Error("contract_register_error", "funcionario_id", id, "err", err)
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": msgErroProcessamento})
		return
	}

	h.publishContratoEvent("Geração", contratoID, f, nomeArquivo)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", nomeArquivo))
	_, _ = w.Write(pdf)
}

func parseTrailingID(path, prefix string) (int64, bool) {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// GET/POST /assinar_contrato/{id} — GET devolve os dados do formulário de
// assinatura; POST aceita o PDF assinado (multipart, campo arquivo_assinado).
func (h *ContratoHandler) Assinar(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTrailingID(r.URL.Path, "/assinar_contrato")
	if !ok {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": msgContratoNaoEncontrado})
		return
	}

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		c, err := h.Contratos.GetByID(ctx, id)
		if err != nil {
			utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": msgContratoNaoEncontrado})
			return
		}
		f, err := h.Funcionarios.GetByID(ctx, c.Funcionario)
		if err != nil {
			utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": msgFuncionarioNaoEncontrado})
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]any{
			"contrato":    c,
			"funcionario": f,
		})

	case http.MethodPost:
		h.processarUpload(w, r, id)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// POST /upload_contrato_assinado/{id} — upload AJAX do contrato assinado.
// Resposta sempre {success, message}.
func (h *ContratoHandler) UploadAssinado(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, ok := parseTrailingID(r.URL.Path, "/upload_contrato_assinado")
	if !ok {
		utils.WriteJSON(w, http.StatusOK, map[string]any{"success": false, "message": msgContratoNaoEncontrado})
		return
	}
	h.processarUpload(w, r, id)
}

func (h *ContratoHandler) processarUpload(w http.ResponseWriter, r *http.Request, contratoID int64) {
	slog.Info("signed_upload_start", "contrato_id", contratoID)

	// margem sobre o limite para o multipart; o Storage valida o tamanho real
	maxMem := h.MaxUploadSize
	if maxMem <= 0 {
		maxMem = 10 * 1024 * 1024
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxMem*2)

	file, header, err := r.FormFile("arquivo_assinado")
	if err != nil {
		utils.WriteJSON(w, http.StatusOK, map[string]any{"success": false, "message": msgNenhumArquivo})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("signed_upload_read_error", "contrato_id", contratoID, "err", err)
		utils.WriteJSON(w, http.StatusOK, map[string]any{"success": false, "message": msgErroArquivo})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	c, err := h.Store.Sign(ctx, contratoID, header.Filename, data)
	if err != nil {
		utils.WriteJSON(w, http.StatusOK, map[string]any{"success": false, "message": uploadErrorMessage(err)})
		return
	}

	if f, ferr := h.Funcionarios.GetByID(ctx, c.Funcionario); ferr == nil {
		h.publishContratoEvent("Assinatura", c.ID, f, c.ArquivoAssinado)
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": msgContratoAssinado})
}

func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return msgContratoNaoEncontrado
	case errors.Is(err, contract.ErrEmptyUpload):
		return msgNenhumArquivo
	case errors.Is(err, contract.ErrInvalidFile):
		return msgArquivoInvalido
	case errors.Is(err, contract.ErrFileTooLarge):
		return msgArquivoMuitoGrande
	default:
		return msgErroArquivo
	}
}

// GET /uploads/{filename} — serve um PDF (gerado ou assinado) pelo nome
// exato, validado contra a tabela de contratos.
func (h *ContratoHandler) Uploads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	raw := strings.Trim(strings.TrimPrefix(r.URL.Path, "/uploads"), "/")
	filename, err := url.PathUnescape(raw)
	if err != nil || filename == "" || strings.Contains(filename, "/") {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": msgArquivoNaoEncontrado})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Contratos.FindByArquivo(ctx, filename); err != nil {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": msgArquivoNaoEncontrado})
		return
	}

	path := filepath.Join(h.UploadDir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		// linha existe no banco mas o arquivo sumiu do disco
		slog.Error("file_db_desync", "arquivo", filename, "path", path)
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": msgArquivoForaDoDisco})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	_, _ = w.Write(data)
}

func (h *ContratoHandler) publishContratoEvent(acao string, contratoID int64, f *models.Funcionario, arquivo string) {
	if h.Pub == nil || f == nil {
		return
	}
	msg := fmt.Sprintf("%s de CONTRATO para %s", acao, f.Nome)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_ = h.Pub.Publish(ctx, msg, amqp.Table{
		"action":         strings.ToLower(acao), // geração|assinatura
		"contrato_id":    contratoID,
		"funcionario_id": f.ID,
		"arquivo":        arquivo,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
