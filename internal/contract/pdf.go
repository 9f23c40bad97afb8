package contract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

var ErrRenderFailed = errors.New("falha na conversão para PDF")

// PDFRenderer converte HTML em PDF invocando o wkhtmltopdf (fora de processo),
// com configuração fixa de página: A4 retrato, margens de 1cm, UTF-8, sem
// imagens/outline/links externos, modo print-media.
type PDFRenderer struct {
	BinPath string
	Timeout time.Duration
}

func NewPDFRenderer(binPath string, timeout time.Duration) *PDFRenderer {
	return &PDFRenderer{BinPath: binPath, Timeout: timeout}
}

func (p *PDFRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	tmp, err := os.CreateTemp("", "contrato-*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: temp file: %v", ErrRenderFailed, err)
	}
	tmpPath := tmp.Name()
	// remove o HTML temporário em qualquer saída, inclusive falha do conversor
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(html); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("%w: write temp file: %v", ErrRenderFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: close temp file: %v", ErrRenderFailed, err)
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	args := []string{
		"--page-size", "A4",
		"--orientation", "Portrait",
		"--margin-top", "1cm",
		"--margin-right", "1cm",
		"--margin-bottom", "1cm",
		"--margin-left", "1cm",
		"--encoding", "UTF-8",
		"--no-outline",
		"--disable-smart-shrinking",
		"--print-media-type",
		"--no-images",
		"--disable-external-links",
		"--disable-internal-links",
		"--quiet",
		tmpPath,
		"-", // PDF na saída padrão
	}

	cmd := exec.CommandContext(ctx, p.BinPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrRenderFailed, msg)
	}
	return stdout.Bytes(), nil
}
