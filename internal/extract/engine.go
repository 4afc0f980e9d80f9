// Package extract converts submitted files into plain text.
//
// Supported kinds:
//   - text  — raw bytes read as UTF-8
//   - image — tesseract OCR (empty text is a valid outcome)
//   - pdf   — embedded text layer via pdfcpu
//   - docx  — word/document.xml from the ZIP archive
//   - video — ffmpeg audio transcode, then a placeholder transcription
//
// Extraction failures are wrapped into kind-specific user-facing messages;
// raw library errors are logged, never surfaced.
package extract

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"refinery/internal/config"
	"refinery/internal/domain"
	"refinery/internal/port"
)

// Engine is the per-kind text extraction dispatcher.
type Engine struct {
	cfg    config.ExtractConfig
	runner Runner
}

// NewEngine creates an Engine using the default exec runner.
func NewEngine(cfg config.ExtractConfig) *Engine {
	return NewEngineWithRunner(cfg, execRunner{})
}

// NewEngineWithRunner creates an Engine with a custom command runner (for testing).
func NewEngineWithRunner(cfg config.ExtractConfig, runner Runner) *Engine {
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.FFmpeg == "" {
		cfg.FFmpeg = "ffmpeg"
	}
	if cfg.TimeoutSecs <= 0 {
		cfg.TimeoutSecs = 120
	}
	return &Engine{cfg: cfg, runner: runner}
}

var _ port.TextExtractor = (*Engine)(nil)

// Extract converts the file at path into plain text using the strategy for
// kind. The source must exist and be non-empty before any decode is
// attempted.
func (e *Engine) Extract(ctx context.Context, path string, kind domain.ContentKind) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", domain.ErrSourceUnreadable
	}
	if info.Size() == 0 {
		return "", domain.ErrSourceEmpty
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.TimeoutSecs)*time.Second)
	defer cancel()

	switch kind {
	case domain.KindText:
		return e.extractText(path)
	case domain.KindImage:
		return e.extractImage(ctx, path)
	case domain.KindPDF:
		return e.extractPDF(path)
	case domain.KindDocx:
		return e.extractDocx(path)
	case domain.KindVideo:
		return e.extractVideo(ctx, path)
	default:
		return "", domain.ErrUnsupportedFormat
	}
}

func (e *Engine) extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", e.wrap(domain.KindText, err, "text file could not be read")
	}
	return string(data), nil
}

// wrap logs the underlying error and returns a kind-specific user-facing
// one. Raw decoder errors never leave this package.
func (e *Engine) wrap(kind domain.ContentKind, err error, msg string) error {
	log.Printf("extract.Engine: %s extraction failed: %v", kind, err)
	return fmt.Errorf("%s: %w", msg, domain.ErrExtractionFailed)
}
