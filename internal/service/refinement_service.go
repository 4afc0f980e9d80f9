// Package service wires the pipeline stages together: quality gating,
// content extraction, model analysis with deterministic fallback, and
// persistence.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"refinery/internal/config"
	"refinery/internal/domain"
	"refinery/internal/extract"
	"refinery/internal/fallback"
	"refinery/internal/gate"
	"refinery/internal/port"
)

// extractionUnavailableNotice stands in for file content when extraction
// yields nothing usable. The downstream classifier keys on it.
const extractionUnavailableNotice = "User uploaded a file. Extracted content is limited or unavailable."

// RefineInput is one submission: either free text or an uploaded file.
type RefineInput struct {
	Text       string
	SourceType string
	File       multipart.File
	Header     *multipart.FileHeader
}

// exportBatchLimit caps how many records a single export pulls. Export
// reads are not subject to the HTTP pagination clamp.
const exportBatchLimit = 1000

// RefinementService runs the refinement pipeline and reads back results.
type RefinementService interface {
	Refine(ctx context.Context, in RefineInput) (*domain.Refinement, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Refinement, error)
	List(ctx context.Context, offset, limit int) ([]domain.Refinement, int, error)
	ListForExport(ctx context.Context) ([]domain.Refinement, error)
}

type refinementService struct {
	repo      port.RefinementRepository
	extractor port.TextExtractor
	analyzer  port.Analyzer
	upload    config.UploadConfig
}

// NewRefinementService creates the pipeline orchestrator.
func NewRefinementService(
	repo port.RefinementRepository,
	extractor port.TextExtractor,
	analyzer port.Analyzer,
	upload config.UploadConfig,
) RefinementService {
	return &refinementService{
		repo:      repo,
		extractor: extractor,
		analyzer:  analyzer,
		upload:    upload,
	}
}

// Refine runs one submission through the full pipeline and persists the
// result. File uploads bypass the quality gate; direct text that fails the
// gate is rejected before any model call.
func (s *refinementService) Refine(ctx context.Context, in RefineInput) (*domain.Refinement, error) {
	var (
		content   string
		inputType domain.InputType
		metadata  map[string]string
		isFile    = in.File != nil && in.Header != nil
	)

	if isFile {
		kind, text, err := s.ingestFile(ctx, in)
		if err != nil {
			return nil, err
		}
		if text == "" {
			content = extractionUnavailableNotice
		} else {
			content = "User uploaded a file: " + text
		}
		inputType = kind.SchemaType()
		metadata = map[string]string{
			"filename": in.Header.Filename,
			"fileType": string(kind),
		}
	} else {
		if rejected := gate.Assess(in.Text); rejected != nil {
			return nil, rejected
		}
		content = in.Text
		inputType = domain.ParseInputType(in.SourceType)
	}

	out := s.analyze(ctx, content, isFile)

	out.Normalize()
	if err := out.Validate(); err != nil {
		log.Printf("refinementService.Refine: output failed validation: %v", err)
		return nil, domain.ErrInvalidRefinedOutput
	}

	outJSON, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("refinementService.Refine: marshaling output: %w", err)
	}

	rec := &domain.Refinement{
		OriginalInput:   content,
		InputType:       inputType,
		RefinedOutput:   outJSON,
		ConfidenceScore: out.ConfidenceScore,
	}
	if metadata != nil {
		metaJSON, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("refinementService.Refine: marshaling metadata: %w", err)
		}
		rec.Metadata = metaJSON
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("refinementService.Refine: %w", err)
	}
	return rec, nil
}

// analyze routes content to the external model or the fallback classifier.
// File-derived content and document-analysis requests never reach the model;
// any model failure degrades to the fallback rather than surfacing an error.
func (s *refinementService) analyze(ctx context.Context, content string, isFile bool) *domain.RefinedOutput {
	if isFile || fallback.IsDocumentAnalysisRequest(content) {
		return fallback.Classify(content, isFile)
	}

	out, err := s.analyzer.Analyze(ctx, content)
	if err != nil {
		log.Printf("refinementService.analyze: model analysis failed, using fallback: %v", err)
		return fallback.Classify(content, false)
	}
	return out
}

// ingestFile validates, spools, and extracts text from an upload. The
// spooled temp file is always removed. Extraction failure is not fatal:
// it logs and returns empty text so the pipeline can degrade.
func (s *refinementService) ingestFile(ctx context.Context, in RefineInput) (domain.ContentKind, string, error) {
	mediaType := in.Header.Header.Get("Content-Type")
	if !domain.UploadAllowed(in.Header.Filename, mediaType) {
		return domain.KindUnknown, "", domain.ErrUnsupportedFileType
	}
	if s.upload.MaxFileSizeMB > 0 && in.Header.Size > s.upload.MaxFileSizeMB*1024*1024 {
		return domain.KindUnknown, "", domain.ErrFileTooLarge
	}

	kind := extract.DetectKind(in.Header.Filename, mediaType)

	path, err := s.spool(in)
	if err != nil {
		return kind, "", fmt.Errorf("refinementService.ingestFile: %w", err)
	}
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil {
			log.Printf("refinementService.ingestFile: removing temp file: %v", rmErr)
		}
	}()

	text, err := s.extractor.Extract(ctx, path, kind)
	if err != nil {
		log.Printf("refinementService.ingestFile: extraction failed for %s (%s): %v",
			in.Header.Filename, kind, err)
		return kind, "", nil
	}
	return kind, strings.TrimSpace(text), nil
}

// spool copies the upload into the configured directory under a unique
// name, keeping the original extension so extraction tools can key on it.
func (s *refinementService) spool(in RefineInput) (string, error) {
	dir := s.upload.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}

	ext := filepath.Ext(in.Header.Filename)
	f, err := os.CreateTemp(dir, "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, in.File); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	return f.Name(), nil
}

func (s *refinementService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Refinement, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("refinementService.GetByID: %w", err)
	}
	return rec, nil
}

func (s *refinementService) List(ctx context.Context, offset, limit int) ([]domain.Refinement, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	recs, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("refinementService.List: %w", err)
	}
	return recs, total, nil
}

// ListForExport returns the newest records up to the export batch cap,
// skipping the per-page clamp List applies to HTTP pagination.
func (s *refinementService) ListForExport(ctx context.Context) ([]domain.Refinement, error) {
	recs, _, err := s.repo.List(ctx, 0, exportBatchLimit)
	if err != nil {
		return nil, fmt.Errorf("refinementService.ListForExport: %w", err)
	}
	return recs, nil
}
