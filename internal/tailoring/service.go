package tailoring

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"cvtailor-backend/internal/ats"
	"cvtailor-backend/internal/extract"
	"cvtailor-backend/internal/llm"
	"cvtailor-backend/internal/prompt"
	"cvtailor-backend/internal/shared/metrics"
	"cvtailor-backend/internal/shared/storage/object"
	"cvtailor-backend/internal/shared/telemetry"
)

// Renderer converts a parsed result into a PDF at the given path,
// overwriting any existing file.
type Renderer interface {
	WritePDF(ctx context.Context, result Result, outputPath string) error
}

// Service runs the tailoring pipeline: extract, prompt, generate, parse,
// score, render. Each Generate call is one synchronous pipeline run with
// no retained state beyond the files on disk and the in-memory record.
type Service struct {
	Uploads   object.ObjectStore
	LLM       llm.Client
	Renderer  Renderer
	Repo      *MemoryRepo
	OutputDir string
}

// GenerateInput is one upload plus job description.
type GenerateInput struct {
	FileName       string
	FileData       []byte
	MimeType       string
	JobDescription string
	Kind           prompt.Kind
}

// GenerateOutput is the full result of one pipeline run.
type GenerateOutput struct {
	ID      string
	Result  Result
	CVText  string
	PDFName string
}

// Generate runs the full pipeline for a tailor-resume or unified request.
// The model call is made at most once; an unreachable or timed-out model
// fails the request before any PDF is produced.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (GenerateOutput, error) {
	start := time.Now()
	metrics.IncGenerationStarted()

	out, err := s.generate(ctx, input)
	metrics.ObserveGenerationDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncGenerationFailed()
		return GenerateOutput{}, err
	}
	metrics.IncGenerationCompleted()
	return out, nil
}

func (s *Service) generate(ctx context.Context, input GenerateInput) (GenerateOutput, error) {
	id := uuid.NewString()

	// Keep the upload on disk for the duration of the run so a crashed
	// pipeline leaves something to inspect. Removed again on success.
	uploadKey, _, sniffedMime, err := s.Uploads.Save(ctx, input.FileName, bytes.NewReader(input.FileData))
	if err != nil {
		return GenerateOutput{}, fmt.Errorf("save upload: %w", err)
	}

	mimeType := input.MimeType
	if mimeType == "" {
		mimeType = sniffedMime
	}

	cvText, err := extract.TextFromBytes(ctx, input.FileData, mimeType, input.FileName)
	if err != nil {
		return GenerateOutput{}, err
	}

	built, err := prompt.Build(input.Kind, cvText, input.JobDescription)
	if err != nil {
		return GenerateOutput{}, err
	}

	generated, err := s.LLM.Generate(ctx, llm.GenerateRequest{
		System:    built.System,
		Prompt:    built.User,
		MaxTokens: built.MaxTokens,
	})
	if err != nil {
		s.record(ctx, Generation{ID: id, Kind: input.Kind, Status: StatusFailed, Error: err.Error(), CreatedAt: time.Now().UTC()})
		return GenerateOutput{}, err
	}

	result, err := ParseResult(input.Kind, generated)
	if err != nil {
		s.record(ctx, Generation{ID: id, Kind: input.Kind, Status: StatusFailed, Error: err.Error(), CreatedAt: time.Now().UTC()})
		return GenerateOutput{}, err
	}
	if result.Incomplete {
		telemetry.Info("tailoring.partial_parse", map[string]any{
			"generation_id": id,
			"kind":          string(input.Kind),
		})
	}

	result.ATS = ats.Score(cvText, input.JobDescription)

	pdfName := fmt.Sprintf("tailored_cv_%s.pdf", id)
	if err := s.Renderer.WritePDF(ctx, result, filepath.Join(s.OutputDir, pdfName)); err != nil {
		s.record(ctx, Generation{ID: id, Kind: input.Kind, Status: StatusFailed, Error: err.Error(), CreatedAt: time.Now().UTC()})
		return GenerateOutput{}, err
	}

	if err := s.Uploads.Delete(ctx, uploadKey); err != nil {
		telemetry.Error("tailoring.upload_cleanup_failed", map[string]any{
			"generation_id": id,
			"key":           uploadKey,
			"err":           err.Error(),
		})
	}

	s.record(ctx, Generation{
		ID:        id,
		Kind:      input.Kind,
		Status:    StatusCompleted,
		ATSScore:  result.ATS.Score,
		PDFName:   pdfName,
		CreatedAt: time.Now().UTC(),
	})

	return GenerateOutput{ID: id, Result: result, CVText: cvText, PDFName: pdfName}, nil
}

// CoverLetter generates only a cover letter from previously extracted
// resume text.
func (s *Service) CoverLetter(ctx context.Context, cvText, jobDescription string) (CoverLetter, error) {
	text, err := s.generateText(ctx, prompt.KindCoverLetter, cvText, jobDescription)
	if err != nil {
		return CoverLetter{}, err
	}
	return ParseCoverLetter(text)
}

// GapAnalysis generates only a gap analysis from previously extracted
// resume text.
func (s *Service) GapAnalysis(ctx context.Context, cvText, jobDescription string) (GapAnalysis, error) {
	text, err := s.generateText(ctx, prompt.KindGapAnalysis, cvText, jobDescription)
	if err != nil {
		return GapAnalysis{}, err
	}
	return ParseGapAnalysis(text)
}

// Get returns the transient record of a past generation.
func (s *Service) Get(ctx context.Context, id string) (Generation, error) {
	if id == "" {
		return Generation{}, errors.New("generation id is required")
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns transient records of past generations, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Generation, error) {
	return s.Repo.List(ctx, limit)
}

func (s *Service) generateText(ctx context.Context, kind prompt.Kind, cvText, jobDescription string) (string, error) {
	built, err := prompt.Build(kind, cvText, jobDescription)
	if err != nil {
		return "", err
	}
	return s.LLM.Generate(ctx, llm.GenerateRequest{
		System:    built.System,
		Prompt:    built.User,
		MaxTokens: built.MaxTokens,
	})
}

func (s *Service) record(ctx context.Context, gen Generation) {
	if s.Repo == nil {
		return
	}
	if err := s.Repo.Create(ctx, gen); err != nil {
		telemetry.Error("tailoring.record_failed", map[string]any{
			"generation_id": gen.ID,
			"err":           err.Error(),
		})
	}
}
