package tailoring

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"cvtailor-backend/internal/ats"
	"cvtailor-backend/internal/extract"
	"cvtailor-backend/internal/llm"
	"cvtailor-backend/internal/prompt"
	"cvtailor-backend/internal/shared/server/respond"
	"cvtailor-backend/internal/shared/util"
)

// The API payload caps keyword lists; full lists stay internal.
const maxKeywordsInPayload = 10

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
}

// Handler wires HTTP handlers to the tailoring service.
type Handler struct {
	Svc            *Service
	OutputDir      string
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, outputDir string, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, OutputDir: outputDir, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches tailoring routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate(prompt.KindTailorResume))
	rg.POST("/jobkit", h.generate(prompt.KindUnified))
	rg.POST("/cover-letter", h.coverLetter)
	rg.POST("/gap-analysis", h.gapAnalysis)
	rg.GET("/generations", h.listGenerations)
	rg.GET("/generations/:id", h.getGeneration)
}

// RegisterDownloadRoute attaches the PDF download route at the engine root.
func (h *Handler) RegisterDownloadRoute(r *gin.Engine) {
	r.GET("/download/:filename", h.download)
}

func (h *Handler) generate(kind prompt.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, ok := h.bindUpload(c)
		if !ok {
			return
		}
		input.Kind = kind

		out, err := h.Svc.Generate(c.Request.Context(), input)
		if err != nil {
			h.respondPipelineError(c, err)
			return
		}
		c.Set("generationId", out.ID)

		payload := gin.H{
			"success":      true,
			"generationId": out.ID,
			"download_url": "/download/" + out.PDFName,
			"resume_data":  out.Result.Resume,
			"ats_score":    capKeywords(out.Result.ATS),
			"cv_text":      out.CVText,
		}
		if out.Result.Incomplete {
			payload["incomplete"] = true
		}
		if out.Result.CoverLetter != nil {
			payload["cover_letter"] = out.Result.CoverLetter
			payload["cover_letter_text"] = FormatCoverLetter(*out.Result.CoverLetter)
		}
		if out.Result.GapAnalysis != nil {
			payload["gap_analysis"] = out.Result.GapAnalysis
		}
		respond.OK(c, payload)
	}
}

type textRequest struct {
	CVText         string `json:"cv_text"`
	JobDescription string `json:"job_description"`
}

func (h *Handler) coverLetter(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.CVText) == "" || strings.TrimSpace(req.JobDescription) == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "cv_text and job_description are required", nil)
		return
	}

	letter, err := h.Svc.CoverLetter(c.Request.Context(), req.CVText, req.JobDescription)
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}
	respond.OK(c, gin.H{
		"cover_letter": letter,
		"text":         FormatCoverLetter(letter),
	})
}

func (h *Handler) gapAnalysis(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.CVText) == "" || strings.TrimSpace(req.JobDescription) == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "cv_text and job_description are required", nil)
		return
	}

	gap, err := h.Svc.GapAnalysis(c.Request.Context(), req.CVText, req.JobDescription)
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}
	respond.OK(c, gin.H{"gap_analysis": gap})
}

func (h *Handler) getGeneration(c *gin.Context) {
	gen, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "generation not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to fetch generation", nil)
		}
		return
	}
	respond.OK(c, gen)
}

func (h *Handler) listGenerations(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			limit = parsed
		}
	}
	gens, err := h.Svc.List(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to list generations", nil)
		return
	}
	respond.OK(c, gens)
}

func (h *Handler) download(c *gin.Context) {
	name, err := util.SanitizeFileName(c.Param("filename"))
	if err != nil || !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid file name", nil)
		return
	}
	c.FileAttachment(filepath.Join(h.OutputDir, name), name)
}

func (h *Handler) bindUpload(c *gin.Context) (GenerateInput, bool) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		// Older clients post the file under "pdf".
		fileHeader, err = c.FormFile("pdf")
	}
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "no resume file uploaded", nil)
		return GenerateInput{}, false
	}

	if fileHeader.Filename == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "no file selected", nil)
		return GenerateInput{}, false
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "file must be a PDF or DOCX", nil)
		return GenerateInput{}, false
	}
	if h.MaxUploadBytes > 0 && fileHeader.Size > h.MaxUploadBytes {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "file exceeds the upload size limit", nil)
		return GenerateInput{}, false
	}

	jobDescription := strings.TrimSpace(c.PostForm("job_description"))
	if jobDescription == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "job description is required", nil)
		return GenerateInput{}, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to read upload", nil)
		return GenerateInput{}, false
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to read upload", nil)
		return GenerateInput{}, false
	}

	return GenerateInput{
		FileName:       fileHeader.Filename,
		FileData:       data,
		MimeType:       fileHeader.Header.Get("Content-Type"),
		JobDescription: jobDescription,
	}, true
}

func (h *Handler) respondPipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, prompt.ErrMissingInput), errors.Is(err, prompt.ErrTemplateNotFound):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
	case errors.Is(err, extract.ErrNoText):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation,
			"Could not extract text from the file. It may be image-based.", nil)
	case errors.Is(err, llm.ErrUnavailable):
		respond.Error(c, http.StatusBadGateway, ErrorCodeModelDown,
			"Cannot connect to the local model server. Make sure Ollama is running (run 'ollama serve' in a terminal).", nil)
	case errors.Is(err, llm.ErrTimeout):
		respond.Error(c, http.StatusGatewayTimeout, ErrorCodeModelTimeout,
			"The model request timed out. Try a smaller input or a faster model.", nil)
	case errors.Is(err, llm.ErrMalformed):
		respond.Error(c, http.StatusBadGateway, ErrorCodeModelResponse,
			"The model server returned an unexpected response.", nil)
	case errors.Is(err, ErrUnparseableResponse):
		respond.Error(c, http.StatusBadGateway, ErrorCodeUnparseable,
			"The model produced output that could not be parsed. Try again.", nil)
	case errors.Is(err, ErrRender):
		respond.Error(c, http.StatusInternalServerError, ErrorCodeRender,
			"Failed to fill the document template.", nil)
	case errors.Is(err, ErrPDFConversion):
		respond.Error(c, http.StatusInternalServerError, ErrorCodePDF,
			"PDF conversion failed. Check that Chrome or Chromium is installed.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "generation failed", nil)
	}
}

func capKeywords(result ats.Result) ats.Result {
	if len(result.Matched) > maxKeywordsInPayload {
		result.Matched = result.Matched[:maxKeywordsInPayload]
	}
	if len(result.Missing) > maxKeywordsInPayload {
		result.Missing = result.Missing[:maxKeywordsInPayload]
	}
	return result
}
