package tailoring

import "errors"

var (
	// ErrNotFound indicates an entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrUnparseableResponse indicates the model output contained no
	// recognizable structure at all. Partially recoverable output never
	// raises this; it degrades to an incomplete Result instead.
	ErrUnparseableResponse = errors.New("unparseable model response")

	// ErrRender indicates the layout template could not be filled.
	ErrRender = errors.New("render failed")

	// ErrPDFConversion indicates the PDF engine could not produce output.
	ErrPDFConversion = errors.New("pdf conversion failed")
)

const (
	ErrorCodeValidation    = "validation_error"
	ErrorCodeModelDown     = "model_unavailable"
	ErrorCodeModelTimeout  = "model_timeout"
	ErrorCodeModelResponse = "model_response_error"
	ErrorCodeUnparseable   = "unparseable_response"
	ErrorCodeRender        = "render_error"
	ErrorCodePDF           = "pdf_conversion_error"
	ErrorCodeInternal      = "internal_error"
)
