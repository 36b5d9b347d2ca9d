package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cvtailor-backend/internal/tailoring"
)

// PDFRenderer implements tailoring.Renderer with the HTML template and
// headless Chrome.
type PDFRenderer struct{}

// WritePDF fills the layout template and converts it to a PDF at
// outputPath. A temporary .html file is written next to the output and
// removed afterwards.
func (PDFRenderer) WritePDF(ctx context.Context, result tailoring.Result, outputPath string) error {
	html, err := HTML(result)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir output: %v", tailoring.ErrPDFConversion, err)
	}

	htmlPath := outputPath + ".html"
	if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
		return fmt.Errorf("%w: write temp html: %v", tailoring.ErrPDFConversion, err)
	}
	defer os.Remove(htmlPath)

	return HTMLToPDF(ctx, htmlPath, outputPath)
}

var _ tailoring.Renderer = PDFRenderer{}
