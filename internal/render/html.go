// Package render turns a parsed tailoring result into the final PDF
// artifact: an embedded HTML layout filled with html/template, converted
// through headless Chrome.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"cvtailor-backend/internal/tailoring"
)

//go:embed templates/cv.html
var templateFS embed.FS

var cvTemplate = template.Must(template.ParseFS(templateFS, "templates/cv.html"))

// HTML fills the CV layout template with a tailoring result.
func HTML(result tailoring.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := cvTemplate.Execute(&buf, result); err != nil {
		return nil, fmt.Errorf("%w: %v", tailoring.ErrRender, err)
	}
	return buf.Bytes(), nil
}
