package tailoring

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cvtailor-backend/internal/llm"
	"cvtailor-backend/internal/prompt"
)

// fakeLLM returns canned output or a canned error.
type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fakeRenderer writes a marker file or fails.
type fakeRenderer struct {
	err   error
	paths []string
}

func (f *fakeRenderer) WritePDF(ctx context.Context, result Result, outputPath string) error {
	if f.err != nil {
		return f.err
	}
	f.paths = append(f.paths, outputPath)
	return os.WriteFile(outputPath, []byte("%PDF-fake"), 0o644)
}

// fakeStore keeps uploads in memory and records deletes.
type fakeStore struct {
	saved   map[string][]byte
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string][]byte)}
}

func (f *fakeStore) Save(ctx context.Context, fileName string, r io.Reader) (string, int64, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := fmt.Sprintf("key-%d-%s", len(f.saved), fileName)
	f.saved[key] = data
	return key, int64(len(data)), "application/zip", nil
}

func (f *fakeStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.saved[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.saved, key)
	return nil
}

func docxFixture(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte(`<w:document xmlns:w="x"><w:body><w:p><w:r><w:t>Experienced barista skilled in customer service and teamwork</w:t></w:r></w:p></w:body></w:document>`))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestService(t *testing.T, model *fakeLLM, renderer *fakeRenderer) (*Service, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return &Service{
		Uploads:   store,
		LLM:       model,
		Renderer:  renderer,
		Repo:      NewMemoryRepo(),
		OutputDir: t.TempDir(),
	}, store
}

func baseInput(t *testing.T, kind prompt.Kind) GenerateInput {
	return GenerateInput{
		FileName:       "resume.docx",
		FileData:       docxFixture(t),
		JobDescription: "Looking for a barista with customer service, teamwork, and POS experience",
		Kind:           kind,
	}
}

func TestGeneratePipeline(t *testing.T) {
	model := &fakeLLM{response: `{"name": "Ada Lovelace", "title": "Barista"}`}
	renderer := &fakeRenderer{}
	svc, store := newTestService(t, model, renderer)

	out, err := svc.Generate(context.Background(), baseInput(t, prompt.KindTailorResume))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if out.ID == "" {
		t.Error("ID is empty")
	}
	if out.Result.Resume.Name != "Ada Lovelace" {
		t.Errorf("Resume.Name = %q", out.Result.Resume.Name)
	}
	if !strings.Contains(out.CVText, "Experienced barista") {
		t.Errorf("CVText = %q", out.CVText)
	}
	if out.PDFName != "tailored_cv_"+out.ID+".pdf" {
		t.Errorf("PDFName = %q", out.PDFName)
	}
	if model.calls != 1 {
		t.Errorf("model called %d times, want exactly 1", model.calls)
	}

	// ATS score comes from the extracted text, here the barista example.
	if out.Result.ATS.Score != 83 {
		t.Errorf("ATS.Score = %d, want 83", out.Result.ATS.Score)
	}

	// PDF written into the output dir.
	if len(renderer.paths) != 1 {
		t.Fatalf("renderer wrote %d files, want 1", len(renderer.paths))
	}
	if _, err := os.Stat(filepath.Join(svc.OutputDir, out.PDFName)); err != nil {
		t.Errorf("output PDF missing: %v", err)
	}

	// Upload removed after success.
	if len(store.saved) != 0 {
		t.Errorf("%d uploads left behind, want 0", len(store.saved))
	}
	if len(store.deleted) != 1 {
		t.Errorf("deleted %d uploads, want 1", len(store.deleted))
	}

	// Completed record kept.
	gen, err := svc.Get(context.Background(), out.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gen.Status != StatusCompleted {
		t.Errorf("Status = %q, want %q", gen.Status, StatusCompleted)
	}
	if gen.ATSScore != 83 {
		t.Errorf("recorded ATSScore = %d, want 83", gen.ATSScore)
	}
}

func TestGenerateModelUnavailable(t *testing.T) {
	model := &fakeLLM{err: fmt.Errorf("%w: connection refused", llm.ErrUnavailable)}
	renderer := &fakeRenderer{}
	svc, _ := newTestService(t, model, renderer)

	_, err := svc.Generate(context.Background(), baseInput(t, prompt.KindTailorResume))
	if !errors.Is(err, llm.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}

	// No PDF is produced when the model never answered.
	if len(renderer.paths) != 0 {
		t.Errorf("renderer wrote %d files, want 0", len(renderer.paths))
	}

	// The failure is recorded.
	gens, err := svc.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(gens) != 1 || gens[0].Status != StatusFailed {
		t.Errorf("records = %+v, want one failed", gens)
	}
}

func TestGenerateUnparseableResponse(t *testing.T) {
	model := &fakeLLM{response: "I cannot produce JSON today."}
	renderer := &fakeRenderer{}
	svc, _ := newTestService(t, model, renderer)

	_, err := svc.Generate(context.Background(), baseInput(t, prompt.KindTailorResume))
	if !errors.Is(err, ErrUnparseableResponse) {
		t.Fatalf("err = %v, want ErrUnparseableResponse", err)
	}
	if len(renderer.paths) != 0 {
		t.Errorf("renderer wrote %d files, want 0", len(renderer.paths))
	}
}

func TestGenerateRenderFailure(t *testing.T) {
	model := &fakeLLM{response: `{"name": "Ada"}`}
	renderer := &fakeRenderer{err: fmt.Errorf("%w: chrome exploded", ErrPDFConversion)}
	svc, _ := newTestService(t, model, renderer)

	_, err := svc.Generate(context.Background(), baseInput(t, prompt.KindTailorResume))
	if !errors.Is(err, ErrPDFConversion) {
		t.Fatalf("err = %v, want ErrPDFConversion", err)
	}

	gens, _ := svc.List(context.Background(), 10)
	if len(gens) != 1 || gens[0].Status != StatusFailed {
		t.Errorf("records = %+v, want one failed", gens)
	}
}

func TestGenerateUnifiedIncludesSections(t *testing.T) {
	model := &fakeLLM{response: `{
		"resume": {"name": "Ada"},
		"cover_letter": {"body": "Dear team,"},
		"gap_analysis": {"overall_fit": "Strong"}
	}`}
	svc, _ := newTestService(t, model, &fakeRenderer{})

	out, err := svc.Generate(context.Background(), baseInput(t, prompt.KindUnified))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.Result.CoverLetter == nil || out.Result.GapAnalysis == nil {
		t.Errorf("sections missing: %+v", out.Result)
	}
	if out.Result.Incomplete {
		t.Error("Incomplete = true, want false")
	}
}

func TestCoverLetterAndGapAnalysis(t *testing.T) {
	model := &fakeLLM{response: `{"cover_letter": {"subject_line": "Hi", "body": "Dear team,"}}`}
	svc, _ := newTestService(t, model, &fakeRenderer{})

	letter, err := svc.CoverLetter(context.Background(), "resume text", "job text")
	if err != nil {
		t.Fatalf("CoverLetter: %v", err)
	}
	if letter.Body != "Dear team," {
		t.Errorf("Body = %q", letter.Body)
	}

	model.response = `{"overall_fit": "Fair", "strengths": ["Go"]}`
	gap, err := svc.GapAnalysis(context.Background(), "resume text", "job text")
	if err != nil {
		t.Fatalf("GapAnalysis: %v", err)
	}
	if gap.OverallFit != "Fair" {
		t.Errorf("OverallFit = %q", gap.OverallFit)
	}
}

func TestCoverLetterMissingInput(t *testing.T) {
	svc, _ := newTestService(t, &fakeLLM{response: "{}"}, &fakeRenderer{})
	if _, err := svc.CoverLetter(context.Background(), "", "job"); !errors.Is(err, prompt.ErrMissingInput) {
		t.Errorf("err = %v, want ErrMissingInput", err)
	}
}
