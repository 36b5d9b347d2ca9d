package prompt

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind names a prompt template.
type Kind string

const (
	KindTailorResume Kind = "tailor-resume"
	KindCoverLetter  Kind = "cover-letter"
	KindGapAnalysis  Kind = "gap-analysis"
	KindUnified      Kind = "unified"
)

const (
	defaultMaxTokens = 4096
	unifiedMaxTokens = 8192

	// Focused templates only need the resume head, which keeps the
	// prompt small enough for local models.
	maxResumeChars = 3000
)

var (
	// ErrTemplateNotFound indicates an unknown template kind.
	ErrTemplateNotFound = errors.New("prompt template not found")

	// ErrMissingInput indicates an empty resume or job description.
	ErrMissingInput = errors.New("resume text and job description are required")
)

var (
	//go:embed prompts/tailor_resume.txt
	tailorResumeSystem string
	//go:embed prompts/cover_letter.txt
	coverLetterSystem string
	//go:embed prompts/gap_analysis.txt
	gapAnalysisSystem string
	//go:embed prompts/unified_jobkit.txt
	unifiedSystem string
)

// Prompt is a fully assembled model request body.
type Prompt struct {
	Kind      Kind
	System    string
	User      string
	MaxTokens int
}

// Build fills the named template with the resume and job description texts.
func Build(kind Kind, resumeText, jobText string) (Prompt, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return Prompt{}, ErrMissingInput
	}

	switch kind {
	case KindTailorResume:
		return Prompt{
			Kind:   kind,
			System: tailorResumeSystem,
			User: fmt.Sprintf(
				"Here is the candidate's current resume:\n\n---\n%s\n---\n\n"+
					"Here is the target job description:\n\n---\n%s\n---\n\n"+
					"Analyze the job description, map the candidate's experience to the requirements, "+
					"and produce the tailored resume as a JSON object. "+
					"Remember: only output valid JSON, nothing else.",
				resumeText, jobText),
			MaxTokens: defaultMaxTokens,
		}, nil
	case KindCoverLetter:
		return Prompt{
			Kind:   kind,
			System: coverLetterSystem,
			User: fmt.Sprintf(
				"RESUME:\n%s\n\nJOB DESCRIPTION:\n%s\n\nWrite the cover letter in JSON format.",
				truncate(resumeText, maxResumeChars), jobText),
			MaxTokens: defaultMaxTokens,
		}, nil
	case KindGapAnalysis:
		return Prompt{
			Kind:   kind,
			System: gapAnalysisSystem,
			User: fmt.Sprintf(
				"RESUME:\n%s\n\nJOB DESCRIPTION:\n%s\n\nPerform gap analysis in JSON format.",
				truncate(resumeText, maxResumeChars), jobText),
			MaxTokens: defaultMaxTokens,
		}, nil
	case KindUnified:
		return Prompt{
			Kind:   kind,
			System: unifiedSystem,
			User: fmt.Sprintf(
				"Here is the candidate's current resume:\n\n---\n%s\n---\n\n"+
					"Here is the target job description:\n\n---\n%s\n---\n\n"+
					"Generate the complete Job Kit: tailored resume, cover letter, and gap analysis. "+
					"Output ONLY the JSON object with keys: resume, cover_letter, gap_analysis.",
				resumeText, jobText),
			MaxTokens: unifiedMaxTokens,
		}, nil
	default:
		return Prompt{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, kind)
	}
}

// ParseKind maps a wire value to a template kind.
func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindTailorResume:
		return KindTailorResume, nil
	case KindCoverLetter:
		return KindCoverLetter, nil
	case KindGapAnalysis:
		return KindGapAnalysis, nil
	case KindUnified:
		return KindUnified, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, raw)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	// Back up so a multi-byte rune is not split at the boundary.
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
