package tailoring

import (
	"time"

	"cvtailor-backend/internal/ats"
	"cvtailor-backend/internal/prompt"
)

// ResumeData is the normalized resume structure the layout template expects.
// Every field is safe to render: normalization guarantees no nils where the
// template iterates.
type ResumeData struct {
	Name           string       `json:"name"`
	Title          string       `json:"title"`
	Summary        string       `json:"summary"`
	Contact        Contact      `json:"contact"`
	Languages      []Language   `json:"languages"`
	Certifications []string     `json:"certifications"`
	Skills         []SkillGroup `json:"skills"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Interests      []string     `json:"interests"`
	AdditionalInfo []string     `json:"additional_info"`
}

type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Age      string `json:"age"`
}

type Language struct {
	Name    string `json:"name"`
	Level   string `json:"level"`
	Percent int    `json:"percent"`
}

type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type Experience struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Date     string   `json:"date"`
	Location string   `json:"location"`
	Bullets  []string `json:"bullets"`
}

type Education struct {
	Degree     string `json:"degree"`
	School     string `json:"school"`
	Year       string `json:"year"`
	Details    string `json:"details"`
	InProgress bool   `json:"in_progress"`
}

// CoverLetter is the structured cover letter section of a model response.
type CoverLetter struct {
	SubjectLine string `json:"subject_line"`
	Body        string `json:"body"`
	ClosingName string `json:"closing_name"`
}

// GapAnalysis lists job requirements the resume does and does not cover.
type GapAnalysis struct {
	OverallFit    string    `json:"overall_fit"`
	Strengths     []string  `json:"strengths"`
	MissingSkills []GapItem `json:"missing_skills"`
}

type GapItem struct {
	Skill        string `json:"skill"`
	WhyItMatters string `json:"why_it_matters"`
	HowToClose   string `json:"how_to_close"`
}

// Result is the structured output of one generation: the parsed sections,
// the ATS score, and whether any expected section could not be recovered.
type Result struct {
	Resume      ResumeData   `json:"resume"`
	CoverLetter *CoverLetter `json:"cover_letter,omitempty"`
	GapAnalysis *GapAnalysis `json:"gap_analysis,omitempty"`
	ATS         ats.Result   `json:"ats"`
	Incomplete  bool         `json:"incomplete"`
}

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Generation is the transient record kept for one pipeline run. Records
// live in memory only; the PDF on disk is the durable artifact.
type Generation struct {
	ID        string      `json:"id"`
	Kind      prompt.Kind `json:"kind"`
	Status    string      `json:"status"`
	ATSScore  int         `json:"atsScore"`
	PDFName   string      `json:"pdfName,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}
