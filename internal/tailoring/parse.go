package tailoring

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"cvtailor-backend/internal/prompt"
)

var (
	fenceRe         = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// DecodeModelJSON parses model output as a JSON object, repairing the
// failure modes local models actually produce: markdown code fences,
// prose around the object, and trailing commas. Returns
// ErrUnparseableResponse when no object can be recovered.
func DecodeModelJSON(text string) (map[string]any, error) {
	text = strings.TrimSpace(text)

	candidates := []string{text}
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		candidates = append(candidates, text[start:end+1])
	}

	for _, candidate := range candidates {
		if obj, ok := tryDecode(candidate); ok {
			return obj, nil
		}
		if obj, ok := tryDecode(trailingCommaRe.ReplaceAllString(candidate, "$1")); ok {
			return obj, nil
		}
	}

	return nil, fmt.Errorf("%w: no JSON object found", ErrUnparseableResponse)
}

func tryDecode(text string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// ParseResult maps decoded model output into a Result for the template
// kind that produced it. Missing sections are left empty rather than
// failing the parse; Incomplete records that something expected was
// absent.
func ParseResult(kind prompt.Kind, text string) (Result, error) {
	obj, err := DecodeModelJSON(text)
	if err != nil {
		return Result{}, err
	}

	var res Result
	switch kind {
	case prompt.KindUnified:
		resumeRaw, hasResume := obj["resume"]
		if !hasResume {
			// Flat responses happen; treat the whole object as the resume.
			resumeRaw = obj
		}
		res.Resume = NormalizeResume(resumeRaw)

		cover, coverOK := NormalizeCoverLetter(obj["cover_letter"])
		if coverOK {
			res.CoverLetter = &cover
		}
		gap, gapOK := NormalizeGapAnalysis(obj["gap_analysis"])
		if gapOK {
			res.GapAnalysis = &gap
		}
		res.Incomplete = !hasResume || !coverOK || !gapOK
	default:
		res.Resume = NormalizeResume(obj)
	}
	return res, nil
}

// ParseCoverLetter extracts a cover letter from model output, accepting
// either a bare letter object or one nested under "cover_letter".
func ParseCoverLetter(text string) (CoverLetter, error) {
	obj, err := DecodeModelJSON(text)
	if err != nil {
		return CoverLetter{}, err
	}
	if nested, ok := obj["cover_letter"]; ok {
		if letter, ok := NormalizeCoverLetter(nested); ok {
			return letter, nil
		}
	}
	letter, _ := NormalizeCoverLetter(obj)
	return letter, nil
}

// ParseGapAnalysis extracts a gap analysis from model output, accepting
// either a bare object or one nested under "gap_analysis".
func ParseGapAnalysis(text string) (GapAnalysis, error) {
	obj, err := DecodeModelJSON(text)
	if err != nil {
		return GapAnalysis{}, err
	}
	if nested, ok := obj["gap_analysis"]; ok {
		if gap, ok := NormalizeGapAnalysis(nested); ok {
			return gap, nil
		}
	}
	gap, _ := NormalizeGapAnalysis(obj)
	return gap, nil
}
