// Package ats computes a keyword-overlap score between a resume and a job
// description, approximating how an applicant tracking system would rank
// the match.
package ats

import (
	"strings"
)

// Result is the outcome of scoring one resume against one job description.
type Result struct {
	// Score is the percentage of job-description keywords found in the
	// resume, always in [0,100]. Zero keywords scores 0 by definition.
	Score   int      `json:"score"`
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// Keyword extraction policy, fixed so scores are reproducible:
// lowercase, non-alphanumerics become spaces, tokens shorter than
// minKeywordLen are dropped, stop-words (English function words plus
// recruiting filler) are dropped, duplicates collapse to first appearance.
const minKeywordLen = 3

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(
		// Function words.
		"a an the and or but in on at to for with by of is are was were be been being " +
			"have has had do does did can could will would shall should may might must " +
			"i you he she it we they that this these those from as if when where why how " +
			"all any both each few more most other some such no nor not only own same " +
			"so than too very into out our your their its about over under per via " +
			// Recruiting filler common in job postings.
			"looking seeking hiring join apply applicant applicants candidate candidates " +
			"ideal role position job company team opportunity responsibilities duties " +
			"required requirement requirements preferred qualifications ability able " +
			"strong excellent good great plus bonus years year") {
		stopWords[w] = struct{}{}
	}
}

// Score computes the keyword-overlap score between resume text and job
// description text. Pure and deterministic: the same two inputs always
// yield the same result.
func Score(resumeText, jobText string) Result {
	keywords := ExtractKeywords(jobText)
	if len(keywords) == 0 {
		return Result{Score: 0, Matched: []string{}, Missing: []string{}}
	}

	resumeTokens := tokenSet(resumeText)

	matched := make([]string, 0, len(keywords))
	missing := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if present(kw, resumeTokens) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	return Result{
		Score:   100 * len(matched) / len(keywords),
		Matched: matched,
		Missing: missing,
	}
}

// ExtractKeywords returns the significant keywords of a job description,
// deduplicated in order of first appearance.
func ExtractKeywords(text string) []string {
	seen := make(map[string]struct{})
	var keywords []string
	for _, tok := range tokenize(text) {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		keywords = append(keywords, tok)
	}
	return keywords
}

// present reports whether a keyword occurs in the resume. A keyword counts
// as present when a resume token equals it, or when a resume token extends
// it ("experienced" satisfies "experience"). The prefix rule needs at least
// four characters so short keywords like "pos" only match exactly.
func present(keyword string, resumeTokens map[string]struct{}) bool {
	if _, ok := resumeTokens[keyword]; ok {
		return true
	}
	if len(keyword) < 4 {
		return false
	}
	for tok := range resumeTokens {
		if strings.HasPrefix(tok, keyword) {
			return true
		}
	}
	return false
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range splitTokens(text) {
		set[tok] = struct{}{}
	}
	return set
}

func tokenize(text string) []string {
	var out []string
	for _, tok := range splitTokens(text) {
		if len(tok) < minKeywordLen {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func splitTokens(text string) []string {
	normalized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, text)
	return strings.Fields(normalized)
}
