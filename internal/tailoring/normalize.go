package tailoring

import (
	"fmt"
	"strconv"
	"strings"
)

// Defaults applied when the model omits or mangles a field.
const (
	defaultName            = "Candidate"
	defaultTitle           = "Professional"
	defaultLanguageLevel   = "Basic"
	defaultLanguagePercent = 50
	inferredLanguageLevel  = "Proficient"
	inferredLanguagePct    = 70
	defaultSkillCategory   = "Skills"
)

// NormalizeResume coerces arbitrary model JSON into ResumeData. Models
// return missing fields, wrong types, and surprising shapes; every branch
// here has been seen in real output. Nothing returned is nil where the
// template iterates.
func NormalizeResume(raw any) ResumeData {
	obj, _ := raw.(map[string]any)

	out := ResumeData{
		Name:    stringOr(obj["name"], defaultName),
		Title:   stringOr(obj["title"], defaultTitle),
		Summary: stringOr(obj["summary"], ""),
	}

	contact, _ := obj["contact"].(map[string]any)
	out.Contact = Contact{
		Email:    stringOr(contact["email"], ""),
		Phone:    stringOr(contact["phone"], ""),
		Location: stringOr(contact["location"], ""),
		Age:      stringOr(contact["age"], ""),
	}

	out.Languages = normalizeLanguages(obj["languages"])
	out.Certifications = stringSlice(obj["certifications"])
	out.Skills = normalizeSkills(obj["skills"])
	out.Experience = normalizeExperience(obj["experience"])
	out.Education = normalizeEducation(obj["education"])
	out.Interests = stringSlice(obj["interests"])
	out.AdditionalInfo = stringSlice(obj["additional_info"])

	return out
}

// NormalizeCoverLetter coerces a cover letter section. The second return
// is false when the section is absent or carries no usable content.
func NormalizeCoverLetter(raw any) (CoverLetter, bool) {
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return CoverLetter{}, false
		}
		return CoverLetter{Body: v}, true
	case map[string]any:
		letter := CoverLetter{
			SubjectLine: stringOr(v["subject_line"], ""),
			Body:        stringOr(v["body"], ""),
			ClosingName: stringOr(v["closing_name"], ""),
		}
		if letter.Body == "" && letter.SubjectLine == "" {
			return CoverLetter{}, false
		}
		return letter, true
	default:
		return CoverLetter{}, false
	}
}

// NormalizeGapAnalysis coerces a gap analysis section. The second return
// is false when the section is absent or carries no usable content.
func NormalizeGapAnalysis(raw any) (GapAnalysis, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return GapAnalysis{}, false
	}

	gap := GapAnalysis{
		OverallFit:    stringOr(obj["overall_fit"], ""),
		Strengths:     stringSlice(obj["strengths"]),
		MissingSkills: []GapItem{},
	}
	for _, item := range anySlice(obj["missing_skills"]) {
		switch v := item.(type) {
		case string:
			gap.MissingSkills = append(gap.MissingSkills, GapItem{Skill: v})
		case map[string]any:
			gi := GapItem{
				Skill:        stringOr(v["skill"], ""),
				WhyItMatters: stringOr(v["why_it_matters"], ""),
				HowToClose:   stringOr(v["how_to_close"], ""),
			}
			if gi.Skill != "" {
				gap.MissingSkills = append(gap.MissingSkills, gi)
			}
		}
	}

	if gap.OverallFit == "" && len(gap.Strengths) == 0 && len(gap.MissingSkills) == 0 {
		return GapAnalysis{}, false
	}
	return gap, true
}

func normalizeLanguages(raw any) []Language {
	out := []Language{}
	for _, item := range anySlice(raw) {
		switch v := item.(type) {
		case string:
			if v != "" {
				out = append(out, Language{Name: v, Level: inferredLanguageLevel, Percent: inferredLanguagePct})
			}
		case map[string]any:
			lang := Language{
				Name:    stringOr(v["name"], "Unknown"),
				Level:   stringOr(v["level"], defaultLanguageLevel),
				Percent: intOr(v["percent"], defaultLanguagePercent),
			}
			if lang.Percent < 0 {
				lang.Percent = 0
			}
			if lang.Percent > 100 {
				lang.Percent = 100
			}
			out = append(out, lang)
		}
	}
	return out
}

func normalizeSkills(raw any) []SkillGroup {
	out := []SkillGroup{}

	// Some models return {"Category": ["item"]} instead of a list.
	if byCategory, ok := raw.(map[string]any); ok {
		for category, items := range byCategory {
			out = append(out, SkillGroup{Category: category, Items: stringSlice(items)})
		}
		return out
	}

	for _, item := range anySlice(raw) {
		switch v := item.(type) {
		case string:
			if v != "" {
				out = append(out, SkillGroup{Category: defaultSkillCategory, Items: []string{v}})
			}
		case map[string]any:
			out = append(out, SkillGroup{
				Category: stringOr(v["category"], defaultSkillCategory),
				Items:    stringSlice(v["items"]),
			})
		}
	}
	return out
}

func normalizeExperience(raw any) []Experience {
	out := []Experience{}
	for _, item := range anySlice(raw) {
		v, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Experience{
			Title:    stringOr(v["title"], ""),
			Company:  stringOr(v["company"], ""),
			Date:     stringOr(v["date"], ""),
			Location: stringOr(v["location"], ""),
			Bullets:  stringSlice(v["bullets"]),
		})
	}
	return out
}

func normalizeEducation(raw any) []Education {
	out := []Education{}
	for _, item := range anySlice(raw) {
		v, ok := item.(map[string]any)
		if !ok {
			continue
		}
		inProgress, _ := v["in_progress"].(bool)
		out = append(out, Education{
			Degree:     stringOr(v["degree"], ""),
			School:     stringOr(v["school"], ""),
			Year:       stringOr(v["year"], ""),
			Details:    stringOr(v["details"], ""),
			InProgress: inProgress,
		})
	}
	return out
}

func anySlice(raw any) []any {
	s, _ := raw.([]any)
	return s
}

// stringSlice coerces a value into a string list: lists keep their
// stringified elements, scalars become a one-element list, everything
// else is empty.
func stringSlice(raw any) []string {
	out := []string{}
	switch v := raw.(type) {
	case nil:
		return out
	case []any:
		for _, item := range v {
			if s := stringify(item); s != "" {
				out = append(out, s)
			}
		}
	default:
		if s := stringify(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stringOr(raw any, def string) string {
	if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return def
}

func intOr(raw any, def int) int {
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return def
}

func stringify(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
