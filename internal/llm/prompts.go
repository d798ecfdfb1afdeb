package llm

import (
	_ "embed"
	"fmt"
	"strings"

	"resume-builder/resume/model"
)

// SystemPrompt frames every enrichment request.
const SystemPrompt = "You are an experienced Australian resume writer with over 10 years in the industry. " +
	"Your task is to create tailored resumes for senior-level positions. Focus on showcasing achievements, " +
	"skills, and experiences that highlight expertise and leadership qualities."

var (
	//go:embed prompts/summary_v1.txt
	summaryPromptV1 string
)

// SummaryInstructions returns the developer instructions for summary rewrites.
func SummaryInstructions() string {
	return strings.TrimSpace(summaryPromptV1)
}

// SummaryUserPrompt renders the parts of the record that inform the summary.
func SummaryUserPrompt(record model.CandidateRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", record.Name)
	if summary, ok := record.ProfessionalSummary.Get(); ok {
		fmt.Fprintf(&b, "Current summary: %s\n", summary)
	}
	if len(record.KeySkills) > 0 {
		fmt.Fprintf(&b, "Key skills: %s\n", strings.Join(record.KeySkills, ", "))
	}
	for _, exp := range record.Experience {
		fmt.Fprintf(&b, "Role: %s", joinNonEmpty(" at ", exp.Title, exp.Company))
		if dates, ok := exp.Dates.Get(); ok {
			fmt.Fprintf(&b, " (%s)", dates)
		}
		b.WriteString("\n")
		for _, bullet := range exp.Bullets {
			fmt.Fprintf(&b, "  - %s\n", bullet)
		}
	}
	for _, edu := range record.Education {
		fmt.Fprintf(&b, "Education: %s\n", joinNonEmpty(", ", edu.Degree, edu.Institution))
	}
	if len(record.Certifications) > 0 {
		fmt.Fprintf(&b, "Certifications: %s\n", strings.Join(record.Certifications, "; "))
	}
	if len(record.TechnicalSkills) > 0 {
		fmt.Fprintf(&b, "Technical skills: %s\n", strings.Join(record.TechnicalSkills, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
