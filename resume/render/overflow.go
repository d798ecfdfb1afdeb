package render

import (
	"fmt"
	"unicode/utf8"

	"resume-builder/resume/model"
)

// Soft display limits. Exceeding one yields a warning, never an error.
const (
	MaxBulletsPerEntry   = 8
	MaxBulletRunes       = 300
	MaxExperienceEntries = 10
	MaxSkills            = 30
	MaxListItems         = 15
)

// ContentOverflowWarning reports a field whose content exceeds a soft
// display recommendation. Rendering proceeds regardless.
type ContentOverflowWarning struct {
	Field   string `json:"field"`
	Limit   int    `json:"limit"`
	Actual  int    `json:"actual"`
	Message string `json:"message"`
}

func (w ContentOverflowWarning) String() string {
	return w.Message
}

// CheckOverflow returns the soft-limit warnings for a record in field order.
func CheckOverflow(record model.CandidateRecord) []ContentOverflowWarning {
	var warnings []ContentOverflowWarning
	add := func(field string, limit, actual int, unit string) {
		if actual <= limit {
			return
		}
		warnings = append(warnings, ContentOverflowWarning{
			Field:   field,
			Limit:   limit,
			Actual:  actual,
			Message: fmt.Sprintf("%s has %d %s, recommended at most %d", field, actual, unit, limit),
		})
	}

	add("key_skills", MaxSkills, len(record.KeySkills), "items")
	add("experience", MaxExperienceEntries, len(record.Experience), "entries")
	for i, exp := range record.Experience {
		add(fmt.Sprintf("experience[%d].bullets", i), MaxBulletsPerEntry, len(exp.Bullets), "bullets")
		for j, bullet := range exp.Bullets {
			add(fmt.Sprintf("experience[%d].bullets[%d]", i, j), MaxBulletRunes, utf8.RuneCountInString(bullet), "characters")
		}
	}
	add("certifications", MaxListItems, len(record.Certifications), "items")
	add("awards", MaxListItems, len(record.Awards), "items")
	add("technical_skills", MaxSkills, len(record.TechnicalSkills), "items")
	return warnings
}
