package model

import "strings"

// CandidateRecord is the canonical, validated resume content for one person.
type CandidateRecord struct {
	Name                  string            `json:"name" validate:"required,max=100"`
	Contact               Contact           `json:"contact"`
	ProfessionalSummary   Optional          `json:"professional_summary" validate:"omitempty,min=10,max=500"`
	KeySkills             []string          `json:"key_skills" validate:"dive,required"`
	Experience            []ExperienceEntry `json:"experience" validate:"dive"`
	Education             []EducationEntry  `json:"education" validate:"dive"`
	Certifications        []string          `json:"certifications" validate:"dive,required"`
	Awards                []string          `json:"awards" validate:"dive,required"`
	TechnicalSkills       []string          `json:"technical_skills" validate:"dive,required"`
	AdditionalInformation Optional          `json:"additional_information"`
}

// Contact captures how to reach the candidate.
type Contact struct {
	Email    Optional `json:"email" validate:"omitempty,email"`
	Phone    Optional `json:"phone" validate:"omitempty,phone"`
	Location Optional `json:"location"`
}

// ExperienceEntry represents one work history entry. Bullets keep input order.
// Blank title or company values are left out of the rendered role line.
type ExperienceEntry struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    Optional `json:"location"`
	Dates       Optional `json:"dates"`
	Description Optional `json:"description"`
	Bullets     []string `json:"bullets" validate:"dive,required"`
}

// EducationEntry represents one education entry.
type EducationEntry struct {
	Degree         string   `json:"degree"`
	Institution    string   `json:"institution"`
	Field          Optional `json:"field"`
	GraduationYear Optional `json:"graduation_year"`
}

// Validate enforces the record constraints without modifying it.
func (r CandidateRecord) Validate() error {
	return validateRecord(r)
}

// Canonical trims text fields, turns blank optionals into None and
// replaces nil sequences with empty ones.
func (r CandidateRecord) Canonical() CandidateRecord {
	out := CandidateRecord{
		Name: strings.TrimSpace(r.Name),
		Contact: Contact{
			Email:    r.Contact.Email.canonical(),
			Phone:    r.Contact.Phone.canonical(),
			Location: r.Contact.Location.canonical(),
		},
		ProfessionalSummary:   r.ProfessionalSummary.canonical(),
		KeySkills:             trimAll(r.KeySkills),
		Experience:            make([]ExperienceEntry, 0, len(r.Experience)),
		Education:             make([]EducationEntry, 0, len(r.Education)),
		Certifications:        trimAll(r.Certifications),
		Awards:                trimAll(r.Awards),
		TechnicalSkills:       trimAll(r.TechnicalSkills),
		AdditionalInformation: r.AdditionalInformation.canonical(),
	}
	for _, exp := range r.Experience {
		out.Experience = append(out.Experience, ExperienceEntry{
			Title:       strings.TrimSpace(exp.Title),
			Company:     strings.TrimSpace(exp.Company),
			Location:    exp.Location.canonical(),
			Dates:       exp.Dates.canonical(),
			Description: exp.Description.canonical(),
			Bullets:     trimAll(exp.Bullets),
		})
	}
	for _, edu := range r.Education {
		out.Education = append(out.Education, EducationEntry{
			Degree:         strings.TrimSpace(edu.Degree),
			Institution:    strings.TrimSpace(edu.Institution),
			Field:          edu.Field.canonical(),
			GraduationYear: edu.GraduationYear.canonical(),
		})
	}
	return out
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
