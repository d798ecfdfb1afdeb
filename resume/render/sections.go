package render

import (
	"strings"

	"resume-builder/resume/model"
)

// Section ids, in emission order.
const (
	SectionName            = "name"
	SectionContact         = "contact"
	SectionSummary         = "professional_summary"
	SectionKeySkills       = "key_skills"
	SectionExperience      = "experience"
	SectionEducation       = "education"
	SectionCertifications  = "certifications"
	SectionAwards          = "awards"
	SectionTechnicalSkills = "technical_skills"
	SectionAdditionalInfo  = "additional_information"
)

const (
	fieldSeparator = " | "
	skillSeparator = ", "
)

// section pairs an inclusion predicate with a builder. The heading, when set,
// is emitted once before build runs and never for an excluded section.
type section struct {
	id      string
	heading string
	include func(model.CandidateRecord) bool
	build   func(*builder, model.CandidateRecord)
}

var sectionPlan = []section{
	{
		id:      SectionName,
		include: func(r model.CandidateRecord) bool { return r.Name != "" },
		build: func(b *builder, r model.CandidateRecord) {
			b.add(KindHeading, strings.ToUpper(r.Name), StyleMap["name"])
		},
	},
	{
		id:      SectionContact,
		include: func(r model.CandidateRecord) bool { return contactLine(r.Contact) != "" },
		build: func(b *builder, r model.CandidateRecord) {
			b.paragraph(contactLine(r.Contact), "contact")
		},
	},
	{
		id:      SectionSummary,
		heading: "Professional Summary",
		include: func(r model.CandidateRecord) bool { return present(r.ProfessionalSummary) },
		build: func(b *builder, r model.CandidateRecord) {
			b.paragraph(r.ProfessionalSummary.OrEmpty(), "body")
		},
	},
	{
		id:      SectionKeySkills,
		heading: "Key Skills",
		include: func(r model.CandidateRecord) bool { return len(r.KeySkills) > 0 },
		build: func(b *builder, r model.CandidateRecord) {
			b.paragraph(strings.Join(r.KeySkills, skillSeparator), "body")
		},
	},
	{
		id:      SectionExperience,
		heading: "Work Experience",
		include: func(r model.CandidateRecord) bool { return len(r.Experience) > 0 },
		build:   buildExperience,
	},
	{
		id:      SectionEducation,
		heading: "Education",
		include: func(r model.CandidateRecord) bool { return len(r.Education) > 0 },
		build:   buildEducation,
	},
	{
		id:      SectionCertifications,
		heading: "Certifications",
		include: func(r model.CandidateRecord) bool { return len(r.Certifications) > 0 },
		build: func(b *builder, r model.CandidateRecord) {
			for _, cert := range r.Certifications {
				b.bullet(cert)
			}
		},
	},
	{
		id:      SectionAwards,
		heading: "Awards",
		include: func(r model.CandidateRecord) bool { return len(r.Awards) > 0 },
		build: func(b *builder, r model.CandidateRecord) {
			for _, award := range r.Awards {
				b.bullet(award)
			}
		},
	},
	{
		id:      SectionTechnicalSkills,
		heading: "Technical Skills",
		include: func(r model.CandidateRecord) bool { return len(r.TechnicalSkills) > 0 },
		build: func(b *builder, r model.CandidateRecord) {
			b.paragraph(strings.Join(r.TechnicalSkills, skillSeparator), "body")
		},
	},
	{
		id:      SectionAdditionalInfo,
		heading: "Additional Information",
		include: func(r model.CandidateRecord) bool { return present(r.AdditionalInformation) },
		build: func(b *builder, r model.CandidateRecord) {
			b.paragraph(r.AdditionalInformation.OrEmpty(), "body")
		},
	},
}

func buildExperience(b *builder, r model.CandidateRecord) {
	for i, exp := range r.Experience {
		if i > 0 {
			b.spacer()
		}
		if role := joinPresent(fieldSeparator, model.Some(exp.Title), model.Some(exp.Company)); role != "" {
			b.paragraph(role, "roleLine")
		}
		if meta := joinPresent(fieldSeparator, exp.Location, exp.Dates); meta != "" {
			b.paragraph(meta, "meta")
		}
		if present(exp.Description) {
			b.paragraph(exp.Description.OrEmpty(), "body")
		}
		for _, bullet := range exp.Bullets {
			b.bullet(bullet)
		}
	}
}

func buildEducation(b *builder, r model.CandidateRecord) {
	for _, edu := range r.Education {
		if line := joinPresent(" in ", model.Some(edu.Degree), edu.Field); line != "" {
			b.paragraph(line, "roleLine")
		}
		if meta := joinPresent(fieldSeparator, model.Some(edu.Institution), edu.GraduationYear); meta != "" {
			b.paragraph(meta, "meta")
		}
		b.spacer()
	}
}

func contactLine(c model.Contact) string {
	return joinPresent(fieldSeparator, c.Email, c.Phone, c.Location)
}

func present(o model.Optional) bool {
	v, ok := o.Get()
	return ok && strings.TrimSpace(v) != ""
}

func joinPresent(sep string, values ...model.Optional) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if present(v) {
			parts = append(parts, v.OrEmpty())
		}
	}
	return strings.Join(parts, sep)
}
