package render

import "resume-builder/resume/model"

// Render walks the record through the section plan and returns the ordered
// block sequence. It is pure: equal records give equal documents, and no
// timestamp or other ambient value is embedded.
func Render(record model.CandidateRecord) RenderedDocument {
	b := &builder{}
	for _, s := range sectionPlan {
		if !s.include(record) {
			continue
		}
		b.section = s.id
		if s.heading != "" {
			b.heading(s.heading)
		}
		s.build(b, record)
	}
	return RenderedDocument{Blocks: b.blocks}
}

// RenderToFile validates the record, renders it and persists the document at
// path. Validation failures are returned before any file work starts.
func RenderToFile(record model.CandidateRecord, path string) (string, error) {
	if err := record.Validate(); err != nil {
		return "", err
	}
	return WriteFile(Render(record), path)
}
