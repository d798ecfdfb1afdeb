package resumes

import (
	"time"

	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

type generateRequest struct {
	Candidate map[string]any `json:"candidate" binding:"required"`
	Enhance   bool           `json:"enhance"`
}

// ResumeResponse is the outward-facing representation of a generated resume.
type ResumeResponse struct {
	ResumeID      string                          `json:"resumeId"`
	CandidateName string                          `json:"candidateName"`
	FileName      string                          `json:"fileName"`
	MimeType      string                          `json:"mimeType"`
	SizeBytes     int64                           `json:"sizeBytes"`
	Enhanced      bool                            `json:"enhanced"`
	Warnings      []render.ContentOverflowWarning `json:"warnings"`
	CreatedAt     time.Time                       `json:"createdAt"`
}

// ResumeDetailResponse adds the stored candidate record.
type ResumeDetailResponse struct {
	ResumeResponse
	Record model.CandidateRecord `json:"record"`
}

// PreviewResponse carries a render that was not persisted.
type PreviewResponse struct {
	Record   model.CandidateRecord           `json:"record"`
	Blocks   []render.Block                  `json:"blocks"`
	Warnings []render.ContentOverflowWarning `json:"warnings"`
}

func toResponse(resume GeneratedResume) ResumeResponse {
	warnings := resume.Warnings
	if warnings == nil {
		warnings = []render.ContentOverflowWarning{}
	}
	return ResumeResponse{
		ResumeID:      resume.ID,
		CandidateName: resume.CandidateName,
		FileName:      resume.FileName,
		MimeType:      resume.MimeType,
		SizeBytes:     resume.SizeBytes,
		Enhanced:      resume.Enhanced,
		Warnings:      warnings,
		CreatedAt:     resume.CreatedAt,
	}
}

func toDetailResponse(resume GeneratedResume) ResumeDetailResponse {
	return ResumeDetailResponse{
		ResumeResponse: toResponse(resume),
		Record:         resume.Record,
	}
}

func toPreviewResponse(p Preview) PreviewResponse {
	blocks := p.Document.Blocks
	if blocks == nil {
		blocks = []render.Block{}
	}
	return PreviewResponse{
		Record:   p.Record,
		Blocks:   blocks,
		Warnings: p.Warnings,
	}
}
