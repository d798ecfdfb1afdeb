package resumes

import (
	"time"

	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

// GeneratedResume is the stored metadata of one rendered resume file.
type GeneratedResume struct {
	ID            string
	UserID        string
	CandidateName string
	FileName      string
	StorageKey    string
	MimeType      string
	SizeBytes     int64
	Enhanced      bool
	Record        model.CandidateRecord
	Warnings      []render.ContentOverflowWarning
	CreatedAt     time.Time
	DeletedAt     *time.Time
}
