package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

// Service contains business logic for generated resumes.
type Service struct {
	Repo     Repo
	Store    object.ObjectStore
	Enricher llm.Enricher
	WorkDir  string
	Now      func() time.Time
}

// GenerateInput is the raw request for a new resume.
type GenerateInput struct {
	Candidate map[string]any
	Enhance   bool
}

// Preview is a rendered document that was never written to disk.
type Preview struct {
	Record   model.CandidateRecord
	Document render.RenderedDocument
	Warnings []render.ContentOverflowWarning
}

// Generate normalizes, optionally enriches, renders and stores a resume.
func (s *Service) Generate(ctx context.Context, userID string, in GenerateInput) (resume GeneratedResume, err error) {
	if strings.TrimSpace(userID) == "" {
		return GeneratedResume{}, ErrInvalidInput
	}
	if s.Repo == nil || s.Store == nil {
		return GeneratedResume{}, errors.New("missing dependencies")
	}

	started := time.Now()
	defer func() {
		metrics.ObserveRenderDuration(time.Since(started))
		metrics.IncRender(outcomeFor(err))
	}()

	record, warnings, err := s.prepare(ctx, in)
	if err != nil {
		return GeneratedResume{}, err
	}

	id := uuid.NewString()
	workDir := s.WorkDir
	if workDir == "" {
		workDir = os.TempDir()
	}
	workPath := filepath.Join(workDir, id+".docx")
	written, err := render.RenderToFile(record, workPath)
	if err != nil {
		return GeneratedResume{}, err
	}
	defer func() {
		if rmErr := os.Remove(written); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			telemetry.Warn("resume.work_file_cleanup_failed", map[string]any{"path": written, "err": rmErr})
		}
	}()

	fileName := util.SlugFileName(record.Name, "docx")
	key, size, err := s.saveFile(ctx, userID, fileName, written)
	if err != nil {
		return GeneratedResume{}, err
	}

	resume = GeneratedResume{
		ID:            id,
		UserID:        userID,
		CandidateName: record.Name,
		FileName:      fileName,
		StorageKey:    key,
		MimeType:      render.DocxMimeType,
		SizeBytes:     size,
		Enhanced:      in.Enhance,
		Record:        record,
		Warnings:      warnings,
		CreatedAt:     s.now(),
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		if delErr := s.Store.Delete(ctx, key); delErr != nil {
			telemetry.Warn("resume.orphan_cleanup_failed", map[string]any{"storage_key": key, "err": delErr})
		}
		return GeneratedResume{}, fmt.Errorf("record resume: %w", err)
	}

	telemetry.Info("resume.generated", map[string]any{
		"resume_id":  resume.ID,
		"user_id":    userID,
		"size_bytes": size,
		"enhanced":   in.Enhance,
		"warnings":   len(warnings),
	})
	return resume, nil
}

// Preview normalizes, optionally enriches and renders without touching
// the file system or the repository.
func (s *Service) Preview(ctx context.Context, in GenerateInput) (Preview, error) {
	record, warnings, err := s.prepare(ctx, in)
	if err != nil {
		return Preview{}, err
	}
	return Preview{
		Record:   record,
		Document: render.Render(record),
		Warnings: warnings,
	}, nil
}

// Get returns a generated resume by ID for a user.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (GeneratedResume, error) {
	if userID == "" || resumeID == "" {
		return GeneratedResume{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns generated resumes for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]GeneratedResume, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Open returns the stored file of a resume. Callers must close the reader.
func (s *Service) Open(ctx context.Context, userID, resumeID string) (GeneratedResume, io.ReadCloser, error) {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return GeneratedResume{}, nil, err
	}
	rc, err := s.Store.Open(ctx, resume.StorageKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return GeneratedResume{}, nil, ErrNotFound
		}
		return GeneratedResume{}, nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return resume, rc, nil
}

// Delete soft-deletes the metadata and removes the stored file.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return err
	}
	if err := s.Repo.SoftDelete(ctx, userID, resumeID); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, resume.StorageKey); err != nil && !errors.Is(err, object.ErrNotFound) {
		telemetry.Warn("resume.object_delete_failed", map[string]any{"resume_id": resumeID, "err": err})
	}
	return nil
}

func (s *Service) prepare(ctx context.Context, in GenerateInput) (model.CandidateRecord, []render.ContentOverflowWarning, error) {
	record, err := model.Normalize(in.Candidate)
	if err != nil {
		return model.CandidateRecord{}, nil, err
	}
	if in.Enhance {
		enricher := s.Enricher
		if enricher == nil {
			enricher = llm.PlaceholderEnricher{}
		}
		record, err = llm.Apply(ctx, enricher, record)
		if err != nil {
			return model.CandidateRecord{}, nil, err
		}
	}

	warnings := render.CheckOverflow(record)
	for _, w := range warnings {
		telemetry.Warn("resume.content_overflow", map[string]any{
			"field":   w.Field,
			"limit":   w.Limit,
			"actual":  w.Actual,
			"message": w.Message,
		})
		metrics.IncOverflowWarning(topLevelField(w.Field))
	}
	if warnings == nil {
		warnings = []render.ContentOverflowWarning{}
	}
	return record, warnings, nil
}

func (s *Service) saveFile(ctx context.Context, userID, fileName, path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("%w: open rendered file: %v", ErrStorage, err)
	}
	defer f.Close()

	key, size, err := s.Store.Save(ctx, userID, fileName, render.DocxMimeType, f)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return key, size, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func outcomeFor(err error) string {
	var (
		validationErr *model.ValidationError
		enrichErr     *llm.EnrichmentError
		renderErr     *render.RenderError
	)
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &validationErr), errors.Is(err, ErrInvalidInput):
		return metrics.OutcomeValidationError
	case errors.As(err, &enrichErr):
		return metrics.OutcomeEnrichmentError
	case errors.As(err, &renderErr):
		return metrics.OutcomeRenderError
	default:
		return metrics.OutcomeStorageError
	}
}

func topLevelField(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		return field[:i]
	}
	return field
}
