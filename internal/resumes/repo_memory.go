package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores generated resumes in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]GeneratedResume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]GeneratedResume)}
}

// Create stores the generated resume.
func (r *MemoryRepo) Create(ctx context.Context, resume GeneratedResume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[resume.ID] = resume
	return nil
}

// GetByID returns a live resume by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, resumeID string) (GeneratedResume, error) {
	if err := ctx.Err(); err != nil {
		return GeneratedResume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[resumeID]
	if !ok || resume.DeletedAt != nil {
		return GeneratedResume{}, ErrNotFound
	}
	if resume.UserID != userID {
		return GeneratedResume{}, ErrForbidden
	}
	return resume, nil
}

// ListByUser returns live resumes for a user, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)

	r.mu.RLock()
	var resumes []GeneratedResume
	for _, resume := range r.byID {
		if resume.UserID == userID && resume.DeletedAt == nil {
			resumes = append(resumes, resume)
		}
	}
	r.mu.RUnlock()

	if offset >= len(resumes) {
		return []GeneratedResume{}, nil
	}
	sort.Slice(resumes, func(i, j int) bool {
		if resumes[i].CreatedAt.Equal(resumes[j].CreatedAt) {
			return resumes[i].ID > resumes[j].ID
		}
		return resumes[i].CreatedAt.After(resumes[j].CreatedAt)
	})

	end := len(resumes)
	if offset+limit < end {
		end = offset + limit
	}
	return resumes[offset:end], nil
}

// SoftDelete marks a resume as deleted.
func (r *MemoryRepo) SoftDelete(ctx context.Context, userID, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.byID[resumeID]
	if !ok || resume.DeletedAt != nil {
		return ErrNotFound
	}
	if resume.UserID != userID {
		return ErrForbidden
	}
	now := time.Now().UTC()
	resume.DeletedAt = &now
	r.byID[resumeID] = resume
	return nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var _ Repo = (*MemoryRepo)(nil)
