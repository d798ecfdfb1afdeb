package resumes

import "context"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Repo defines persistence operations for generated resumes.
type Repo interface {
	Create(ctx context.Context, resume GeneratedResume) error
	GetByID(ctx context.Context, userID, resumeID string) (GeneratedResume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedResume, error)
	SoftDelete(ctx context.Context, userID, resumeID string) error
}
