package resumes

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/storage/object/local"
	"resume-builder/resume/model"
)

func janeSmith() map[string]any {
	return map[string]any{
		"name": "Jane Smith",
		"contact": map[string]any{
			"email": "jane@x.com",
			"phone": "+61 400 000 000",
		},
		"professional_summary": "Backend engineer with a decade of delivery.",
		"key_skills":           []any{"Go", "Postgres"},
		"experience": []any{
			map[string]any{
				"title":   "Engineer",
				"company": "Acme",
				"dates":   "2019-2023",
				"bullets": []any{"Led migration", "Cut latency 40%"},
			},
		},
	}
}

func newTestService(t *testing.T) (*Service, *MemoryRepo, string) {
	t.Helper()
	storeDir := t.TempDir()
	repo := NewMemoryRepo()
	return &Service{
		Repo:    repo,
		Store:   local.New(storeDir),
		WorkDir: t.TempDir(),
	}, repo, storeDir
}

func TestGenerateStoresRenderedDocx(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	resume, err := svc.Generate(ctx, "user-1", GenerateInput{Candidate: janeSmith()})
	require.NoError(t, err)
	assert.Equal(t, "jane-smith.docx", resume.FileName)
	assert.Equal(t, "Jane Smith", resume.CandidateName)
	assert.NotEmpty(t, resume.StorageKey)
	assert.Positive(t, resume.SizeBytes)
	assert.Empty(t, resume.Warnings)

	_, rc, err := svc.Open(ctx, "user-1", resume.ID)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, resume.SizeBytes, int64(len(data)))

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "word/document.xml")

	entries, err := os.ReadDir(svc.WorkDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "work directory should be empty after generate")
}

func TestGenerateValidationErrorCreatesNothing(t *testing.T) {
	svc, repo, storeDir := newTestService(t)
	input := janeSmith()
	input["name"] = "   "

	_, err := svc.Generate(context.Background(), "user-1", GenerateInput{Candidate: input})

	var vErr *model.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)

	list, _ := repo.ListByUser(context.Background(), "user-1", 10, 0)
	assert.Empty(t, list)
	entries, _ := os.ReadDir(storeDir)
	assert.Empty(t, entries)
}

func TestGenerateWithEnricher(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.Enricher = llm.EnricherFunc(func(ctx context.Context, r model.CandidateRecord) (string, error) {
		return "Senior engineer shaping platform strategy across Australian teams.", nil
	})

	resume, err := svc.Generate(context.Background(), "user-1", GenerateInput{Candidate: janeSmith(), Enhance: true})
	require.NoError(t, err)
	assert.True(t, resume.Enhanced)
	assert.Equal(t, "Senior engineer shaping platform strategy across Australian teams.", resume.Record.ProfessionalSummary.OrEmpty())
}

func TestGenerateEnhanceWithoutProvider(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Generate(context.Background(), "user-1", GenerateInput{Candidate: janeSmith(), Enhance: true})

	var enrichErr *llm.EnrichmentError
	require.ErrorAs(t, err, &enrichErr)
	assert.ErrorIs(t, err, llm.ErrNotImplemented)
}

func TestGenerateReportsOverflowWarnings(t *testing.T) {
	svc, _, _ := newTestService(t)
	input := janeSmith()
	var bullets []any
	for i := 0; i < 9; i++ {
		bullets = append(bullets, "Shipped feature")
	}
	input["experience"] = []any{map[string]any{"title": "Engineer", "company": "Acme", "bullets": bullets}}

	resume, err := svc.Generate(context.Background(), "user-1", GenerateInput{Candidate: input})
	require.NoError(t, err)
	require.Len(t, resume.Warnings, 1)
	assert.Equal(t, "experience[0].bullets", resume.Warnings[0].Field)
}

type failingStore struct{}

func (failingStore) Save(context.Context, string, string, string, io.Reader) (string, int64, error) {
	return "", 0, errors.New("bucket unavailable")
}

func (failingStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, object.ErrNotFound
}

func (failingStore) Delete(context.Context, string) error {
	return nil
}

func TestGenerateStorageFailure(t *testing.T) {
	svc, repo, _ := newTestService(t)
	svc.Store = failingStore{}

	_, err := svc.Generate(context.Background(), "user-1", GenerateInput{Candidate: janeSmith()})
	require.ErrorIs(t, err, ErrStorage)
	assert.Contains(t, err.Error(), "bucket unavailable")

	list, _ := repo.ListByUser(context.Background(), "user-1", 10, 0)
	assert.Empty(t, list)
	entries, _ := os.ReadDir(svc.WorkDir)
	assert.Empty(t, entries)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	svc, repo, storeDir := newTestService(t)

	p, err := svc.Preview(context.Background(), GenerateInput{Candidate: janeSmith()})
	require.NoError(t, err)
	require.NotEmpty(t, p.Document.Blocks)
	assert.Equal(t, "JANE SMITH", p.Document.Blocks[0].Text)

	list, _ := repo.ListByUser(context.Background(), "user-1", 10, 0)
	assert.Empty(t, list)
	entries, _ := os.ReadDir(storeDir)
	assert.Empty(t, entries)
}

func TestDeleteRemovesStoredFile(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	resume, err := svc.Generate(ctx, "user-1", GenerateInput{Candidate: janeSmith()})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, "user-2", resume.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, "user-1", resume.ID))

	_, _, err = svc.Open(ctx, "user-1", resume.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Store.Open(ctx, resume.StorageKey)
	assert.Error(t, err)
}

func TestTopLevelField(t *testing.T) {
	assert.Equal(t, "experience", topLevelField("experience[2].bullets[1]"))
	assert.Equal(t, "awards", topLevelField("awards"))
	assert.False(t, strings.Contains(topLevelField("key_skills"), "["))
}
