package resumes

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

const maxRequestSize = 1 << 20 // 1MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.create)
	rg.POST("/resumes/preview", h.preview)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.GET("/resumes/:id/download", h.download)
	rg.DELETE("/resumes/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	req, ok := bindGenerateRequest(c)
	if !ok {
		return
	}

	resume, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), GenerateInput{
		Candidate: req.Candidate,
		Enhance:   req.Enhance,
	})
	if err != nil {
		writeError(c, err, "failed to generate resume")
		return
	}
	c.Set(middleware.ResumeIDKey, resume.ID)
	c.Header("Location", "/api/v1/resumes/"+resume.ID)
	respond.Created(c, toResponse(resume))
}

func (h *Handler) preview(c *gin.Context) {
	req, ok := bindGenerateRequest(c)
	if !ok {
		return
	}

	p, err := h.Svc.Preview(c.Request.Context(), GenerateInput{
		Candidate: req.Candidate,
		Enhance:   req.Enhance,
	})
	if err != nil {
		writeError(c, err, "failed to render preview")
		return
	}
	respond.OK(c, toPreviewResponse(p))
}

func (h *Handler) list(c *gin.Context) {
	limit := defaultPageSize
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	resumes, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		writeError(c, err, "failed to list resumes")
		return
	}

	resp := make([]ResumeResponse, 0, len(resumes))
	for _, resume := range resumes {
		resp = append(resp, toResponse(resume))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)

	resume, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch resume")
		return
	}
	respond.OK(c, toDetailResponse(resume))
}

func (h *Handler) download(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)

	resume, reader, err := h.Svc.Open(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to load resume")
		return
	}
	defer reader.Close()

	c.Header("Content-Type", render.DocxMimeType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resume.FileName))
	if resume.SizeBytes > 0 {
		c.Header("Content-Length", strconv.FormatInt(resume.SizeBytes, 10))
	}
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)

	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to delete resume")
		return
	}
	c.Status(http.StatusNoContent)
}

func bindGenerateRequest(c *gin.Context) (generateRequest, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestSize)
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body must be an object with a candidate field", nil)
		return generateRequest{}, false
	}
	return req, true
}

func writeError(c *gin.Context, err error, fallback string) {
	var (
		validationErr *model.ValidationError
		enrichErr     *llm.EnrichmentError
		renderErr     *render.RenderError
	)
	switch {
	case errors.As(err, &validationErr):
		respond.Error(c, http.StatusBadRequest, "validation_error", validationErr.Error(), gin.H{
			"field":      validationErr.Field,
			"constraint": validationErr.Constraint,
		})
	case errors.As(err, &enrichErr):
		respond.Error(c, http.StatusBadGateway, "enrichment_failed", "summary enrichment failed", gin.H{
			"provider": enrichErr.Provider,
		})
	case errors.As(err, &renderErr):
		respond.Error(c, http.StatusInternalServerError, "render_failed", "failed to render resume", gin.H{
			"stage": renderErr.Stage,
			"kind":  renderErr.Kind,
		})
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "access denied", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
