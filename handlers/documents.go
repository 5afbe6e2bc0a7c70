package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/saamdocs/docgen-service/internal/document"
	"github.com/saamdocs/docgen-service/internal/document/service"
	"github.com/saamdocs/docgen-service/internal/provider"
	"github.com/saamdocs/docgen-service/pkg/logger"
)

// DocumentService is the business surface the HTTP layer dispatches to.
type DocumentService interface {
	Generate(ctx context.Context, req service.GenerateRequest) (*document.GeneratedDocument, error)
	List(ctx context.Context, q service.ListQuery) (*document.Page, error)
	Get(ctx context.Context, docID string) (*document.GeneratedDocument, error)
	SaveToDrive(ctx context.Context, docID string) (*provider.Document, error)
}

// DocumentHandler exposes the document REST endpoints.
type DocumentHandler struct {
	svc     DocumentService
	version string
}

func NewDocumentHandler(svc DocumentService, version string) *DocumentHandler {
	return &DocumentHandler{svc: svc, version: version}
}

// Register wires the routes. guard, when non-nil, protects the mutating
// endpoints.
func (h *DocumentHandler) Register(r *gin.Engine, guard gin.HandlerFunc) {
	r.GET("/", h.Health)
	r.GET("/documents", h.List)
	r.GET("/documents/:doc_id", h.Get)

	if guard != nil {
		r.POST("/generate-document", guard, h.Generate)
		r.POST("/documents/:doc_id/save-to-google", guard, h.SaveToGoogle)
		return
	}
	r.POST("/generate-document", h.Generate)
	r.POST("/documents/:doc_id/save-to-google", h.SaveToGoogle)
}

// Health reports liveness and the running version.
func (h *DocumentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": h.version})
}

type generateRequest struct {
	Name         string  `json:"name"`
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	TemplateType string  `json:"template_type"`
}

// Generate runs the full pipeline and returns the persisted record.
func (h *DocumentHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body: " + err.Error()})
		return
	}

	doc, err := h.svc.Generate(c.Request.Context(), service.GenerateRequest{
		Name:         req.Name,
		Date:         req.Date,
		Amount:       req.Amount,
		TemplateType: req.TemplateType,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"data":    doc.ToDTO(),
		"message": "Document generated successfully",
	})
}

// List serves the paginated, cached document listing.
func (h *DocumentHandler) List(c *gin.Context) {
	page, ok := intQuery(c, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := intQuery(c, "page_size", 10)
	if !ok {
		return
	}

	out, err := h.svc.List(c.Request.Context(), service.ListQuery{
		Name:     c.Query("name"),
		Date:     c.Query("date"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Get returns a single record by its provider document id.
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), c.Param("doc_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": doc.ToDTO()})
}

// SaveToGoogle uploads the stored content to the provider and attaches the
// returned identifiers.
func (h *DocumentHandler) SaveToGoogle(c *gin.Context) {
	remote, err := h.svc.SaveToDrive(c.Request.Context(), c.Param("doc_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"google_doc_id": remote.DocID, "doc_url": remote.DocURL},
	})
}

func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid " + name + " parameter"})
		return 0, false
	}
	return v, true
}

// writeError translates the error taxonomy to HTTP statuses: client faults to
// 422, missing records to 404, everything else to 500.
func writeError(c *gin.Context, err error) {
	var verr *document.ValidationError
	var terr *document.TemplateError
	var perr *provider.Error

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": verr.Msg})
	case errors.As(err, &terr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": terr.Msg})
	case errors.Is(err, document.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Document not found"})
	case errors.As(err, &perr):
		logger.Errorf("provider error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	default:
		logger.Errorf("unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}
