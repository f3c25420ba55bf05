package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wasel-app/wasel-api/internal/dto"
	"github.com/wasel-app/wasel-api/internal/models"
	appErrors "github.com/wasel-app/wasel-api/pkg/errors"
	"github.com/wasel-app/wasel-api/pkg/response"
)

type exportService interface {
	Enqueue(format models.ExportFormat, requestedBy string) (*models.ExportJob, error)
	Job(id string) (*models.ExportJob, error)
	OpenDownload(token string) (*os.File, string, error)
}

// ExportHandler exposes schedule export endpoints.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Create godoc
// @Summary Enqueue a schedule export
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body dto.CreateExportRequest true "Export format"
// @Success 202 {object} response.Envelope
// @Router /exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	job, err := h.service.Enqueue(models.ExportFormat(req.Format), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, job)
}

// Get godoc
// @Summary Fetch an export job
// @Tags Exports
// @Produce json
// @Param id path string true "Export job ID"
// @Success 200 {object} response.Envelope
// @Router /exports/{id} [get]
func (h *ExportHandler) Get(c *gin.Context) {
	job, err := h.service.Job(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Download godoc
// @Summary Download a completed export
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200
// @Router /exports/download/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, relPath, err := h.service.OpenDownload(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	name := filepath.Base(relPath)
	contentType := "application/octet-stream"
	switch {
	case strings.HasSuffix(name, ".csv"):
		contentType = "text/csv"
	case strings.HasSuffix(name, ".pdf"):
		contentType = "application/pdf"
	}

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat export file"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}
