package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-records-api/internal/dto"
	"github.com/noah-isme/academic-records-api/internal/middleware"
	"github.com/noah-isme/academic-records-api/internal/models"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
	"github.com/noah-isme/academic-records-api/pkg/export"
	"github.com/noah-isme/academic-records-api/pkg/response"
)

type reportService interface {
	ModuleSummary(ctx context.Context, moduleCode string) (*models.ModuleSummary, bool, error)
	Transcript(ctx context.Context, studentID int) (*models.Transcript, bool, error)
	ExportTranscript(ctx context.Context, studentID int, format export.Format) ([]byte, string, error)
}

// ReportHandler exposes read-only report views.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// ModuleSummary godoc
// @Summary Grade statistics for a module
// @Tags Reports
// @Produce json
// @Param moduleCode path string true "Module code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/modules/{moduleCode} [get]
func (h *ReportHandler) ModuleSummary(c *gin.Context) {
	summary, hit, err := h.reports.ModuleSummary(c.Request.Context(), c.Param("moduleCode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	respond(c, http.StatusOK, summary)
}

// Transcript godoc
// @Summary Student transcript
// @Tags Reports
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/students/{studentId} [get]
func (h *ReportHandler) Transcript(c *gin.Context) {
	studentID, err := dto.ParseID("student id", c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	transcript, hit, err := h.reports.Transcript(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	respond(c, http.StatusOK, transcript)
}

// ExportTranscript godoc
// @Summary Download a student transcript
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param studentId path int true "Student ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /reports/students/{studentId}/export [get]
func (h *ReportHandler) ExportTranscript(c *gin.Context) {
	studentID, err := dto.ParseID("student id", c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "format must be csv or pdf"))
		return
	}
	payload, filename, err := h.reports.ExportTranscript(c.Request.Context(), studentID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, filename, format.ContentType(), payload)
}
