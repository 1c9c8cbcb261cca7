package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-records-api/internal/dto"
	"github.com/noah-isme/academic-records-api/internal/models"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
	"github.com/noah-isme/academic-records-api/pkg/response"
)

type gradeService interface {
	List(ctx context.Context) ([]models.Grade, error)
	Get(ctx context.Context, id int) (*models.Grade, error)
	ListForStudent(ctx context.Context, studentID int) ([]models.Grade, error)
	ListForModule(ctx context.Context, moduleCode string) ([]models.Grade, error)
	AverageForStudent(ctx context.Context, studentID int) (float64, error)
	AverageForModule(ctx context.Context, moduleCode string) (float64, error)
	AddGradeValidated(ctx context.Context, studentID int, moduleCode string, score int, academicYear *string) (*models.Grade, error)
	AddGrade(ctx context.Context, studentID int, moduleCode string, score int, academicYear *string) (*models.Grade, error)
	DeleteGrade(ctx context.Context, gradeID int) (bool, error)
	UpdateGradeScore(ctx context.Context, gradeID, newScore int) (*models.Grade, bool, error)
}

// GradeHandler exposes grade recording and aggregation endpoints.
type GradeHandler struct {
	grades gradeService
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(grades gradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// List godoc
// @Summary List grades
// @Tags Grades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	grades, err := h.grades.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, grades)
}

// Get godoc
// @Summary Get grade
// @Tags Grades
// @Produce json
// @Param gradeId path int true "Grade ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grades/{gradeId} [get]
func (h *GradeHandler) Get(c *gin.Context) {
	id, err := dto.ParseID("grade id", c.Param("gradeId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	grade, err := h.grades.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, grade)
}

// AddGrade godoc
// @Summary Record a grade without the registration check
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body map[string]string true "student_id, module_code, score, academic_year"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grades/addGrade [post]
func (h *GradeHandler) AddGrade(c *gin.Context) {
	req, ok := parseAddGrade(c)
	if !ok {
		return
	}
	grade, err := h.grades.AddGrade(c.Request.Context(), req.StudentID, req.ModuleCode, req.Score, req.AcademicYear)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, grade)
}

// AddGradeValidated godoc
// @Summary Record a grade for a registered student
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body map[string]string true "student_id, module_code, score, academic_year"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grades/addGradeValidated [post]
func (h *GradeHandler) AddGradeValidated(c *gin.Context) {
	req, ok := parseAddGrade(c)
	if !ok {
		return
	}
	grade, err := h.grades.AddGradeValidated(c.Request.Context(), req.StudentID, req.ModuleCode, req.Score, req.AcademicYear)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, grade)
}

func parseAddGrade(c *gin.Context) (dto.AddGradeRequest, bool) {
	bag, err := bindParams(c)
	if err != nil {
		response.Error(c, err)
		return dto.AddGradeRequest{}, false
	}
	req, err := dto.ParseAddGrade(bag)
	if err != nil {
		response.Error(c, err)
		return dto.AddGradeRequest{}, false
	}
	return req, true
}

// ListForStudent godoc
// @Summary List grades of a student
// @Tags Grades
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grades/student/{studentId} [get]
func (h *GradeHandler) ListForStudent(c *gin.Context) {
	studentID, err := dto.ParseID("student id", c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	grades, err := h.grades.ListForStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, grades)
}

// ListForModule godoc
// @Summary List grades of a module
// @Tags Grades
// @Produce json
// @Param moduleCode path string true "Module code"
// @Success 200 {object} response.Envelope
// @Router /grades/module/{moduleCode} [get]
func (h *GradeHandler) ListForModule(c *gin.Context) {
	grades, err := h.grades.ListForModule(c.Request.Context(), c.Param("moduleCode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, grades)
}

// StudentAverage godoc
// @Summary Average score of a student
// @Tags Grades
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope{data=models.StudentAverage}
// @Failure 404 {object} response.Envelope
// @Router /grades/student/{studentId}/average [get]
func (h *GradeHandler) StudentAverage(c *gin.Context) {
	studentID, err := dto.ParseID("student id", c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	avg, err := h.grades.AverageForStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, models.StudentAverage{StudentID: studentID, Average: avg})
}

// ModuleAverage godoc
// @Summary Average score of a module
// @Tags Grades
// @Produce json
// @Param moduleCode path string true "Module code"
// @Success 200 {object} response.Envelope{data=models.ModuleAverage}
// @Failure 404 {object} response.Envelope
// @Router /grades/module/{moduleCode}/average [get]
func (h *GradeHandler) ModuleAverage(c *gin.Context) {
	code := c.Param("moduleCode")
	avg, err := h.grades.AverageForModule(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, models.ModuleAverage{ModuleCode: code, Average: avg})
}

// Delete godoc
// @Summary Delete grade
// @Tags Grades
// @Param gradeId path int true "Grade ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /grades/{gradeId} [delete]
func (h *GradeHandler) Delete(c *gin.Context) {
	id, err := dto.ParseID("grade id", c.Param("gradeId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	deleted, err := h.grades.DeleteGrade(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, gradeNotFound(id))
		return
	}
	response.NoContent(c)
}

// UpdateScore godoc
// @Summary Overwrite a grade's score
// @Tags Grades
// @Accept json
// @Produce json
// @Param gradeId path int true "Grade ID"
// @Param payload body map[string]string true "score"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grades/{gradeId} [put]
func (h *GradeHandler) UpdateScore(c *gin.Context) {
	id, err := dto.ParseID("grade id", c.Param("gradeId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	bag, err := bindParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	req, err := dto.ParseUpdateGrade(bag)
	if err != nil {
		response.Error(c, err)
		return
	}
	grade, found, err := h.grades.UpdateGradeScore(c.Request.Context(), id, req.Score)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found {
		response.Error(c, gradeNotFound(id))
		return
	}
	respond(c, http.StatusOK, grade)
}

func gradeNotFound(id int) error {
	return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Grade %d not found", id))
}
