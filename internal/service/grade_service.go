package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/repository"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
)

type studentLookup interface {
	FindByID(ctx context.Context, id int) (*models.Student, error)
}

type moduleLookup interface {
	FindByID(ctx context.Context, code string) (*models.Module, error)
}

type registrationLister interface {
	List(ctx context.Context) ([]models.Registration, error)
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// GradeService records grades and derives per-student and per-module averages.
type GradeService struct {
	grades        repository.Store[models.Grade, int]
	students      studentLookup
	modules       moduleLookup
	registrations registrationLister
	cache         cacheInvalidator
	metrics       *MetricsService
	logger        *zap.Logger
}

// NewGradeService wires the grade service. cache and metrics may be nil.
func NewGradeService(grades repository.Store[models.Grade, int], students studentLookup, modules moduleLookup, registrations registrationLister, cache cacheInvalidator, metrics *MetricsService, logger *zap.Logger) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{
		grades:        grades,
		students:      students,
		modules:       modules,
		registrations: registrations,
		cache:         cache,
		metrics:       metrics,
		logger:        logger,
	}
}

// List returns every grade in store order.
func (s *GradeService) List(ctx context.Context) ([]models.Grade, error) {
	grades, err := s.grades.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list grades")
	}
	return grades, nil
}

// Get returns one grade.
func (s *GradeService) Get(ctx context.Context, id int) (*models.Grade, error) {
	grade, err := s.grades.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
	}
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load grade")
	}
	return grade, nil
}

// ListForStudent returns the grades recorded for studentID, empty when none.
func (s *GradeService) ListForStudent(ctx context.Context, studentID int) ([]models.Grade, error) {
	return s.filter(ctx, func(g models.Grade) bool { return g.StudentID == studentID })
}

// ListForModule returns the grades recorded in moduleCode, empty when none.
func (s *GradeService) ListForModule(ctx context.Context, moduleCode string) ([]models.Grade, error) {
	return s.filter(ctx, func(g models.Grade) bool { return g.ModuleCode == moduleCode })
}

func (s *GradeService) filter(ctx context.Context, keep func(models.Grade) bool) ([]models.Grade, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]models.Grade, 0)
	for _, g := range all {
		if keep(g) {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

// IsRegistered reports whether at least one registration pairs studentID with moduleCode.
func (s *GradeService) IsRegistered(ctx context.Context, studentID int, moduleCode string) (bool, error) {
	regs, err := s.registrations.List(ctx)
	if err != nil {
		return false, appErrors.Internal(err, "failed to list registrations")
	}
	for _, reg := range regs {
		if reg.StudentID == studentID && reg.ModuleCode == moduleCode {
			return true, nil
		}
	}
	return false, nil
}

// AverageForStudent is the mean score over the student's grades. Student
// existence is not checked; no grades yields NO_GRADE_AVAILABLE.
func (s *GradeService) AverageForStudent(ctx context.Context, studentID int) (float64, error) {
	grades, err := s.ListForStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	avg, ok := Mean(grades)
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrNoGradeAvailable, fmt.Sprintf("No grades available for student ID: %d", studentID))
	}
	return avg, nil
}

// AverageForModule is the mean score over the module's grades.
func (s *GradeService) AverageForModule(ctx context.Context, moduleCode string) (float64, error) {
	grades, err := s.ListForModule(ctx, moduleCode)
	if err != nil {
		return 0, err
	}
	avg, ok := Mean(grades)
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrNoGradeAvailable, "No grades available for module: "+moduleCode)
	}
	return avg, nil
}

// Mean is sum/count over the scores; ok is false for an empty slice.
func Mean(grades []models.Grade) (avg float64, ok bool) {
	if len(grades) == 0 {
		return 0, false
	}
	var sum int64
	for _, g := range grades {
		sum += int64(g.Score)
	}
	return float64(sum) / float64(len(grades)), true
}

// AddGradeValidated records a grade only when the student is registered for
// the module.
func (s *GradeService) AddGradeValidated(ctx context.Context, studentID int, moduleCode string, score int, academicYear *string) (*models.Grade, error) {
	registered, err := s.IsRegistered(ctx, studentID, moduleCode)
	if err != nil {
		return nil, err
	}
	if !registered {
		msg := fmt.Sprintf("Student %d is not registered for module %s", studentID, moduleCode)
		return nil, appErrors.WithDetails(appErrors.Clone(appErrors.ErrNoRegistration, msg), map[string]interface{}{
			"student_id":  studentID,
			"module_code": moduleCode,
		})
	}

	student, err := s.findStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	module, err := s.findModule(ctx, moduleCode)
	if err != nil {
		return nil, err
	}
	if student == nil || module == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Student or module not found")
	}
	return s.create(ctx, student, module, score, academicYear, "add_validated")
}

// AddGrade records a grade without the registration check.
func (s *GradeService) AddGrade(ctx context.Context, studentID int, moduleCode string, score int, academicYear *string) (*models.Grade, error) {
	student, err := s.findStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Student not found")
	}
	module, err := s.findModule(ctx, moduleCode)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Module not found")
	}
	return s.create(ctx, student, module, score, academicYear, "add")
}

func (s *GradeService) create(ctx context.Context, student *models.Student, module *models.Module, score int, academicYear *string, op string) (*models.Grade, error) {
	grade := &models.Grade{
		Score:        score,
		AcademicYear: academicYear,
		StudentID:    student.ID,
		ModuleCode:   module.Code,
		Student:      student,
		Module:       module,
	}
	if err := s.grades.Create(ctx, grade); err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Student or module not found")
		}
		return nil, appErrors.Internal(err, "failed to save grade")
	}
	s.logger.Info("grade recorded",
		zap.Int("grade_id", grade.ID),
		zap.Int("student_id", student.ID),
		zap.String("module_code", module.Code),
		zap.String("op", op),
	)
	s.afterWrite(ctx, op)
	return grade, nil
}

// DeleteGrade removes a grade and reports whether it existed.
func (s *GradeService) DeleteGrade(ctx context.Context, gradeID int) (bool, error) {
	exists, err := s.grades.ExistsByID(ctx, gradeID)
	if err != nil {
		return false, appErrors.Internal(err, "failed to check grade")
	}
	if !exists {
		return false, nil
	}
	if err := s.grades.DeleteByID(ctx, gradeID); err != nil {
		return false, appErrors.Internal(err, "failed to delete grade")
	}
	s.logger.Info("grade deleted", zap.Int("grade_id", gradeID))
	s.afterWrite(ctx, "delete")
	return true, nil
}

// UpdateGradeScore overwrites a grade's score. found is false when the grade does not exist.
func (s *GradeService) UpdateGradeScore(ctx context.Context, gradeID, newScore int) (grade *models.Grade, found bool, err error) {
	grade, err = s.grades.FindByID(ctx, gradeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to load grade")
	}
	grade.Score = newScore
	if err := s.grades.Update(ctx, grade); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, appErrors.Internal(err, "failed to update grade")
	}
	s.logger.Info("grade score updated", zap.Int("grade_id", gradeID), zap.Int("score", newScore))
	s.afterWrite(ctx, "update")
	return grade, true, nil
}

func (s *GradeService) findStudent(ctx context.Context, id int) (*models.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load student")
	}
	return student, nil
}

func (s *GradeService) findModule(ctx context.Context, code string) (*models.Module, error) {
	module, err := s.modules.FindByID(ctx, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load module")
	}
	return module, nil
}

// afterWrite drops cached report views. Cache failures are logged only.
func (s *GradeService) afterWrite(ctx context.Context, op string) {
	s.metrics.RecordGradeWrite(op)
	invalidateReports(ctx, s.cache, s.logger.With(zap.String("op", op)))
}
