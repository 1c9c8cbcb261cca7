package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/academic-records-api/internal/models"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
	"github.com/noah-isme/academic-records-api/pkg/export"
)

type gradeQuerier interface {
	ListForStudent(ctx context.Context, studentID int) ([]models.Grade, error)
	ListForModule(ctx context.Context, moduleCode string) ([]models.Grade, error)
}

// ReportService builds read-only module summaries and student transcripts,
// serving them from the report cache when enabled.
type ReportService struct {
	grades   gradeQuerier
	students studentLookup
	modules  moduleLookup
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService constructs a report service.
func NewReportService(grades gradeQuerier, students studentLookup, modules moduleLookup, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		grades:   grades,
		students: students,
		modules:  modules,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func moduleSummaryKey(code string) string { return "reports:module:" + code }

func transcriptKey(studentID int) string { return "reports:transcript:" + strconv.Itoa(studentID) }

// cachedGrade keeps the grade keys that the public JSON shape omits.
type cachedGrade struct {
	models.Grade
	StudentID  int    `json:"student_id"`
	ModuleCode string `json:"module_code"`
}

type cachedTranscript struct {
	Student     models.Student `json:"student"`
	Grades      []cachedGrade  `json:"grades"`
	Average     *float64       `json:"average"`
	GeneratedAt time.Time      `json:"generated_at"`
}

func newCachedTranscript(t *models.Transcript) cachedTranscript {
	grades := make([]cachedGrade, 0, len(t.Grades))
	for _, g := range t.Grades {
		grades = append(grades, cachedGrade{Grade: g, StudentID: g.StudentID, ModuleCode: g.ModuleCode})
	}
	return cachedTranscript{Student: t.Student, Grades: grades, Average: t.Average, GeneratedAt: t.GeneratedAt}
}

func (c cachedTranscript) transcript() *models.Transcript {
	grades := make([]models.Grade, 0, len(c.Grades))
	for _, g := range c.Grades {
		grade := g.Grade
		grade.StudentID, grade.ModuleCode = g.StudentID, g.ModuleCode
		grades = append(grades, grade)
	}
	return &models.Transcript{Student: c.Student, Grades: grades, Average: c.Average, GeneratedAt: c.GeneratedAt}
}

// ModuleSummary returns grade statistics for a module. The boolean reports a cache hit.
func (s *ReportService) ModuleSummary(ctx context.Context, moduleCode string) (*models.ModuleSummary, bool, error) {
	key := moduleSummaryKey(moduleCode)
	var cached models.ModuleSummary
	if s.fromCache(ctx, key, &cached) {
		return &cached, true, nil
	}
	gen := s.cache.Generation()

	start := time.Now()
	var (
		module *models.Module
		grades []models.Grade
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		module, err = s.modules.FindByID(gctx, moduleCode)
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "module not found")
		}
		if err != nil {
			return appErrors.Internal(err, "failed to load module")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		grades, err = s.grades.ListForModule(gctx, moduleCode)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	s.metrics.ObserveDBQuery("report_module_summary", time.Since(start))

	summary := &models.ModuleSummary{Module: *module, GradeCount: len(grades), GeneratedAt: s.now()}
	if avg, ok := Mean(grades); ok {
		minScore, maxScore := grades[0].Score, grades[0].Score
		for _, grade := range grades[1:] {
			if grade.Score < minScore {
				minScore = grade.Score
			}
			if grade.Score > maxScore {
				maxScore = grade.Score
			}
		}
		summary.MinScore, summary.MaxScore, summary.Average = &minScore, &maxScore, &avg
	}

	s.toCache(ctx, key, summary, gen)
	return summary, false, nil
}

// Transcript returns a student's grades with their average, nil when there are none.
func (s *ReportService) Transcript(ctx context.Context, studentID int) (*models.Transcript, bool, error) {
	key := transcriptKey(studentID)
	var cached cachedTranscript
	if s.fromCache(ctx, key, &cached) {
		return cached.transcript(), true, nil
	}
	gen := s.cache.Generation()

	start := time.Now()
	var (
		student *models.Student
		grades  []models.Grade
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		student, err = s.students.FindByID(gctx, studentID)
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		if err != nil {
			return appErrors.Internal(err, "failed to load student")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		grades, err = s.grades.ListForStudent(gctx, studentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	s.metrics.ObserveDBQuery("report_transcript", time.Since(start))

	transcript := &models.Transcript{Student: *student, Grades: grades, GeneratedAt: s.now()}
	if avg, ok := Mean(grades); ok {
		transcript.Average = &avg
	}

	s.toCache(ctx, key, newCachedTranscript(transcript), gen)
	return transcript, false, nil
}

// ExportTranscript renders the transcript as CSV or PDF and suggests a file name.
func (s *ReportService) ExportTranscript(ctx context.Context, studentID int, format export.Format) ([]byte, string, error) {
	transcript, _, err := s.Transcript(ctx, studentID)
	if err != nil {
		return nil, "", err
	}
	payload, err := export.Render(format, transcriptDataset(transcript))
	if err != nil {
		return nil, "", appErrors.Internal(err, "failed to render transcript")
	}
	filename := fmt.Sprintf("transcript-%d.%s", studentID, format)
	s.logger.Info("transcript exported", zap.Int("student_id", studentID), zap.String("format", string(format)), zap.Int("bytes", len(payload)))
	return payload, filename, nil
}

func transcriptDataset(t *models.Transcript) export.Dataset {
	headers := []string{"grade_id", "module_code", "module_name", "mnc", "academic_year", "score"}
	rows := make([]map[string]string, 0, len(t.Grades))
	for _, g := range t.Grades {
		row := map[string]string{
			"grade_id":    strconv.Itoa(g.ID),
			"module_code": g.ModuleCode,
			"score":       strconv.Itoa(g.Score),
		}
		if g.Module != nil {
			if row["module_code"] == "" {
				row["module_code"] = g.Module.Code
			}
			row["module_name"] = g.Module.Name
			row["mnc"] = strconv.FormatBool(g.Module.MNC)
		}
		if g.AcademicYear != nil {
			row["academic_year"] = *g.AcademicYear
		}
		rows = append(rows, row)
	}

	average := "n/a"
	if t.Average != nil {
		average = strconv.FormatFloat(*t.Average, 'f', 2, 64)
	}
	return export.Dataset{
		Title:   fmt.Sprintf("Transcript - %s (%d)", t.Student.FullName(), t.Student.ID),
		Headers: headers,
		Rows:    rows,
		Notes: []string{
			fmt.Sprintf("Grades: %d", len(t.Grades)),
			"Average: " + average,
			"Generated: " + t.GeneratedAt.Format(time.RFC3339),
		},
	}
}

// fromCache treats lookup failures as misses.
func (s *ReportService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

// toCache skips the write when a grade write invalidated the cache after gen was read.
func (s *ReportService) toCache(ctx context.Context, key string, value interface{}, gen uint64) {
	if err := s.cache.SetIfCurrent(ctx, key, value, 0, gen); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
