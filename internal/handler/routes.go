package handler

import "github.com/gin-gonic/gin"

// Handlers groups every HTTP handler mounted under the API prefix.
type Handlers struct {
	Grades        *GradeHandler
	Students      *StudentHandler
	Modules       *ModuleHandler
	Registrations *RegistrationHandler
	Reports       *ReportHandler
	Metrics       *MetricsHandler
}

// RegisterRoutes mounts the API routes on the given group.
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	grades := api.Group("/grades")
	grades.GET("", h.Grades.List)
	grades.POST("/addGrade", h.Grades.AddGrade)
	grades.POST("/addGradeValidated", h.Grades.AddGradeValidated)
	grades.GET("/student/:studentId", h.Grades.ListForStudent)
	grades.GET("/student/:studentId/average", h.Grades.StudentAverage)
	grades.GET("/module/:moduleCode", h.Grades.ListForModule)
	grades.GET("/module/:moduleCode/average", h.Grades.ModuleAverage)
	grades.GET("/:gradeId", h.Grades.Get)
	grades.PUT("/:gradeId", h.Grades.UpdateScore)
	grades.DELETE("/:gradeId", h.Grades.Delete)

	students := api.Group("/students")
	students.GET("", h.Students.List)
	students.POST("", h.Students.Create)
	students.GET("/:id", h.Students.Get)
	students.PUT("/:id", h.Students.Update)
	students.DELETE("/:id", h.Students.Delete)

	modules := api.Group("/modules")
	modules.GET("", h.Modules.List)
	modules.POST("", h.Modules.Create)
	modules.GET("/:code", h.Modules.Get)
	modules.PUT("/:code", h.Modules.Update)
	modules.DELETE("/:code", h.Modules.Delete)

	registrations := api.Group("/registrations")
	registrations.GET("", h.Registrations.List)
	registrations.POST("", h.Registrations.Create)
	registrations.GET("/:id", h.Registrations.Get)
	registrations.DELETE("/:id", h.Registrations.Delete)

	reports := api.Group("/reports")
	reports.GET("/modules/:moduleCode", h.Reports.ModuleSummary)
	reports.GET("/students/:studentId", h.Reports.Transcript)
	reports.GET("/students/:studentId/export", h.Reports.ExportTranscript)

	if h.Metrics != nil {
		api.GET("/metrics/summary", h.Metrics.Summary)
	}
}

// RegisterProbes mounts liveness, readiness and Prometheus endpoints at the root.
func RegisterProbes(r gin.IRoutes, h *MetricsHandler, exposeMetrics bool) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	if exposeMetrics {
		r.GET("/metrics", h.Prometheus)
	}
}
