package models

import "time"

// ModuleSummary aggregates every grade recorded for a module.
type ModuleSummary struct {
	Module      Module    `json:"module"`
	GradeCount  int       `json:"grade_count"`
	MinScore    *int      `json:"min_score"`
	MaxScore    *int      `json:"max_score"`
	Average     *float64  `json:"average"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Transcript lists a student's grades with their overall average.
type Transcript struct {
	Student     Student   `json:"student"`
	Grades      []Grade   `json:"grades"`
	Average     *float64  `json:"average"`
	GeneratedAt time.Time `json:"generated_at"`
}
