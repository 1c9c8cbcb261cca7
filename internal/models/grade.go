package models

// Grade is a score a student obtained in a module.
type Grade struct {
	ID           int      `db:"id" json:"id"`
	Score        int      `db:"score" json:"score"`
	AcademicYear *string  `db:"academic_year" json:"academic_year"`
	StudentID    int      `db:"student_id" json:"-"`
	ModuleCode   string   `db:"module_code" json:"-"`
	Student      *Student `db:"-" json:"student,omitempty"`
	Module       *Module  `db:"-" json:"module,omitempty"`
}

// StudentAverage is the mean score of one student.
type StudentAverage struct {
	StudentID int     `json:"student_id"`
	Average   float64 `json:"average"`
}

// ModuleAverage is the mean score recorded in one module.
type ModuleAverage struct {
	ModuleCode string  `json:"module_code"`
	Average    float64 `json:"average"`
}
