package models

// Registration enrols one student in one module. Duplicate pairs are allowed.
type Registration struct {
	ID         int    `db:"id" json:"id"`
	StudentID  int    `db:"student_id" json:"student_id"`
	ModuleCode string `db:"module_code" json:"module_code"`
}
