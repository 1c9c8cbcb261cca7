package models

// Module is a course unit identified by its code, e.g. COMP0010.
type Module struct {
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
	// MNC marks the module as mandatory non-condonable.
	MNC bool `db:"mnc" json:"mnc"`
}
