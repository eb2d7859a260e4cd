package models

import "time"

// EnlistmentStatus is the canonical per-student enlistment state. The legacy
// system stored free-form strings ("Enrolled", "Not Enrolled") alongside the
// enrollment rows; here the enum is the only representation and legacy values
// are normalised once, at the data layer.
type EnlistmentStatus string

const (
	EnlistmentStatusNotEnlisted EnlistmentStatus = "NOT_ENLISTED"
	EnlistmentStatusEnlisted    EnlistmentStatus = "ENLISTED"
)

// NormalizeEnlistmentStatus maps legacy status strings onto the canonical
// enum. Unknown or empty values are treated as not enlisted.
func NormalizeEnlistmentStatus(raw string) EnlistmentStatus {
	switch raw {
	case string(EnlistmentStatusEnlisted), "Enrolled", "Enlisted":
		return EnlistmentStatusEnlisted
	default:
		return EnlistmentStatusNotEnlisted
	}
}

// Student represents a learner provisioned in the registrar's records.
type Student struct {
	ID               string           `db:"student_id" json:"student_id"`
	FullName         string           `db:"full_name" json:"full_name"`
	Program          string           `db:"program" json:"program"`
	College          string           `db:"college" json:"college"`
	Email            string           `db:"email" json:"email"`
	PasswordHash     string           `db:"password_hash" json:"-"`
	YearLevel        int              `db:"year_level" json:"year_level"`
	Status           string           `db:"status" json:"status"`
	EnlistmentStatus EnlistmentStatus `db:"enlistment_status" json:"enlistment_status"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
}

// StudentProfile is the dashboard view of a student. The presence of an
// enlistment row is authoritative for the displayed status; the stored enum
// is only the fallback when no row exists.
type StudentProfile struct {
	Student
	Enlisted bool `json:"enlisted"`
}
