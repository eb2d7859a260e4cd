package models

import "time"

// EnlistmentRecordStatusFinalized is the status written at finalization.
// Rows never transition out of it under normal operation.
const EnlistmentRecordStatusFinalized = "FINALIZED"

// Enlistment is a student's committed subject selection for a term. At most
// one row exists per student, enforced by a unique constraint on student_id.
type Enlistment struct {
	ID          string    `db:"enlistment_id" json:"enlistment_id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	Semester    string    `db:"semester" json:"semester"`
	SubmittedAt time.Time `db:"date_submitted" json:"date_submitted"`
	Status      string    `db:"status" json:"status"`
}

// EnlistmentSubject joins an enlistment to one chosen subject/section pair.
// Rows are written as a batch alongside the enlistment and are immutable.
type EnlistmentSubject struct {
	EnlistmentID string `db:"enlistment_id" json:"enlistment_id"`
	SubjectCode  string `db:"subject_code" json:"subject_code"`
	SectionID    string `db:"section_id" json:"section_id"`
}

// Selection is one (subject, section) pair submitted for finalization.
type Selection struct {
	SubjectCode string `json:"subject_code" validate:"required"`
	SectionID   string `json:"section_id" validate:"required"`
}

// EnlistedSubject is a study-plan row: an enlisted subject joined with its
// catalog and section details.
type EnlistedSubject struct {
	SubjectCode string `db:"subject_code" json:"subject_code"`
	SubjectName string `db:"subject_name" json:"subject_name"`
	Units       int    `db:"units" json:"units"`
	SectionID   string `db:"section_id" json:"section_id"`
	Day         string `db:"day" json:"day"`
	TimeStart   string `db:"time_start" json:"time_start"`
	TimeEnd     string `db:"time_end" json:"time_end"`
	Room        string `db:"room" json:"room"`
}

// EnlistmentRecord is the finalized enlistment with its persisted subject
// list, returned immediately after finalization and by the study-plan view.
type EnlistmentRecord struct {
	Enlistment
	Subjects   []EnlistedSubject `json:"subjects"`
	TotalUnits int               `json:"total_units"`
}
