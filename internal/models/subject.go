package models

// RequisiteKind distinguishes prerequisite from corequisite relations.
type RequisiteKind string

const (
	RequisitePre RequisiteKind = "PRE"
	RequisiteCo  RequisiteKind = "CO"
)

// Subject is a catalog entry. Subjects are static data owned by a program and
// offered in a specific semester.
type Subject struct {
	Code     string `db:"subject_code" json:"subject_code"`
	Name     string `db:"subject_name" json:"subject_name"`
	Units    int    `db:"units" json:"units"`
	Program  string `db:"program" json:"program"`
	Semester string `db:"semester" json:"semester"`
}

// Requisite links a subject to another subject it requires. Relations may
// cross program boundaries.
type Requisite struct {
	SubjectCode  string        `db:"subject_code" json:"subject_code"`
	RequiredCode string        `db:"required_code" json:"required_code"`
	RequiredName string        `db:"required_name" json:"required_name"`
	Kind         RequisiteKind `db:"kind" json:"kind"`
}

// Section is a scheduled offering of a subject.
type Section struct {
	ID          string `db:"section_id" json:"section_id"`
	SubjectCode string `db:"subject_code" json:"subject_code"`
	Day         string `db:"day" json:"day"`
	TimeStart   string `db:"time_start" json:"time_start"`
	TimeEnd     string `db:"time_end" json:"time_end"`
	Room        string `db:"room" json:"room"`
	Capacity    int    `db:"capacity" json:"capacity"`
}

// EligibleSubject is a resolver result entry: a subject the student may
// enlist in, with its sections and requisite display lists attached.
// CrossProgram marks subjects surfaced only because they satisfy a requisite
// relation for the student's own program.
type EligibleSubject struct {
	Subject
	CrossProgram  bool        `json:"cross_program"`
	Prerequisites []Requisite `json:"prerequisites"`
	Corequisites  []Requisite `json:"corequisites"`
	Sections      []Section   `json:"sections"`
}

// SubjectDetails is the payload of the subject-details endpoint.
type SubjectDetails struct {
	Subject       Subject     `json:"subject"`
	Prerequisites []Requisite `json:"prerequisites"`
	Corequisites  []Requisite `json:"corequisites"`
	Sections      []Section   `json:"sections"`
}
