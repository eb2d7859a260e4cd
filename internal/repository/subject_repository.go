package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/plm-dev/enlistment-api/internal/models"
)

// SubjectRepository handles the subject catalog: subjects, requisite
// relations and sections.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

const subjectColumns = `subject_code, subject_name, units, program, semester`

// FindByCode returns a subject by its unique code.
func (r *SubjectRepository) FindByCode(ctx context.Context, code string) (*models.Subject, error) {
	query := fmt.Sprintf("SELECT %s FROM subjects WHERE subject_code = $1", subjectColumns)
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, code); err != nil {
		return nil, err
	}
	return &subject, nil
}

// ListByProgramAndSemester returns the subjects a program offers in the given
// semester, ordered by code.
func (r *SubjectRepository) ListByProgramAndSemester(ctx context.Context, program, semester string) ([]models.Subject, error) {
	query := fmt.Sprintf("SELECT %s FROM subjects WHERE program = $1 AND semester = $2 ORDER BY subject_code", subjectColumns)
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, program, semester); err != nil {
		return nil, fmt.Errorf("list program subjects: %w", err)
	}
	return subjects, nil
}

// ListByCodesAndSemester returns the subset of the given subject codes that
// are offered in the semester.
func (r *SubjectRepository) ListByCodesAndSemester(ctx context.Context, codes []string, semester string) ([]models.Subject, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	placeholders, args := inArgs(codes, 1)
	args = append(args, semester)
	query := fmt.Sprintf("SELECT %s FROM subjects WHERE subject_code IN (%s) AND semester = $%d ORDER BY subject_code",
		subjectColumns, placeholders, len(codes)+1)
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("list subjects by code: %w", err)
	}
	return subjects, nil
}

// ListRequisitesFor returns all prerequisite and corequisite relations whose
// owning subject is in the given set, joined with the required subject's name.
func (r *SubjectRepository) ListRequisitesFor(ctx context.Context, codes []string) ([]models.Requisite, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	placeholders, args := inArgs(codes, 1)
	query := fmt.Sprintf(`SELECT sr.subject_code, sr.required_code, s.subject_name AS required_name, sr.kind
FROM subject_requisites sr
JOIN subjects s ON s.subject_code = sr.required_code
WHERE sr.subject_code IN (%s)
ORDER BY sr.subject_code, sr.required_code`, placeholders)
	var requisites []models.Requisite
	if err := r.db.SelectContext(ctx, &requisites, query, args...); err != nil {
		return nil, fmt.Errorf("list requisites: %w", err)
	}
	return requisites, nil
}

// ListSectionsFor returns the sections of every subject in the given set.
func (r *SubjectRepository) ListSectionsFor(ctx context.Context, codes []string) ([]models.Section, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	placeholders, args := inArgs(codes, 1)
	query := fmt.Sprintf(`SELECT section_id, subject_code, day, time_start, time_end, room, capacity
FROM sections WHERE subject_code IN (%s) ORDER BY subject_code, section_id`, placeholders)
	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, args...); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// FindSection returns a section by its identifier.
func (r *SubjectRepository) FindSection(ctx context.Context, sectionID string) (*models.Section, error) {
	const query = `SELECT section_id, subject_code, day, time_start, time_end, room, capacity FROM sections WHERE section_id = $1`
	var section models.Section
	if err := r.db.GetContext(ctx, &section, query, sectionID); err != nil {
		return nil, err
	}
	return &section, nil
}

// inArgs builds a $n placeholder list starting at the given index.
func inArgs(values []string, start int) (string, []interface{}) {
	placeholders := make([]string, len(values))
	args := make([]interface{}, len(values))
	for i, v := range values {
		placeholders[i] = fmt.Sprintf("$%d", start+i)
		args[i] = v
	}
	return strings.Join(placeholders, ","), args
}
