package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/plm-dev/enlistment-api/internal/models"
)

// ErrDuplicateEnlistment reports that the student already has an enlistment
// row. The enlistments table carries a unique constraint on student_id, so a
// second insert fails here even when two requests pass the existence check
// concurrently.
var ErrDuplicateEnlistment = errors.New("duplicate enlistment for student")

const uniqueViolation = "23505"

// EnlistmentRepository handles persistence of enlistments and their subject
// rows.
type EnlistmentRepository struct {
	db *sqlx.DB
}

// NewEnlistmentRepository constructs the repository.
func NewEnlistmentRepository(db *sqlx.DB) *EnlistmentRepository {
	return &EnlistmentRepository{db: db}
}

// ExistsByStudent reports whether the student already has an enlistment row.
func (r *EnlistmentRepository) ExistsByStudent(ctx context.Context, studentID string) (bool, error) {
	const query = `SELECT 1 FROM enlistments WHERE student_id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enlistment existence: %w", err)
	}
	return true, nil
}

// CreateWithSubjects inserts the enlistment row and its subject rows in one
// transaction. Either every row is written or none is.
func (r *EnlistmentRepository) CreateWithSubjects(ctx context.Context, enlistment *models.Enlistment, subjects []models.EnlistmentSubject) (err error) {
	if enlistment.ID == "" {
		enlistment.ID = uuid.NewString()
	}
	if enlistment.SubmittedAt.IsZero() {
		enlistment.SubmittedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin enlistment transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertEnlistment = `INSERT INTO enlistments (enlistment_id, student_id, semester, date_submitted, status)
VALUES ($1, $2, $3, $4, $5)`
	if _, err = tx.ExecContext(ctx, insertEnlistment,
		enlistment.ID, enlistment.StudentID, enlistment.Semester, enlistment.SubmittedAt, enlistment.Status); err != nil {
		if isUniqueViolation(err) {
			err = ErrDuplicateEnlistment
			return err
		}
		return fmt.Errorf("insert enlistment: %w", err)
	}

	const insertSubject = `INSERT INTO enlistment_subjects (enlistment_id, subject_code, section_id)
VALUES ($1, $2, $3)`
	for i := range subjects {
		subjects[i].EnlistmentID = enlistment.ID
		if _, err = tx.ExecContext(ctx, insertSubject,
			enlistment.ID, subjects[i].SubjectCode, subjects[i].SectionID); err != nil {
			return fmt.Errorf("insert enlistment subject %s: %w", subjects[i].SubjectCode, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit enlistment: %w", err)
	}
	return nil
}

// FindLatestByStudent returns the student's most recent enlistment.
func (r *EnlistmentRepository) FindLatestByStudent(ctx context.Context, studentID string) (*models.Enlistment, error) {
	const query = `SELECT enlistment_id, student_id, semester, date_submitted, status
FROM enlistments WHERE student_id = $1 ORDER BY date_submitted DESC LIMIT 1`
	var enlistment models.Enlistment
	if err := r.db.GetContext(ctx, &enlistment, query, studentID); err != nil {
		return nil, err
	}
	return &enlistment, nil
}

// ListSubjects returns the enlisted subjects joined with their catalog and
// section details, ordered by subject code.
func (r *EnlistmentRepository) ListSubjects(ctx context.Context, enlistmentID string) ([]models.EnlistedSubject, error) {
	const query = `SELECT es.subject_code, s.subject_name, s.units, es.section_id, sec.day, sec.time_start, sec.time_end, sec.room
FROM enlistment_subjects es
JOIN subjects s ON s.subject_code = es.subject_code
JOIN sections sec ON sec.section_id = es.section_id
WHERE es.enlistment_id = $1
ORDER BY es.subject_code`
	var subjects []models.EnlistedSubject
	if err := r.db.SelectContext(ctx, &subjects, query, enlistmentID); err != nil {
		return nil, fmt.Errorf("list enlisted subjects: %w", err)
	}
	return subjects, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
