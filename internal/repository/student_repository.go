package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/plm-dev/enlistment-api/internal/models"
)

// StudentRepository handles persistence for students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `student_id, full_name, program, college, email, password_hash, year_level, status, enlistment_status, created_at`

// FindByID returns a student by their identifier.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE student_id = $1", studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByEmail returns a student by their university email.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE email = $1", studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, email); err != nil {
		return nil, err
	}
	return &student, nil
}

// UpdateEnlistmentStatus writes the canonical enlistment status enum.
func (r *StudentRepository) UpdateEnlistmentStatus(ctx context.Context, id string, status models.EnlistmentStatus) error {
	const query = `UPDATE students SET enlistment_status = $2 WHERE student_id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status); err != nil {
		return fmt.Errorf("update enlistment status: %w", err)
	}
	return nil
}
