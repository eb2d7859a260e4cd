package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/plm-dev/enlistment-api/internal/models"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
)

// StudentService serves the dashboard view of a student.
type StudentService struct {
	students    studentReader
	enlistments enlistmentChecker
}

// NewStudentService constructs StudentService.
func NewStudentService(students studentReader, enlistments enlistmentChecker) *StudentService {
	return &StudentService{students: students, enlistments: enlistments}
}

// Profile returns the student record with the derived enlistment status. The
// presence of an enlistment row is authoritative; the stored enum only covers
// students with no row.
func (s *StudentService) Profile(ctx context.Context, studentID string) (*models.StudentProfile, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	hasRecord, err := s.enlistments.ExistsByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enlistment")
	}

	profile := &models.StudentProfile{Student: *student}
	if hasRecord {
		profile.EnlistmentStatus = models.EnlistmentStatusEnlisted
	} else {
		profile.EnlistmentStatus = models.NormalizeEnlistmentStatus(string(student.EnlistmentStatus))
	}
	profile.Enlisted = profile.EnlistmentStatus == models.EnlistmentStatusEnlisted
	return profile, nil
}
