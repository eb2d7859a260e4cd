package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/plm-dev/enlistment-api/internal/models"
	"github.com/plm-dev/enlistment-api/internal/repository"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
)

type enlistmentRepository interface {
	ExistsByStudent(ctx context.Context, studentID string) (bool, error)
	CreateWithSubjects(ctx context.Context, enlistment *models.Enlistment, subjects []models.EnlistmentSubject) error
	FindLatestByStudent(ctx context.Context, studentID string) (*models.Enlistment, error)
	ListSubjects(ctx context.Context, enlistmentID string) ([]models.EnlistedSubject, error)
}

type studentStatusRepository interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	UpdateEnlistmentStatus(ctx context.Context, id string, status models.EnlistmentStatus) error
}

type cartStore interface {
	Delete(ctx context.Context, studentID string) error
}

// FinalizeRequest is the finalize payload: the selections committed for the
// configured current semester.
type FinalizeRequest struct {
	Selections []models.Selection `json:"selections" validate:"required,min=1,dive"`
}

// EnlistmentService owns the one-time finalize transition and the read views
// over a finalized enlistment.
type EnlistmentService struct {
	repo      enlistmentRepository
	students  studentStatusRepository
	catalog   catalogRepository
	carts     cartStore
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	maxUnits  int
}

// NewEnlistmentService constructs EnlistmentService.
func NewEnlistmentService(repo enlistmentRepository, students studentStatusRepository, catalog catalogRepository, carts cartStore, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, maxUnits int) *EnlistmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnlistmentService{repo: repo, students: students, catalog: catalog, carts: carts, metrics: metrics, validator: validate, logger: logger, maxUnits: maxUnits}
}

// Finalize records the student's one-time enlistment. All selections are
// validated against the catalog, the unit cap is enforced, and the write is
// atomic: the enlistment row and every subject row commit together or not at
// all. A second call for the same student fails with ALREADY_ENLISTED.
func (s *EnlistmentService) Finalize(ctx context.Context, studentID, semester string, req FinalizeRequest) (*models.EnlistmentRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "no subjects selected")
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	exists, err := s.repo.ExistsByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enlistment")
	}
	if exists {
		s.metrics.RecordFinalize("already_enlisted")
		return nil, appErrors.Clone(appErrors.ErrAlreadyEnlisted, "")
	}

	totalUnits := 0
	seen := make(map[string]bool, len(req.Selections))
	subjects := make([]models.EnlistmentSubject, 0, len(req.Selections))
	for _, selection := range req.Selections {
		if seen[selection.SubjectCode] {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("subject %s selected more than once", selection.SubjectCode))
		}
		seen[selection.SubjectCode] = true

		subject, err := s.catalog.FindByCode(ctx, selection.SubjectCode)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("subject %s not found", selection.SubjectCode))
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
		}
		if subject.Semester != semester {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("subject %s is not offered this semester", selection.SubjectCode))
		}

		section, err := s.catalog.FindSection(ctx, selection.SectionID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("section %s not found", selection.SectionID))
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
		}
		if section.SubjectCode != subject.Code {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("section %s does not belong to subject %s", selection.SectionID, selection.SubjectCode))
		}

		totalUnits += subject.Units
		subjects = append(subjects, models.EnlistmentSubject{SubjectCode: subject.Code, SectionID: section.ID})
	}

	if s.maxUnits > 0 && totalUnits > s.maxUnits {
		s.metrics.RecordFinalize("unit_cap_exceeded")
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("total units %d exceed the %d-unit cap", totalUnits, s.maxUnits))
	}

	enlistment := &models.Enlistment{
		StudentID:   studentID,
		Semester:    semester,
		SubmittedAt: time.Now().UTC(),
		Status:      models.EnlistmentRecordStatusFinalized,
	}
	if err := s.repo.CreateWithSubjects(ctx, enlistment, subjects); err != nil {
		if errors.Is(err, repository.ErrDuplicateEnlistment) {
			s.metrics.RecordFinalize("already_enlisted")
			return nil, appErrors.Clone(appErrors.ErrAlreadyEnlisted, "")
		}
		s.metrics.RecordFinalize("error")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record enlistment")
	}

	if err := s.students.UpdateEnlistmentStatus(ctx, studentID, models.EnlistmentStatusEnlisted); err != nil {
		s.logger.Warn("failed to update student enlistment status", zap.String("student_id", studentID), zap.Error(err))
	}
	if err := s.carts.Delete(ctx, studentID); err != nil {
		s.logger.Warn("failed to clear cart after finalize", zap.String("student_id", studentID), zap.Error(err))
	}
	s.metrics.RecordFinalize("success")
	s.logger.Info("enlistment finalized",
		zap.String("student_id", studentID),
		zap.String("enlistment_id", enlistment.ID),
		zap.String("program", student.Program),
		zap.Int("total_units", totalUnits))

	enlisted, err := s.repo.ListSubjects(ctx, enlistment.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enlisted subjects")
	}
	return buildRecord(*enlistment, enlisted), nil
}

// StudyPlan returns the student's finalized enlistment with subject details,
// or NOT_ENLISTED when no record exists.
func (s *EnlistmentService) StudyPlan(ctx context.Context, studentID string) (*models.EnlistmentRecord, error) {
	enlistment, err := s.repo.FindLatestByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotEnlisted, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enlistment")
	}
	subjects, err := s.repo.ListSubjects(ctx, enlistment.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enlisted subjects")
	}
	return buildRecord(*enlistment, subjects), nil
}

// Enlisted reports whether the student already has a finalized enlistment.
func (s *EnlistmentService) Enlisted(ctx context.Context, studentID string) (bool, error) {
	exists, err := s.repo.ExistsByStudent(ctx, studentID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enlistment")
	}
	return exists, nil
}

func buildRecord(enlistment models.Enlistment, subjects []models.EnlistedSubject) *models.EnlistmentRecord {
	total := 0
	for _, subject := range subjects {
		total += subject.Units
	}
	return &models.EnlistmentRecord{Enlistment: enlistment, Subjects: subjects, TotalUnits: total}
}
