package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plm-dev/enlistment-api/internal/models"
	"github.com/plm-dev/enlistment-api/internal/repository"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
)

type mockEnlistmentRepo struct {
	enlistment *models.Enlistment
	rows       map[string][]models.EnlistedSubject
	createErr  error
	creates    int
}

func (m *mockEnlistmentRepo) ExistsByStudent(ctx context.Context, studentID string) (bool, error) {
	return m.enlistment != nil && m.enlistment.StudentID == studentID, nil
}

func (m *mockEnlistmentRepo) CreateWithSubjects(ctx context.Context, enlistment *models.Enlistment, subjects []models.EnlistmentSubject) error {
	m.creates++
	if m.createErr != nil {
		return m.createErr
	}
	if m.enlistment != nil && m.enlistment.StudentID == enlistment.StudentID {
		return repository.ErrDuplicateEnlistment
	}
	if enlistment.ID == "" {
		enlistment.ID = "enl-1"
	}
	m.enlistment = enlistment
	if m.rows == nil {
		m.rows = make(map[string][]models.EnlistedSubject)
	}
	for _, s := range subjects {
		m.rows[enlistment.ID] = append(m.rows[enlistment.ID], models.EnlistedSubject{
			SubjectCode: s.SubjectCode,
			SectionID:   s.SectionID,
			Units:       3,
		})
	}
	return nil
}

func (m *mockEnlistmentRepo) FindLatestByStudent(ctx context.Context, studentID string) (*models.Enlistment, error) {
	if m.enlistment != nil && m.enlistment.StudentID == studentID {
		e := *m.enlistment
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEnlistmentRepo) ListSubjects(ctx context.Context, enlistmentID string) ([]models.EnlistedSubject, error) {
	return m.rows[enlistmentID], nil
}

type mockCartStore struct {
	deleted []string
}

func (m *mockCartStore) Delete(ctx context.Context, studentID string) error {
	m.deleted = append(m.deleted, studentID)
	return nil
}

func newEnlistmentFixture() (*EnlistmentService, *mockEnlistmentRepo, *mockStudents, *mockCartStore) {
	catalog, students := newEligibilityFixture()
	repo := &mockEnlistmentRepo{}
	carts := &mockCartStore{}
	svc := NewEnlistmentService(repo, students, catalog, carts, nil, nil, nil, 21)
	return svc, repo, students, carts
}

func TestFinalizeSuccess(t *testing.T) {
	svc, repo, students, carts := newEnlistmentFixture()

	record, err := svc.Finalize(context.Background(), "2021-00123", "1st", FinalizeRequest{
		Selections: []models.Selection{
			{SubjectCode: "CS301", SectionID: "CS301-A"},
			{SubjectCode: "CS401", SectionID: "CS401-A"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "2021-00123", record.StudentID)
	assert.Equal(t, models.EnlistmentRecordStatusFinalized, record.Status)
	assert.Len(t, record.Subjects, 2)
	assert.Equal(t, 6, record.TotalUnits)
	assert.Equal(t, models.EnlistmentStatusEnlisted, students.statuses["2021-00123"])
	assert.Equal(t, []string{"2021-00123"}, carts.deleted)
	assert.Equal(t, 1, repo.creates)
}

func TestFinalizeSecondCallRejected(t *testing.T) {
	svc, repo, _, _ := newEnlistmentFixture()

	req := FinalizeRequest{Selections: []models.Selection{{SubjectCode: "CS301", SectionID: "CS301-A"}}}
	_, err := svc.Finalize(context.Background(), "2021-00123", "1st", req)
	require.NoError(t, err)

	_, err = svc.Finalize(context.Background(), "2021-00123", "1st", req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadyEnlisted.Code, appErrors.FromError(err).Code)
	// The existence check short-circuits before a second insert is attempted.
	assert.Equal(t, 1, repo.creates)
}

func TestFinalizeDuplicateInsertMapsToAlreadyEnlisted(t *testing.T) {
	// Two requests pass the existence check concurrently; the unique
	// constraint rejects the loser and the error surfaces as a conflict.
	svc, repo, _, _ := newEnlistmentFixture()
	repo.createErr = repository.ErrDuplicateEnlistment

	_, err := svc.Finalize(context.Background(), "2021-00123", "1st", FinalizeRequest{
		Selections: []models.Selection{{SubjectCode: "CS301", SectionID: "CS301-A"}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadyEnlisted.Code, appErrors.FromError(err).Code)
}

func TestFinalizeEmptySelection(t *testing.T) {
	svc, repo, _, _ := newEnlistmentFixture()

	_, err := svc.Finalize(context.Background(), "2021-00123", "1st", FinalizeRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.creates)
}

func TestFinalizeDuplicateSubjectInSelection(t *testing.T) {
	svc, repo, _, _ := newEnlistmentFixture()

	_, err := svc.Finalize(context.Background(), "2021-00123", "1st", FinalizeRequest{
		Selections: []models.Selection{
			{SubjectCode: "CS301", SectionID: "CS301-A"},
			{SubjectCode: "CS301", SectionID: "CS301-A"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.creates)
}

func TestFinalizeSectionOwnershipChecked(t *testing.T) {
	svc, repo, _, _ := newEnlistmentFixture()

	_, err := svc.Finalize(context.Background(), "2021-00123", "1st", FinalizeRequest{
		Selections: []models.Selection{{SubjectCode: "CS301", SectionID: "CS401-A"}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.creates)
}

func TestFinalizeSubjectNotOfferedThisSemester(t *testing.T) {
	svc, repo, _, _ := newEnlistmentFixture()

	_, err := svc.Finalize(context.Background(), "2021-00123", "2nd", FinalizeRequest{
		Selections: []models.Selection{{SubjectCode: "CS301", SectionID: "CS301-A"}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.creates)
}

func TestFinalizeUnitCapEnforced(t *testing.T) {
	catalog, students := newEligibilityFixture()
	repo := &mockEnlistmentRepo{}
	svc := NewEnlistmentService(repo, students, catalog, &mockCartStore{}, nil, nil, nil, 5)

	_, err := svc.Finalize(context.Background(), "2021-00123", "1st", FinalizeRequest{
		Selections: []models.Selection{
			{SubjectCode: "CS301", SectionID: "CS301-A"},
			{SubjectCode: "CS401", SectionID: "CS401-A"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.creates)
	assert.Empty(t, students.statuses)
}

func TestStudyPlan(t *testing.T) {
	svc, _, _, _ := newEnlistmentFixture()

	_, err := svc.Finalize(context.Background(), "2021-00123", "1st", FinalizeRequest{
		Selections: []models.Selection{{SubjectCode: "CS301", SectionID: "CS301-A"}},
	})
	require.NoError(t, err)

	record, err := svc.StudyPlan(context.Background(), "2021-00123")
	require.NoError(t, err)
	require.Len(t, record.Subjects, 1)
	assert.Equal(t, "CS301", record.Subjects[0].SubjectCode)
	assert.Equal(t, 3, record.TotalUnits)
}

func TestStudyPlanNotEnlisted(t *testing.T) {
	svc, _, _, _ := newEnlistmentFixture()

	_, err := svc.StudyPlan(context.Background(), "2021-00123")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotEnlisted.Code, appErrors.FromError(err).Code)
}
