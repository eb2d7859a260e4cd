package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plm-dev/enlistment-api/internal/models"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
)

func newSERFixture() (*SERService, *mockEnlistmentRepo) {
	_, students := newEligibilityFixture()
	enlistments := &mockEnlistmentRepo{
		enlistment: &models.Enlistment{
			ID:          "enl-1",
			StudentID:   "2021-00123",
			Semester:    "1st",
			SubmittedAt: time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC),
			Status:      models.EnlistmentRecordStatusFinalized,
		},
		rows: map[string][]models.EnlistedSubject{
			"enl-1": {
				{SubjectCode: "CS301", SubjectName: "Data Structures", Units: 3, SectionID: "CS301-A", Day: "Mon", TimeStart: "08:00", TimeEnd: "09:30", Room: "R-201"},
				{SubjectCode: "CS401", SubjectName: "Software Engineering", Units: 3, SectionID: "CS401-A", Day: "Tue", TimeStart: "10:00", TimeEnd: "11:30", Room: "R-105"},
			},
		},
	}
	return NewSERService(students, enlistments), enlistments
}

func TestSERExportCSV(t *testing.T) {
	svc, _ := newSERFixture()

	payload, contentType, err := svc.Export(context.Background(), "2021-00123", SERFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	body := string(payload)
	assert.Contains(t, body, "Subject Code")
	assert.Contains(t, body, "CS301")
	assert.Contains(t, body, "08:00-09:30")
	assert.Contains(t, body, "TOTAL")
	assert.Contains(t, body, "6")
	assert.True(t, strings.Count(body, "\n") >= 4, "header, two subjects, total row")
}

func TestSERExportPDF(t *testing.T) {
	svc, _ := newSERFixture()

	payload, contentType, err := svc.Export(context.Background(), "2021-00123", SERFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	require.NotEmpty(t, payload)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestSERExportUnsupportedFormat(t *testing.T) {
	svc, _ := newSERFixture()

	_, _, err := svc.Export(context.Background(), "2021-00123", "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSERExportNotEnlisted(t *testing.T) {
	_, students := newEligibilityFixture()
	svc := NewSERService(students, &mockEnlistmentRepo{})

	_, _, err := svc.Export(context.Background(), "2021-00123", SERFormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotEnlisted.Code, appErrors.FromError(err).Code)
}
