package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plm-dev/enlistment-api/internal/models"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
)

func TestProfileRowPresenceWins(t *testing.T) {
	_, students := newEligibilityFixture()
	enlistments := &mockEnlistmentRepo{
		enlistment: &models.Enlistment{ID: "enl-1", StudentID: "2021-00123"},
	}
	svc := NewStudentService(students, enlistments)

	// The stored enum still says not enlisted; the row overrides it.
	profile, err := svc.Profile(context.Background(), "2021-00123")
	require.NoError(t, err)
	assert.Equal(t, models.EnlistmentStatusEnlisted, profile.EnlistmentStatus)
	assert.True(t, profile.Enlisted)
}

func TestProfileLegacyStatusNormalized(t *testing.T) {
	_, students := newEligibilityFixture()
	student := students.students["2021-00123"]
	student.EnlistmentStatus = "Enrolled"
	students.students["2021-00123"] = student
	svc := NewStudentService(students, &mockEnlistmentRepo{})

	profile, err := svc.Profile(context.Background(), "2021-00123")
	require.NoError(t, err)
	assert.Equal(t, models.EnlistmentStatusEnlisted, profile.EnlistmentStatus)
	assert.True(t, profile.Enlisted)
}

func TestProfileNotEnlisted(t *testing.T) {
	_, students := newEligibilityFixture()
	svc := NewStudentService(students, &mockEnlistmentRepo{})

	profile, err := svc.Profile(context.Background(), "2021-00123")
	require.NoError(t, err)
	assert.Equal(t, models.EnlistmentStatusNotEnlisted, profile.EnlistmentStatus)
	assert.False(t, profile.Enlisted)
}

func TestProfileUnknownStudent(t *testing.T) {
	_, students := newEligibilityFixture()
	svc := NewStudentService(students, &mockEnlistmentRepo{})

	_, err := svc.Profile(context.Background(), "9999-00000")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
