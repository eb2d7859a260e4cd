package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plm-dev/enlistment-api/internal/models"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
)

func TestSubjectDetails(t *testing.T) {
	catalog, _ := newEligibilityFixture()
	catalog.requisites = append(catalog.requisites,
		models.Requisite{SubjectCode: "CS401", RequiredCode: "CS402", RequiredName: "Algorithms Lab", Kind: models.RequisiteCo})
	svc := NewSubjectService(catalog)

	details, err := svc.Details(context.Background(), "CS401")
	require.NoError(t, err)

	assert.Equal(t, "Software Engineering", details.Subject.Name)
	require.Len(t, details.Prerequisites, 2)
	require.Len(t, details.Corequisites, 1)
	assert.Equal(t, "CS402", details.Corequisites[0].RequiredCode)
	require.Len(t, details.Sections, 1)
	assert.Equal(t, "CS401-A", details.Sections[0].ID)
}

func TestSubjectDetailsNotFound(t *testing.T) {
	catalog, _ := newEligibilityFixture()
	svc := NewSubjectService(catalog)

	_, err := svc.Details(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
