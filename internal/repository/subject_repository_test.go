package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/plm-dev/enlistment-api/internal/models"
)

func TestSubjectRepositoryFindByCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	rows := sqlmock.NewRows([]string{"subject_code", "subject_name", "units", "program", "semester"}).
		AddRow("CS301", "Data Structures", 3, "BSCS", "1st")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT subject_code, subject_name, units, program, semester FROM subjects WHERE subject_code = $1")).
		WithArgs("CS301").
		WillReturnRows(rows)

	subject, err := repo.FindByCode(context.Background(), "CS301")
	require.NoError(t, err)
	require.Equal(t, "Data Structures", subject.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryFindByCodeNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM subjects WHERE subject_code = $1")).
		WithArgs("NOPE").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByCode(context.Background(), "NOPE")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryListByCodesAndSemester(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	rows := sqlmock.NewRows([]string{"subject_code", "subject_name", "units", "program", "semester"}).
		AddRow("IT205", "Web Systems", 3, "BSIT", "1st")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE subject_code IN ($1,$2) AND semester = $3")).
		WithArgs("IT205", "IT310", "1st").
		WillReturnRows(rows)

	subjects, err := repo.ListByCodesAndSemester(context.Background(), []string{"IT205", "IT310"}, "1st")
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	require.Equal(t, "BSIT", subjects[0].Program)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryListByCodesAndSemesterEmptySet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	// No query issued for an empty code set.
	subjects, err := repo.ListByCodesAndSemester(context.Background(), nil, "1st")
	require.NoError(t, err)
	require.Nil(t, subjects)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryListRequisitesFor(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	rows := sqlmock.NewRows([]string{"subject_code", "required_code", "required_name", "kind"}).
		AddRow("CS401", "CS301", "Data Structures", models.RequisitePre).
		AddRow("CS401", "CS402", "Algorithms Lab", models.RequisiteCo)
	mock.ExpectQuery(regexp.QuoteMeta("FROM subject_requisites sr")).
		WithArgs("CS401").
		WillReturnRows(rows)

	requisites, err := repo.ListRequisitesFor(context.Background(), []string{"CS401"})
	require.NoError(t, err)
	require.Len(t, requisites, 2)
	require.Equal(t, models.RequisitePre, requisites[0].Kind)
	require.Equal(t, "Data Structures", requisites[0].RequiredName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryFindSection(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	rows := sqlmock.NewRows([]string{"section_id", "subject_code", "day", "time_start", "time_end", "room", "capacity"}).
		AddRow("CS301-A", "CS301", "Mon", "08:00", "09:30", "R-201", 40)
	mock.ExpectQuery(regexp.QuoteMeta("FROM sections WHERE section_id = $1")).
		WithArgs("CS301-A").
		WillReturnRows(rows)

	section, err := repo.FindSection(context.Background(), "CS301-A")
	require.NoError(t, err)
	require.Equal(t, "CS301", section.SubjectCode)
	require.NoError(t, mock.ExpectationsWereMet())
}
