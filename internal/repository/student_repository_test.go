package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/plm-dev/enlistment-api/internal/models"
)

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"student_id", "full_name", "program", "college", "email",
		"password_hash", "year_level", "status", "enlistment_status", "created_at",
	}).AddRow(
		"2021-00123", "Juan Dela Cruz", "BSCS", "CET", "jdelacruz@plm.edu.ph",
		"$2a$10$hash", 3, "Active", models.EnlistmentStatusNotEnlisted, time.Now(),
	)
}

func TestStudentRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE student_id = $1")).
		WithArgs("2021-00123").
		WillReturnRows(studentRows())

	student, err := repo.FindByID(context.Background(), "2021-00123")
	require.NoError(t, err)
	require.Equal(t, "Juan Dela Cruz", student.FullName)
	require.Equal(t, models.EnlistmentStatusNotEnlisted, student.EnlistmentStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByEmailNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE email = $1")).
		WithArgs("missing@plm.edu.ph").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "missing@plm.edu.ph")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateEnlistmentStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET enlistment_status = $2 WHERE student_id = $1")).
		WithArgs("2021-00123", models.EnlistmentStatusEnlisted).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateEnlistmentStatus(context.Background(), "2021-00123", models.EnlistmentStatusEnlisted)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
