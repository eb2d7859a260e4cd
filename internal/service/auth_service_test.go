package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/plm-dev/enlistment-api/internal/models"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
)

func newAuthFixture(t *testing.T) (*AuthService, *mockStudents) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	students := &mockStudents{students: map[string]models.Student{
		"2021-00123": {
			ID:           "2021-00123",
			FullName:     "Juan Dela Cruz",
			Program:      "BSCS",
			Email:        "jdelacruz@plm.edu.ph",
			PasswordHash: string(hash),
		},
	}}
	svc := NewAuthService(students, nil, nil, AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "enlistment-api",
	})
	return svc, students
}

func TestLoginAndValidateToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "jdelacruz@plm.edu.ph",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "2021-00123", resp.Student.ID)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "2021-00123", claims.StudentID)
	assert.Equal(t, "BSCS", claims.Program)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "jdelacruz@plm.edu.ph",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@plm.edu.ph",
		Password: "s3cret",
	})
	require.Error(t, err)
	// Same error either way, so callers cannot probe which emails exist.
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginInvalidPayload(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "jdelacruz@plm.edu.ph",
		Password: "s3cret",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken + "x")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	other := NewAuthService(nil, nil, nil, AuthConfig{TokenSecret: "different", TokenExpiry: time.Hour})
	_, err = other.ValidateToken(resp.AccessToken)
	require.Error(t, err)
}
