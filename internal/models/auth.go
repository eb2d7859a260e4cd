package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a student.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and student info.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	IssuedAt    time.Time   `json:"issued_at"`
	Student     StudentInfo `json:"student"`
}

// StudentInfo describes the authenticated student in responses.
type StudentInfo struct {
	ID       string `json:"student_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Program  string `json:"program"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	StudentID string `json:"student_id"`
	Email     string `json:"email"`
	Program   string `json:"program"`
	jwt.RegisteredClaims
}
