package model

import "github.com/golang-jwt/jwt/v5"

// Role of a dashboard user
type Role string

const (
	RoleTutor Role = "tutor"
	RoleAdmin Role = "admin"
)

// StaffClaims are JWT claims for tutor/admin dashboard authentication
type StaffClaims struct {
	StaffID  string `json:"staffId"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for dashboard login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token   string `json:"token"`
	StaffID string `json:"staffId"`
	Role    Role   `json:"role"`
}
