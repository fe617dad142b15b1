package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"medprep/internal/config"
	"medprep/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type staffAccount struct {
	passwordHash []byte
	role         model.Role
}

// AuthService handles tutor and admin dashboard authentication
type AuthService struct {
	accounts  map[string]staffAccount
	jwtSecret []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewAuthService creates a new auth service. Accounts without a password
// hash cannot log in.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	accounts := make(map[string]staffAccount, 2)
	if cfg.AdminUsername != "" && cfg.AdminPasswordHash != "" {
		accounts[cfg.AdminUsername] = staffAccount{passwordHash: []byte(cfg.AdminPasswordHash), role: model.RoleAdmin}
	}
	if cfg.TutorUsername != "" && cfg.TutorPasswordHash != "" {
		accounts[cfg.TutorUsername] = staffAccount{passwordHash: []byte(cfg.TutorPasswordHash), role: model.RoleTutor}
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &AuthService{
		accounts:  accounts,
		jwtSecret: []byte(cfg.JWTSecret),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Login checks credentials and returns a signed staff token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	account, ok := s.accounts[username]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	staffID := string(account.role) + "_" + uuid.New().String()[:8]
	now := s.now()
	claims := &model.StaffClaims{
		StaffID:  staffID,
		Username: username,
		Role:     account.role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:   tokenString,
		StaffID: staffID,
		Role:    account.role,
	}, nil
}

// ValidateToken validates a staff JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.StaffClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.StaffClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != model.RoleAdmin && claims.Role != model.RoleTutor {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
