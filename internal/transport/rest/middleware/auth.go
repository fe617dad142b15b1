package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"medprep/internal/model"
	"medprep/internal/service"
)

type contextKey string

const (
	StaffIDKey  contextKey = "staffId"
	UsernameKey contextKey = "username"
	RoleKey     contextKey = "role"
)

// TokenValidator verifies a dashboard token
type TokenValidator interface {
	ValidateToken(token string) (*model.StaffClaims, error)
}

var _ TokenValidator = (*service.AuthService)(nil)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc TokenValidator
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireStaff accepts any tutor or admin token from the Authorization
// header, or from the token query param for WebSocket upgrades.
func (m *AuthMiddleware) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			deny(w, http.StatusUnauthorized, "missing authorization")
			return
		}

		claims, err := m.authSvc.ValidateToken(token)
		if err != nil {
			deny(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := WithStaff(r.Context(), claims.StaffID, claims.Username, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after RequireStaff
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRole(r.Context()) != model.RoleAdmin {
			deny(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetStaffID extracts staff ID from context
func GetStaffID(ctx context.Context) string {
	if v := ctx.Value(StaffIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetUsername extracts the dashboard username from context
func GetUsername(ctx context.Context) string {
	if v := ctx.Value(UsernameKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetRole extracts the staff role from context
func GetRole(ctx context.Context) model.Role {
	if v := ctx.Value(RoleKey); v != nil {
		return v.(model.Role)
	}
	return ""
}

// WithStaff returns ctx carrying the given identity
func WithStaff(ctx context.Context, staffID, username string, role model.Role) context.Context {
	ctx = context.WithValue(ctx, StaffIDKey, staffID)
	ctx = context.WithValue(ctx, UsernameKey, username)
	return context.WithValue(ctx, RoleKey, role)
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": message})
}
