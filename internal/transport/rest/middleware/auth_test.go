package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medprep/internal/model"
)

type stubValidator map[string]*model.StaffClaims

func (s stubValidator) ValidateToken(token string) (*model.StaffClaims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

func TestRequireStaffAndAdmin(t *testing.T) {
	mw := NewAuthMiddleware(stubValidator{
		"tutor-token": {StaffID: "tutor_1", Username: "tutor", Role: model.RoleTutor},
		"admin-token": {StaffID: "admin_1", Username: "admin", Role: model.RoleAdmin},
	})

	var seen string
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetStaffID(r.Context()) + "/" + GetUsername(r.Context()) + "/" + string(GetRole(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})
	staff := mw.RequireStaff(ok)
	admin := mw.RequireStaff(mw.RequireAdmin(ok))

	tests := []struct {
		name    string
		handler http.Handler
		header  string
		query   string
		want    int
		seen    string
	}{
		{"no token", staff, "", "", http.StatusUnauthorized, ""},
		{"unknown token", staff, "Bearer nope", "", http.StatusUnauthorized, ""},
		{"wrong scheme", staff, "Basic tutor-token", "", http.StatusUnauthorized, ""},
		{"tutor header", staff, "Bearer tutor-token", "", http.StatusNoContent, "tutor_1/tutor/tutor"},
		{"query token", staff, "", "?token=admin-token", http.StatusNoContent, "admin_1/admin/admin"},
		{"tutor on admin route", admin, "bearer tutor-token", "", http.StatusForbidden, ""},
		{"admin on admin route", admin, "Bearer admin-token", "", http.StatusNoContent, "admin_1/admin/admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			r := httptest.NewRequest("GET", "/v1/admin/dashboard"+tt.query, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			tt.handler.ServeHTTP(w, r)
			if w.Code != tt.want || seen != tt.seen {
				t.Errorf("status %d seen %q, want %d %q", w.Code, seen, tt.want, tt.seen)
			}
		})
	}
}
