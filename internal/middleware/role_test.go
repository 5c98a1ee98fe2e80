package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/model"
)

func TestRequireRole(t *testing.T) {
	testCases := []struct {
		name       string
		identity   *auth.Identity
		required   model.Role
		wantStatus int
	}{
		{
			name:       "employer allows employer route",
			identity:   &auth.Identity{UserID: "u1", Role: model.RoleEmployer},
			required:   model.RoleEmployer,
			wantStatus: http.StatusOK,
		},
		{
			name:       "employee allows employee route",
			identity:   &auth.Identity{UserID: "u2", Role: model.RoleEmployee},
			required:   model.RoleEmployee,
			wantStatus: http.StatusOK,
		},
		{
			name:       "employee blocked from employer route",
			identity:   &auth.Identity{UserID: "u2", Role: model.RoleEmployee},
			required:   model.RoleEmployer,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "employer blocked from employee route",
			identity:   &auth.Identity{UserID: "u1", Role: model.RoleEmployer},
			required:   model.RoleEmployee,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing identity is unauthorized",
			identity:   nil,
			required:   model.RoleEmployer,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := RequireRole(tc.required)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tc.identity != nil {
				req = req.WithContext(auth.ContextWithIdentity(req.Context(), tc.identity))
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestRequireEmployerConvenience(t *testing.T) {
	handler := RequireEmployer()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(auth.ContextWithIdentity(req.Context(), &auth.Identity{UserID: "u1", Role: model.RoleEmployer}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
