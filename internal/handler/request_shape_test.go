package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/handler/dto"
	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func withIdentity(r *http.Request, role model.Role) *http.Request {
	return r.WithContext(auth.ContextWithIdentity(r.Context(), &auth.Identity{
		UserID: "caller-1",
		Role:   role,
	}))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestRegisterRejectsMalformedJSON(t *testing.T) {
	h := NewUserHandler(&service.UserService{}, nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "INVALID_JSON" {
		t.Errorf("code = %q, want INVALID_JSON", resp.Code)
	}
}

func TestLoginRejectsMalformedJSON(t *testing.T) {
	h := NewUserHandler(&service.UserService{}, nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(""))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetUserRequiresID(t *testing.T) {
	h := NewUserHandler(&service.UserService{}, nil, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/users/", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "MISSING_ID" {
		t.Errorf("code = %q, want MISSING_ID", resp.Code)
	}
}

func TestMeRequiresIdentity(t *testing.T) {
	h := NewUserHandler(&service.UserService{}, nil, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLogoutWithoutCacheSucceeds(t *testing.T) {
	h := NewUserHandler(&service.UserService{}, nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer wh_sometoken.sig")
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCreateJobRejectsNonMultipart(t *testing.T) {
	h := NewJobHandler(&service.JobService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req = withIdentity(req, model.RoleEmployer)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "INVALID_FORM" {
		t.Errorf("code = %q, want INVALID_FORM", resp.Code)
	}
}

func TestUpdateJobRejectsMalformedJSON(t *testing.T) {
	h := NewJobHandler(&service.JobService{}, testLogger())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/jobs/abc", strings.NewReader("{oops"))
	req.Header.Set("Content-Type", "application/json")
	req = withIdentity(req, model.RoleEmployer)
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	// Missing chi route context means no ID either; both are 400.
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestApplyRequiresJobID(t *testing.T) {
	h := NewApplicationHandler(&service.ApplicationService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", strings.NewReader(`{"resume_url":"https://x/r.pdf"}`))
	req = withIdentity(req, model.RoleEmployee)
	rec := httptest.NewRecorder()

	h.Apply(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "MISSING_JOB_ID" {
		t.Errorf("code = %q, want MISSING_JOB_ID", resp.Code)
	}
}

func TestApplyRejectsMalformedJSON(t *testing.T) {
	h := NewApplicationHandler(&service.ApplicationService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", strings.NewReader("[broken"))
	req = withIdentity(req, model.RoleEmployee)
	rec := httptest.NewRecorder()

	h.Apply(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "INVALID_JSON" {
		t.Errorf("code = %q, want INVALID_JSON", resp.Code)
	}
}

func TestSetStatusRequiresID(t *testing.T) {
	h := NewApplicationHandler(&service.ApplicationService{}, testLogger())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/applications/", strings.NewReader(`{"status":"accepted"}`))
	req = withIdentity(req, model.RoleEmployer)
	rec := httptest.NewRecorder()

	h.SetStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "MISSING_ID" {
		t.Errorf("code = %q, want MISSING_ID", resp.Code)
	}
}
