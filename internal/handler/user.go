package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/cache"
	"github.com/workhive/workhive/internal/handler/dto"
	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/service"
)

// UserHandler handles HTTP requests for accounts and sessions.
type UserHandler struct {
	svc    *service.UserService
	cache  *cache.Cache
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler. Cache may be nil.
func NewUserHandler(svc *service.UserService, c *cache.Cache, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		cache:  c,
		logger: logger,
	}
}

// Register handles POST /api/v1/auth/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	token, user, err := h.svc.Register(r.Context(), service.RegisterInput{
		FullName:                   req.FullName,
		Email:                      req.Email,
		Password:                   req.Password,
		PhoneNumber:                req.PhoneNumber,
		Role:                       model.Role(req.Role),
		CompanyName:                req.CompanyName,
		BusinessRegistrationNumber: req.BusinessRegistrationNumber,
		ResumeURL:                  req.ResumeURL,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_registered",
		"user_id", user.ID,
		"role", string(user.Role),
	)

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	})
}

// Login handles POST /api/v1/auth/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	token, user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	})
}

// Get handles GET /api/v1/auth/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "User ID is required")
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Me handles GET /api/v1/auth/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	user, err := h.svc.GetUser(r.Context(), id.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Logout handles POST /api/v1/auth/logout.
// Tokens are stateless; logout evicts the cached identity so a client
// discarding its token stops being served from cache.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if token := bearerToken(r); token != "" {
			if err := h.cache.DeleteIdentity(r.Context(), auth.QuickHash(token)); err != nil {
				h.logger.Warn("failed to evict cached identity", "error", err.Error())
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// handleServiceError maps user service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", err.Error())
	case errors.Is(err, service.ErrInvalidRole):
		writeError(w, http.StatusBadRequest, "INVALID_ROLE", err.Error())
	case errors.Is(err, service.ErrMissingEmployerFields):
		writeError(w, http.StatusBadRequest, "MISSING_EMPLOYER_FIELDS", err.Error())
	case errors.Is(err, service.ErrMissingResume):
		writeError(w, http.StatusBadRequest, "MISSING_RESUME", err.Error())
	case errors.Is(err, service.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, "PASSWORD_TOO_SHORT", err.Error())
	case errors.Is(err, service.ErrEmailExists):
		writeError(w, http.StatusConflict, "EMAIL_EXISTS", err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
