package handler

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"

	"propdastak/internal/domain"
	"propdastak/internal/service"
	apperrors "propdastak/pkg/errors"
	"propdastak/pkg/logger"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// UserHandler handles account signup, login and CRUD requests
type UserHandler struct {
	users  *service.UserService
	logger *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// Signup handles POST /api/users/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if msg := validateSignupRequest(&req); msg != "" {
		writeError(w, apperrors.NewValidationError(msg, nil), h.logger)
		return
	}

	resp, err := h.users.Signup(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp, h.logger)
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if !emailPattern.MatchString(req.Email) || req.Password == "" {
		writeError(w, apperrors.NewValidationError("Email and password are required", nil), h.logger)
		return
	}

	resp, err := h.users.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp, h.logger)
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, users, h.logger)
}

// GetByID handles GET /api/users/{id}
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperrors.NewValidationError("Invalid user id", nil), h.logger)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, user, h.logger)
}

// GetByUUID handles GET /api/users/uuid/{uuid}
func (h *UserHandler) GetByUUID(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByUUID(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, user, h.logger)
}

// Update handles PUT /api/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperrors.NewValidationError("Invalid user id", nil), h.logger)
		return
	}

	var upd domain.UserUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if msg := validateUserUpdate(&upd); msg != "" {
		writeError(w, apperrors.NewValidationError(msg, nil), h.logger)
		return
	}

	user, err := h.users.Update(r.Context(), id, &upd)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, user, h.logger)
}

// Delete handles DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperrors.NewValidationError("Invalid user id", nil), h.logger)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validateSignupRequest returns an empty string when req is valid, or the
// first failing rule's message.
func validateSignupRequest(req *domain.SignupRequest) string {
	if l := len(strings.TrimSpace(req.FirstName)); l < 2 || l > 100 {
		return "First name must be between 2 and 100 characters"
	}
	if l := len(strings.TrimSpace(req.LastName)); l < 2 || l > 100 {
		return "Last name must be between 2 and 100 characters"
	}
	if !phonePattern.MatchString(req.PhoneNumber) {
		return "Phone number must be a valid international format"
	}
	if !emailPattern.MatchString(req.Email) {
		return "Please provide a valid email address"
	}
	if msg := validatePassword(req.Password); msg != "" {
		return msg
	}
	if !domain.ValidUserClass(req.Class) {
		return "Class must be one of: buyer, seller, user"
	}
	return ""
}

// validateUserUpdate checks only the fields present in the patch.
func validateUserUpdate(upd *domain.UserUpdate) string {
	if upd.FirstName != nil {
		if l := len(strings.TrimSpace(*upd.FirstName)); l < 2 || l > 100 {
			return "First name must be between 2 and 100 characters"
		}
	}
	if upd.LastName != nil {
		if l := len(strings.TrimSpace(*upd.LastName)); l < 2 || l > 100 {
			return "Last name must be between 2 and 100 characters"
		}
	}
	if upd.PhoneNumber != nil && !phonePattern.MatchString(*upd.PhoneNumber) {
		return "Phone number must be a valid international format"
	}
	if upd.Email != nil && !emailPattern.MatchString(*upd.Email) {
		return "Please provide a valid email address"
	}
	if upd.Password != nil {
		if msg := validatePassword(*upd.Password); msg != "" {
			return msg
		}
	}
	if upd.Class != nil && !domain.ValidUserClass(*upd.Class) {
		return "Class must be one of: buyer, seller, user"
	}
	return ""
}

// validatePassword enforces the portal password policy: at least 8
// characters with an upper, a lower, a digit and a special character.
func validatePassword(password string) string {
	if len(password) < 8 || len(password) > 100 {
		return "Password must be between 8 and 100 characters"
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune("@$!%*?&#^_-.", r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character"
	}
	return ""
}

// RegisterRoutes registers user routes with the router. Signup and login
// are public; everything else requires authentication.
func (h *UserHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/", h.List)
			r.Get("/{id:[0-9]+}", h.GetByID)
			r.Get("/uuid/{uuid}", h.GetByUUID)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}
