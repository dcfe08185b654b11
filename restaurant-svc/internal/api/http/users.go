package httpapi

import (
	"net/http"
	"strings"

	"restaurant-backend/restaurant-svc/internal/auth"
	"restaurant-backend/restaurant-svc/internal/domain"
	"restaurant-backend/restaurant-svc/internal/service"

	"github.com/gorilla/mux"
)

type signupRequest struct {
	Name     string      `json:"name" validate:"required,max=100"`
	Surname  string      `json:"surname" validate:"required,max=100"`
	Username string      `json:"username" validate:"required,min=3,max=50"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     domain.Role `json:"role" validate:"omitempty,oneof=admin staff customer"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userUpdateRequest struct {
	Name          string               `json:"name" validate:"max=100"`
	Surname       string               `json:"surname" validate:"max=100"`
	Username      string               `json:"username" validate:"omitempty,min=3,max=50"`
	Email         string               `json:"email" validate:"omitempty,email"`
	Password      string               `json:"password" validate:"omitempty,min=6"`
	Role          domain.Role          `json:"role" validate:"omitempty,oneof=admin staff customer"`
	AccountStatus domain.AccountStatus `json:"accountStatus" validate:"omitempty,oneof=active inactive"`
}

// signup is public for customer accounts. Any other role needs an admin token.
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if req.Role != "" && req.Role != domain.RoleCustomer {
		if _, denial := auth.Authorize(h.Auth, r, domain.RoleAdmin); denial != nil {
			auth.Deny(w, denial)
			return
		}
	}

	user := &domain.User{
		Name:     strings.TrimSpace(req.Name),
		Surname:  strings.TrimSpace(req.Surname),
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Role:     req.Role,
	}
	if err := h.Users.Signup(r.Context(), user, req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    user,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := h.Users.Login(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req userUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.Users.Update(r.Context(), mux.Vars(r)["id"], service.UserUpdate{
		Name:          strings.TrimSpace(req.Name),
		Surname:       strings.TrimSpace(req.Surname),
		Username:      strings.TrimSpace(req.Username),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Password:      req.Password,
		Role:          req.Role,
		AccountStatus: req.AccountStatus,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    user,
	})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "User deleted successfully")
}
