package server

import (
	"net/http"
	"strings"

	"soundlink/core/auth"
	"soundlink/logger"
	"soundlink/model"
)

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body. Username may also be
// an email address.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterHandler handles user registration.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	existing, err := h.repos.Users.GetUserByUsername(req.Username)
	if err != nil {
		logger.Error("register: failed to check username", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "Username already taken")
		return
	}

	existing, err = h.repos.Users.GetUserByEmail(req.Email)
	if err != nil {
		logger.Error("register: failed to check email", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "Email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("register: failed to hash password", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	id, err := h.repos.Users.CreateUser(user)
	if err != nil {
		logger.Error("register: failed to create user", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	user.ID = id

	token, err := auth.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		logger.Error("register: failed to generate token", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	logger.Info("user registered", logger.String("username", user.Username))
	respondSuccess(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// LoginHandler handles user login by username or email.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username/email and password are required")
		return
	}

	var user *model.User
	var err error
	if strings.Contains(req.Username, "@") {
		user, err = h.repos.Users.GetUserByEmail(req.Username)
	} else {
		user, err = h.repos.Users.GetUserByUsername(req.Username)
	}
	if err != nil {
		logger.Error("login: failed to query user", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		logger.Warn("login rejected", logger.String("username", req.Username))
		respondError(w, http.StatusUnauthorized, "Invalid username/email or password")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		logger.Error("login: failed to generate token", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	logger.Info("user logged in", logger.String("username", user.Username))
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
