// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/menalane/menalane/internal/auth"
	"github.com/menalane/menalane/internal/middleware"
	"github.com/menalane/menalane/internal/model"
	"github.com/menalane/menalane/internal/store"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
	Token   string     `json:"token"`
}

// Register creates a new CMS account and signs it in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" || req.Password == "" || name == "" {
		WriteError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if len(req.Password) < auth.MinPasswordLength {
		WriteError(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	exists, err := h.queries.EmailExists(r.Context(), email)
	if err != nil {
		h.internalError(w, "checking email", err)
		return
	}
	if exists {
		WriteError(w, http.StatusBadRequest, "User with this email already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.internalError(w, "hashing password", err)
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteError(w, http.StatusBadRequest, "User with this email already exists")
			return
		}
		h.internalError(w, "creating user", err)
		return
	}

	token, err := h.tokens.Sign(user.ID, user.Email)
	if err != nil {
		h.internalError(w, "signing token", err)
		return
	}

	_ = h.events.LogAuth(r.Context(), model.EventLevelInfo, "user registered",
		&user.ID, map[string]any{"email": user.Email})

	WriteJSON(w, http.StatusCreated, authResponse{
		Message: "User created successfully",
		User:    user,
		Token:   token,
	})
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password produce the same response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusBadRequest, "Invalid email or password")
			return
		}
		h.internalError(w, "loading user", err)
		return
	}

	valid, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		WriteError(w, http.StatusBadRequest, "Invalid email or password")
		return
	}

	token, err := h.tokens.Sign(user.ID, user.Email)
	if err != nil {
		h.internalError(w, "signing token", err)
		return
	}

	_ = h.events.LogAuth(r.Context(), model.EventLevelInfo, "user logged in",
		&user.ID, map[string]any{"email": user.Email})

	WriteJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}

// Me returns the authenticated account. Also serves the verify route, since a
// request reaching it has a valid token by construction.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r)
	if user == nil {
		WriteError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"user": user})
}

type profileRequest struct {
	Name string `json:"name"`
}

// UpdateProfile changes the account display name.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r)
	if user == nil {
		WriteError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Name is required")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		WriteError(w, http.StatusBadRequest, "Name is required")
		return
	}

	updated, err := h.queries.UpdateUserName(r.Context(), user.ID, name)
	if err != nil {
		h.internalError(w, "updating profile", err)
		return
	}

	_ = h.events.LogAuth(r.Context(), model.EventLevelInfo, "profile updated",
		&user.ID, map[string]any{"name": name})

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}
