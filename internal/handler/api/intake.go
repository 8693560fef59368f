// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/menalane/menalane/internal/model"
	"github.com/menalane/menalane/internal/store"
	"github.com/menalane/menalane/internal/util"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitContact stores a contact form entry.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Name, email, and message are required")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	message := strings.TrimSpace(req.Message)
	if name == "" || email == "" || message == "" {
		WriteError(w, http.StatusBadRequest, "Name, email, and message are required")
		return
	}

	err := h.queries.CreateContactSubmission(r.Context(), store.CreateContactSubmissionParams{
		Name:      name,
		Email:     email,
		Company:   util.NullStringFromValue(strings.TrimSpace(req.Company)),
		Subject:   util.NullStringFromValue(strings.TrimSpace(req.Subject)),
		Message:   message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		h.internalError(w, "storing contact submission", err)
		return
	}

	_ = h.events.LogIntake(r.Context(), model.EventLevelInfo, "contact form submitted",
		map[string]any{"email": email})

	WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Contact form submitted successfully",
	})
}

type newsletterRequest struct {
	Email string `json:"email"`
}

// SubscribeNewsletter upserts a newsletter opt-in. Repeat signups and
// re-subscribes after an unsubscribe both succeed.
func (h *Handler) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Email is required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		WriteError(w, http.StatusBadRequest, "Email is required")
		return
	}

	if err := h.queries.UpsertNewsletterSubscription(r.Context(), email, time.Now()); err != nil {
		h.internalError(w, "storing newsletter subscription", err)
		return
	}

	_ = h.events.LogIntake(r.Context(), model.EventLevelInfo, "newsletter subscription",
		map[string]any{"email": email})

	WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Successfully subscribed to newsletter",
	})
}
