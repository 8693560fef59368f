// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// ContactSubmission is a contact form entry. Write-only from the public API.
type ContactSubmission struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Company   sql.NullString `json:"-"`
	Subject   sql.NullString `json:"-"`
	Message   string         `json:"message"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewsletterSubscription tracks a newsletter opt-in keyed by normalized email.
// Re-subscribing an existing (possibly unsubscribed) email flips Subscribed
// back to true.
type NewsletterSubscription struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Subscribed bool      `json:"subscribed"`
	UpdatedAt  time.Time `json:"updated_at"`
}
