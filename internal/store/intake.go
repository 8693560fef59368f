// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/menalane/menalane/internal/model"
)

// CreateContactSubmissionParams holds a contact form entry.
type CreateContactSubmissionParams struct {
	Name      string
	Email     string
	Company   sql.NullString
	Subject   sql.NullString
	Message   string
	CreatedAt time.Time
}

// CreateContactSubmission stores a contact form entry.
func (q *Queries) CreateContactSubmission(ctx context.Context, p CreateContactSubmissionParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO contact_submissions (name, email, company, subject, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Email, p.Company, p.Subject, p.Message, p.CreatedAt)
	return err
}

// UpsertNewsletterSubscription inserts a subscription or, when the email is
// already present, flips it back to subscribed. Unsubscribed addresses that
// sign up again are re-activated rather than rejected.
func (q *Queries) UpsertNewsletterSubscription(ctx context.Context, email string, now time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO newsletter_subscriptions (email, subscribed, updated_at)
		 VALUES (?, 1, ?)
		 ON CONFLICT(email) DO UPDATE SET subscribed = 1, updated_at = excluded.updated_at`,
		email, now)
	return err
}

// GetNewsletterSubscription fetches a subscription by email.
func (q *Queries) GetNewsletterSubscription(ctx context.Context, email string) (model.NewsletterSubscription, error) {
	var s model.NewsletterSubscription
	err := q.db.QueryRowContext(ctx,
		`SELECT id, email, subscribed, updated_at FROM newsletter_subscriptions WHERE email = ?`,
		email).Scan(&s.ID, &s.Email, &s.Subscribed, &s.UpdatedAt)
	return s, err
}

// UnsubscribeNewsletter flips a subscription off, keeping the row.
func (q *Queries) UnsubscribeNewsletter(ctx context.Context, email string, now time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE newsletter_subscriptions SET subscribed = 0, updated_at = ? WHERE email = ?`,
		now, email)
	return err
}

// CountContactSubmissions returns the total number of contact entries.
func (q *Queries) CountContactSubmissions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_submissions`).Scan(&n)
	return n, err
}
