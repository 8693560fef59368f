// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/menalane/menalane/internal/model"
)

// ListMarketHighlights returns highlights ordered by display order. A
// non-empty region filters exactly; unlike content listings there is no
// bypass value.
func (q *Queries) ListMarketHighlights(ctx context.Context, region string) ([]model.MarketHighlight, error) {
	query := `SELECT id, region, metric_name, metric_value, trend, description, display_order
		FROM market_highlights`
	var args []any
	if region != "" {
		query += ` WHERE region = ?`
		args = append(args, region)
	}
	query += ` ORDER BY display_order ASC, id ASC`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.MarketHighlight
	for rows.Next() {
		var h model.MarketHighlight
		if err := rows.Scan(&h.ID, &h.Region, &h.MetricName, &h.MetricValue,
			&h.Trend, &h.Description, &h.DisplayOrder); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

// CreateMarketHighlightParams holds the fields for a new highlight row.
type CreateMarketHighlightParams struct {
	Region       string
	MetricName   string
	MetricValue  string
	Trend        string
	Description  string
	DisplayOrder int64
}

// CreateMarketHighlight inserts a highlight row.
func (q *Queries) CreateMarketHighlight(ctx context.Context, p CreateMarketHighlightParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO market_highlights (region, metric_name, metric_value, trend, description, display_order)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Region, p.MetricName, p.MetricValue, p.Trend, p.Description, p.DisplayOrder)
	return err
}

// ListActiveJobs returns active job listings, newest first.
func (q *Queries) ListActiveJobs(ctx context.Context) ([]model.Job, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, title, location, description, requirements, is_active, created_at
		 FROM jobs WHERE is_active = 1 ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.Job
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Location, &j.Description,
			&j.Requirements, &j.IsActive, &j.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, j)
	}
	return items, rows.Err()
}

// CreateJobParams holds the fields for a new job listing.
type CreateJobParams struct {
	Title        string
	Location     string
	Description  string
	Requirements string
	IsActive     bool
	CreatedAt    time.Time
}

// CreateJob inserts a job listing.
func (q *Queries) CreateJob(ctx context.Context, p CreateJobParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO jobs (title, location, description, requirements, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Title, p.Location, p.Description, p.Requirements, p.IsActive, p.CreatedAt)
	return err
}

// CountMarketHighlights returns the total number of highlight rows.
func (q *Queries) CountMarketHighlights(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM market_highlights`).Scan(&n)
	return n, err
}

// CountJobs returns the total number of job rows.
func (q *Queries) CountJobs(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n)
	return n, err
}
