// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/menalane/menalane/internal/model"
	"github.com/menalane/menalane/internal/util"
)

const contentColumns = `id, title, slug, excerpt, body, author, featured_image,
	content_type, region, industry, is_featured, views, published_at, created_at, updated_at`

func scanContentRow(row *sql.Row) (model.Content, error) {
	var c model.Content
	var publishedAt sql.NullTime
	err := row.Scan(
		&c.ID, &c.Title, &c.Slug, &c.Excerpt, &c.Body, &c.Author, &c.FeaturedImage,
		&c.ContentType, &c.Region, &c.Industry, &c.IsFeatured, &c.Views,
		&publishedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	c.PublishedAt = util.TimePtrFromNull(publishedAt)
	return c, err
}

func scanContentRows(rows *sql.Rows) ([]model.Content, error) {
	defer func() { _ = rows.Close() }()

	var items []model.Content
	for rows.Next() {
		var c model.Content
		var publishedAt sql.NullTime
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Slug, &c.Excerpt, &c.Body, &c.Author, &c.FeaturedImage,
			&c.ContentType, &c.Region, &c.Industry, &c.IsFeatured, &c.Views,
			&publishedAt, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		c.PublishedAt = util.TimePtrFromNull(publishedAt)
		items = append(items, c)
	}
	return items, rows.Err()
}

// ListContent returns rows matching the filter. Published listings are
// ordered newest-published first; CMS listings (drafts included) are ordered
// by last update.
func (q *Queries) ListContent(ctx context.Context, f ContentFilter) ([]model.Content, error) {
	b := f.build()

	order := " ORDER BY updated_at DESC"
	if f.PublishedOnly {
		order = " ORDER BY published_at DESC"
	}

	query := `SELECT ` + contentColumns + ` FROM content` + b.clause() + order + ` LIMIT ? OFFSET ?`
	args := append(b.args, f.Limit, f.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanContentRows(rows)
}

// CountContent returns the number of rows matching the filter, sharing the
// exact predicate used by ListContent.
func (q *Queries) CountContent(ctx context.Context, f ContentFilter) (int64, error) {
	b := f.build()

	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content`+b.clause(), b.args...).Scan(&n)
	return n, err
}

// GetContentByID fetches any row, draft or published.
func (q *Queries) GetContentByID(ctx context.Context, id int64) (model.Content, error) {
	return scanContentRow(q.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM content WHERE id = ?`, id))
}

// GetPublishedBySlug fetches a published row by slug. Drafts are never
// returned, even on an exact slug match.
func (q *Queries) GetPublishedBySlug(ctx context.Context, slug string) (model.Content, error) {
	return scanContentRow(q.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM content WHERE slug = ? AND published_at IS NOT NULL`, slug))
}

// IncrementViews bumps the view counter by one. At-least-once semantics;
// lost updates under concurrent requests are tolerated.
func (q *Queries) IncrementViews(ctx context.Context, slug string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE content SET views = views + 1 WHERE slug = ?`, slug)
	return err
}

// ListRelated returns up to limit published rows sharing the same region or
// industry, excluding the row itself, newest first.
func (q *Queries) ListRelated(ctx context.Context, slug, region, industry string, limit int64) ([]model.Content, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+contentColumns+` FROM content
		 WHERE published_at IS NOT NULL AND slug != ? AND (region = ? OR industry = ?)
		 ORDER BY published_at DESC LIMIT ?`,
		slug, region, industry, limit)
	if err != nil {
		return nil, err
	}
	return scanContentRows(rows)
}

// ListFeatured returns the newest published rows flagged as featured.
func (q *Queries) ListFeatured(ctx context.Context, limit int64) ([]model.Content, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+contentColumns+` FROM content
		 WHERE is_featured = 1 AND published_at IS NOT NULL
		 ORDER BY published_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return scanContentRows(rows)
}

// SlugExists reports whether any row uses the slug.
func (q *Queries) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content WHERE slug = ?`, slug).Scan(&n)
	return n > 0, err
}

// SlugExistsExcluding reports whether any row other than id uses the slug.
func (q *Queries) SlugExistsExcluding(ctx context.Context, slug string, id int64) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content WHERE slug = ? AND id != ?`, slug, id).Scan(&n)
	return n > 0, err
}

// CreateContentParams holds the fields for a new content row.
type CreateContentParams struct {
	Title         string
	Slug          string
	Excerpt       string
	Body          string
	Author        string
	FeaturedImage string
	ContentType   string
	Region        string
	Industry      string
	IsFeatured    bool
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateContent inserts a row and returns it.
func (q *Queries) CreateContent(ctx context.Context, p CreateContentParams) (model.Content, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO content (title, slug, excerpt, body, author, featured_image,
			content_type, region, industry, is_featured, published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.Excerpt, p.Body, p.Author, p.FeaturedImage,
		p.ContentType, p.Region, p.Industry, p.IsFeatured,
		util.NullTimeFromPtr(p.PublishedAt), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return model.Content{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Content{}, err
	}
	return q.GetContentByID(ctx, id)
}

// UpdateContentParams holds the full set of updatable fields. Handlers seed
// it from the existing row, then apply the request's changes.
type UpdateContentParams struct {
	ID            int64
	Title         string
	Slug          string
	Excerpt       string
	Body          string
	Author        string
	FeaturedImage string
	ContentType   string
	Region        string
	Industry      string
	IsFeatured    bool
	PublishedAt   *time.Time
	UpdatedAt     time.Time
}

// UpdateContent overwrites a row and returns the stored result.
func (q *Queries) UpdateContent(ctx context.Context, p UpdateContentParams) (model.Content, error) {
	if _, err := q.db.ExecContext(ctx,
		`UPDATE content SET title = ?, slug = ?, excerpt = ?, body = ?, author = ?,
			featured_image = ?, content_type = ?, region = ?, industry = ?,
			is_featured = ?, published_at = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Slug, p.Excerpt, p.Body, p.Author,
		p.FeaturedImage, p.ContentType, p.Region, p.Industry,
		p.IsFeatured, util.NullTimeFromPtr(p.PublishedAt), p.UpdatedAt, p.ID,
	); err != nil {
		return model.Content{}, err
	}
	return q.GetContentByID(ctx, p.ID)
}

// DeleteContent hard-deletes a row.
func (q *Queries) DeleteContent(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM content WHERE id = ?`, id)
	return err
}

// ContentStats holds the aggregate counters shown on the CMS dashboard.
type ContentStats struct {
	Total     int64
	Published int64
	Drafts    int64
}

// GetContentStats runs the three content aggregates.
func (q *Queries) GetContentStats(ctx context.Context) (ContentStats, error) {
	var s ContentStats
	if err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content`).Scan(&s.Total); err != nil {
		return s, err
	}
	if err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content WHERE published_at IS NOT NULL`).Scan(&s.Published); err != nil {
		return s, err
	}
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content WHERE published_at IS NULL`).Scan(&s.Drafts)
	return s, err
}
