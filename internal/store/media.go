// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/menalane/menalane/internal/model"
)

const mediaColumns = `id, filename, original_filename, file_type, file_size, url,
	width, height, uploaded_by, created_at`

func scanMedia(row *sql.Row) (model.MediaAsset, error) {
	var m model.MediaAsset
	err := row.Scan(&m.ID, &m.Filename, &m.OriginalFilename, &m.FileType, &m.FileSize,
		&m.URL, &m.Width, &m.Height, &m.UploadedBy, &m.CreatedAt)
	return m, err
}

// CreateMediaParams holds the metadata row for an uploaded file.
type CreateMediaParams struct {
	Filename         string
	OriginalFilename string
	FileType         string
	FileSize         int64
	URL              string
	Width            sql.NullInt64
	Height           sql.NullInt64
	UploadedBy       sql.NullInt64
	CreatedAt        time.Time
}

// CreateMedia inserts a media row and returns it.
func (q *Queries) CreateMedia(ctx context.Context, p CreateMediaParams) (model.MediaAsset, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO media (filename, original_filename, file_type, file_size, url,
			width, height, uploaded_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Filename, p.OriginalFilename, p.FileType, p.FileSize, p.URL,
		p.Width, p.Height, p.UploadedBy, p.CreatedAt)
	if err != nil {
		return model.MediaAsset{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.MediaAsset{}, err
	}
	return q.GetMediaByID(ctx, id)
}

// GetMediaByID fetches a media row by primary key.
func (q *Queries) GetMediaByID(ctx context.Context, id int64) (model.MediaAsset, error) {
	return scanMedia(q.db.QueryRowContext(ctx,
		`SELECT `+mediaColumns+` FROM media WHERE id = ?`, id))
}

// ListMedia returns media rows, newest first.
func (q *Queries) ListMedia(ctx context.Context, limit, offset int64) ([]model.MediaAsset, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+mediaColumns+` FROM media ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.MediaAsset
	for rows.Next() {
		var m model.MediaAsset
		if err := rows.Scan(&m.ID, &m.Filename, &m.OriginalFilename, &m.FileType,
			&m.FileSize, &m.URL, &m.Width, &m.Height, &m.UploadedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// DeleteMedia removes a media row.
func (q *Queries) DeleteMedia(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	return err
}

// CountMedia returns the total number of media rows.
func (q *Queries) CountMedia(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media`).Scan(&n)
	return n, err
}
