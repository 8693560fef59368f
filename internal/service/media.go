// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds business logic above the store layer.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/menalane/menalane/internal/imaging"
	"github.com/menalane/menalane/internal/model"
	"github.com/menalane/menalane/internal/store"
)

// MaxUploadSize caps uploaded files at 10MB.
const MaxUploadSize = 10 * 1024 * 1024

// Upload validation errors. Handlers map these to 400 responses.
var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// allowedExtensions maps accepted file extensions to their MIME types. Both
// the extension and the client-declared content type must pass.
var allowedExtensions = map[string]string{
	".jpg":  model.MimeTypeJPEG,
	".jpeg": model.MimeTypeJPEG,
	".png":  model.MimeTypePNG,
	".gif":  model.MimeTypeGIF,
	".webp": model.MimeTypeWebP,
	".pdf":  model.MimeTypePDF,
}

// MediaService handles media uploads and deletion, keeping the database row
// and the file on disk in step.
type MediaService struct {
	queries   *store.Queries
	uploadDir string
	logger    *slog.Logger
}

// NewMediaService creates a media service writing into uploadDir.
func NewMediaService(queries *store.Queries, uploadDir string, logger *slog.Logger) *MediaService {
	return &MediaService{
		queries:   queries,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Upload validates, stores, and records an uploaded file. baseURL is the
// scheme and host the public URL is built from, e.g. "http://localhost:3000".
func (s *MediaService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, uploadedBy int64, baseURL string) (model.MediaAsset, error) {
	if header.Size > MaxUploadSize {
		return model.MediaAsset{}, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	expectedMime, ok := allowedExtensions[ext]
	if !ok {
		return model.MediaAsset{}, ErrUnsupportedType
	}

	declaredMime := header.Header.Get("Content-Type")
	if declaredMime != "" && declaredMime != expectedMime {
		return model.MediaAsset{}, ErrUnsupportedType
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return model.MediaAsset{}, fmt.Errorf("creating uploads dir: %w", err)
	}

	// Stored name is a fresh UUID so uploads never collide or leak the
	// original name into URLs.
	storedName := uuid.New().String() + ext
	storedPath := filepath.Join(s.uploadDir, storedName)

	size, err := s.writeFile(file, storedPath)
	if err != nil {
		return model.MediaAsset{}, err
	}

	var width, height sql.NullInt64
	if expectedMime != model.MimeTypePDF {
		width, height = s.probeDimensions(storedPath)
	}

	asset, err := s.queries.CreateMedia(ctx, store.CreateMediaParams{
		Filename:         storedName,
		OriginalFilename: filepath.Base(header.Filename),
		FileType:         expectedMime,
		FileSize:         size,
		URL:              baseURL + "/uploads/" + storedName,
		Width:            width,
		Height:           height,
		UploadedBy:       sql.NullInt64{Int64: uploadedBy, Valid: true},
		CreatedAt:        time.Now(),
	})
	if err != nil {
		// Remove the orphaned file so disk and DB stay consistent.
		_ = os.Remove(storedPath)
		return model.MediaAsset{}, fmt.Errorf("creating media record: %w", err)
	}

	if asset.IsImage() {
		if _, err := imaging.Thumbnail(storedPath); err != nil {
			s.logger.Warn("thumbnail generation failed",
				"category", model.EventCategoryMedia,
				"filename", storedName, "error", err.Error())
		}
	}

	return asset, nil
}

// Delete removes the media row, then the files on disk. File removal is best
// effort; a missing file does not fail the delete.
func (s *MediaService) Delete(ctx context.Context, id int64) error {
	asset, err := s.queries.GetMediaByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.queries.DeleteMedia(ctx, id); err != nil {
		return fmt.Errorf("deleting media record: %w", err)
	}

	storedPath := filepath.Join(s.uploadDir, asset.Filename)
	if err := os.Remove(storedPath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("removing media file failed",
			"category", model.EventCategoryMedia,
			"filename", asset.Filename, "error", err.Error())
	}
	_ = os.Remove(imaging.ThumbnailPath(storedPath))

	return nil
}

// writeFile copies the upload to its stored path, cleaning up on failure.
func (s *MediaService) writeFile(file multipart.File, storedPath string) (int64, error) {
	out, err := os.Create(storedPath)
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}
	defer func() { _ = out.Close() }()

	size, err := io.Copy(out, file)
	if err != nil {
		_ = os.Remove(storedPath)
		return 0, fmt.Errorf("writing file: %w", err)
	}
	return size, nil
}

// probeDimensions reads pixel dimensions from a stored image. Failures leave
// the columns null rather than rejecting the upload.
func (s *MediaService) probeDimensions(storedPath string) (width, height sql.NullInt64) {
	f, err := os.Open(storedPath)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	w, h, err := imaging.Dimensions(f)
	if err != nil {
		return
	}
	width = sql.NullInt64{Int64: int64(w), Valid: true}
	height = sql.NullInt64{Int64: int64(h), Valid: true}
	return
}
