// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Supported MIME types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
	MimeTypePDF  = "application/pdf"
)

// MediaAsset is an uploaded file plus its metadata row. The row and the
// physical file share a lifecycle: deleting the row deletes the file, and a
// failed insert rolls back the already-written file.
type MediaAsset struct {
	ID               int64         `json:"id"`
	Filename         string        `json:"filename"`
	OriginalFilename string        `json:"original_filename"`
	FileType         string        `json:"file_type"`
	FileSize         int64         `json:"file_size"`
	URL              string        `json:"url"`
	Width            sql.NullInt64 `json:"-"`
	Height           sql.NullInt64 `json:"-"`
	UploadedBy       sql.NullInt64 `json:"-"`
	CreatedAt        time.Time     `json:"created_at"`
}

// IsImage returns true if the asset is a raster image.
func (m *MediaAsset) IsImage() bool {
	switch m.FileType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	default:
		return false
	}
}

// IsPDF returns true if the asset is a PDF document.
func (m *MediaAsset) IsPDF() bool {
	return m.FileType == MimeTypePDF
}

// SupportedImageTypes returns the image MIME types accepted for upload.
func SupportedImageTypes() []string {
	return []string{MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP}
}

// AllSupportedTypes returns every MIME type accepted for upload.
func AllSupportedTypes() []string {
	return append(SupportedImageTypes(), MimeTypePDF)
}

// IsSupportedMimeType checks if a MIME type is accepted for upload.
func IsSupportedMimeType(mimeType string) bool {
	for _, t := range AllSupportedTypes() {
		if t == mimeType {
			return true
		}
	}
	return false
}
