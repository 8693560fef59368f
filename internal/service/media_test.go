// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/menalane/menalane/internal/model"
	"github.com/menalane/menalane/internal/store"
	"github.com/menalane/menalane/internal/testutil"
)

// multipartUpload builds a request carrying one file part and returns the
// parsed file and header the way a handler would see them.
func multipartUpload(t *testing.T, filename, contentType string, data []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("creating part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("writing part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/cms/media/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	file, header, err := req.FormFile("file")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	t.Cleanup(func() { _ = file.Close() })
	return file, header
}

func pngData(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func newMediaService(t *testing.T) (*MediaService, *store.Queries, string, func()) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	queries := store.New(db)

	// First row in a fresh database, so uploads can reference user ID 1
	// without tripping the uploaded_by foreign key.
	if _, err := queries.CreateUser(context.Background(), store.CreateUserParams{
		Email:        "uploader@example.com",
		PasswordHash: "h",
		Name:         "Uploader",
		CreatedAt:    time.Now(),
	}); err != nil {
		t.Fatalf("creating uploader: %v", err)
	}

	dir := t.TempDir()
	svc := NewMediaService(queries, dir, testutil.TestLogger())
	return svc, queries, dir, cleanup
}

func TestMediaUpload_Image(t *testing.T) {
	svc, _, dir, cleanup := newMediaService(t)
	defer cleanup()

	file, header := multipartUpload(t, "chart.png", model.MimeTypePNG, pngData(t, 64, 48))

	asset, err := svc.Upload(context.Background(), file, header, 1, "http://localhost:3000")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if asset.OriginalFilename != "chart.png" {
		t.Errorf("OriginalFilename = %q, want chart.png", asset.OriginalFilename)
	}
	if asset.Filename == "chart.png" {
		t.Error("stored filename should not be the original name")
	}
	if filepath.Ext(asset.Filename) != ".png" {
		t.Errorf("stored filename %q should keep the .png extension", asset.Filename)
	}
	if asset.FileType != model.MimeTypePNG {
		t.Errorf("FileType = %q, want %q", asset.FileType, model.MimeTypePNG)
	}
	if asset.URL != "http://localhost:3000/uploads/"+asset.Filename {
		t.Errorf("URL = %q, want uploads URL for %q", asset.URL, asset.Filename)
	}
	if !asset.Width.Valid || asset.Width.Int64 != 64 {
		t.Errorf("Width = %+v, want 64", asset.Width)
	}
	if !asset.Height.Valid || asset.Height.Int64 != 48 {
		t.Errorf("Height = %+v, want 48", asset.Height)
	}

	if _, err := os.Stat(filepath.Join(dir, asset.Filename)); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestMediaUpload_PDF(t *testing.T) {
	svc, _, _, cleanup := newMediaService(t)
	defer cleanup()

	file, header := multipartUpload(t, "report.pdf", model.MimeTypePDF, []byte("%PDF-1.4 fake"))

	asset, err := svc.Upload(context.Background(), file, header, 1, "http://localhost:3000")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if asset.Width.Valid || asset.Height.Valid {
		t.Error("PDF upload should have null dimensions")
	}
	if !asset.IsPDF() {
		t.Errorf("FileType = %q, want PDF", asset.FileType)
	}
}

func TestMediaUpload_UnsupportedExtension(t *testing.T) {
	svc, _, _, cleanup := newMediaService(t)
	defer cleanup()

	file, header := multipartUpload(t, "malware.exe", "application/octet-stream", []byte("MZ"))

	_, err := svc.Upload(context.Background(), file, header, 1, "http://localhost:3000")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestMediaUpload_MimeExtensionMismatch(t *testing.T) {
	svc, _, _, cleanup := newMediaService(t)
	defer cleanup()

	// Extension says PNG but declared content type says PDF.
	file, header := multipartUpload(t, "sneaky.png", model.MimeTypePDF, []byte("%PDF"))

	_, err := svc.Upload(context.Background(), file, header, 1, "http://localhost:3000")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestMediaUpload_TooLarge(t *testing.T) {
	svc, _, _, cleanup := newMediaService(t)
	defer cleanup()

	big := make([]byte, MaxUploadSize+1)
	file, header := multipartUpload(t, "huge.png", model.MimeTypePNG, big)

	_, err := svc.Upload(context.Background(), file, header, 1, "http://localhost:3000")
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("err = %v, want ErrFileTooLarge", err)
	}
}

func TestMediaDelete(t *testing.T) {
	svc, queries, dir, cleanup := newMediaService(t)
	defer cleanup()

	file, header := multipartUpload(t, "gone.png", model.MimeTypePNG, pngData(t, 8, 8))
	asset, err := svc.Upload(context.Background(), file, header, 1, "http://localhost:3000")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := svc.Delete(context.Background(), asset.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := queries.GetMediaByID(context.Background(), asset.ID); err != sql.ErrNoRows {
		t.Errorf("media row still present: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, asset.Filename)); !os.IsNotExist(err) {
		t.Errorf("stored file still present: %v", err)
	}
}

func TestMediaDelete_NotFound(t *testing.T) {
	svc, _, _, cleanup := newMediaService(t)
	defer cleanup()

	if err := svc.Delete(context.Background(), 9999); err != sql.ErrNoRows {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}
