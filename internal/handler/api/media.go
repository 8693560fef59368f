// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/menalane/menalane/internal/middleware"
	"github.com/menalane/menalane/internal/model"
	"github.com/menalane/menalane/internal/service"
)

// UploadMedia accepts a multipart upload in the "file" field.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r)
	if user == nil {
		WriteError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	// Cap the parse buffer; the service enforces the per-file limit.
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+1024*1024)

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	asset, err := h.media.Upload(r.Context(), file, header, user.ID, baseURL(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			WriteError(w, http.StatusBadRequest, "File too large (max 10MB)")
		case errors.Is(err, service.ErrUnsupportedType):
			WriteError(w, http.StatusBadRequest, "Unsupported file type")
		default:
			h.internalError(w, "uploading media", err)
		}
		return
	}

	_ = h.events.LogMedia(r.Context(), model.EventLevelInfo, "media uploaded",
		&user.ID, map[string]any{"filename": asset.Filename, "size": asset.FileSize})

	WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "File uploaded successfully",
		"media":   asset,
	})
}

// ListMedia serves all media rows, newest first.
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)

	items, err := h.queries.ListMedia(r.Context(), limit, offset)
	if err != nil {
		h.internalError(w, "listing media", err)
		return
	}
	if items == nil {
		items = []model.MediaAsset{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"media": items})
}

// DeleteMedia removes a media row and its file.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid media ID")
		return
	}

	if err := h.media.Delete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Media not found")
			return
		}
		h.internalError(w, "deleting media", err)
		return
	}

	var userID *int64
	if u := middleware.UserFrom(r); u != nil {
		userID = &u.ID
	}
	_ = h.events.LogMedia(r.Context(), model.EventLevelInfo, "media deleted",
		userID, map[string]any{"id": id})

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Media deleted successfully"})
}
