// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/menalane/menalane/internal/model"
	"github.com/menalane/menalane/internal/service"
	"github.com/menalane/menalane/internal/store"
)

const (
	featuredLimit = 4
	relatedLimit  = 4
)

// contentDetail is the single-item projection, adding the rendered body.
type contentDetail struct {
	model.Content
	BodyHTML string `json:"body_html"`
}

// nonNilContent guarantees an empty JSON array rather than null.
func nonNilContent(items []model.Content) []model.Content {
	if items == nil {
		return []model.Content{}
	}
	return items
}

// publicFilter builds the published-only content filter from query params.
func publicFilter(r *http.Request) store.ContentFilter {
	limit, offset := parseLimitOffset(r)
	q := r.URL.Query()
	return store.ContentFilter{
		Type:          q.Get("type"),
		Region:        q.Get("region"),
		Industry:      q.Get("industry"),
		Search:        q.Get("search"),
		PublishedOnly: true,
		Limit:         limit,
		Offset:        offset,
	}
}

// ListContent serves the public published listing with filters and paging.
// The total reflects the filtered subset, so pagination stays consistent with
// the page contents.
func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	filter := publicFilter(r)

	items, err := h.queries.ListContent(r.Context(), filter)
	if err != nil {
		h.internalError(w, "listing content", err)
		return
	}
	total, err := h.queries.CountContent(r.Context(), filter)
	if err != nil {
		h.internalError(w, "counting content", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"content": nonNilContent(items),
		"total":   total,
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})
}

// FeaturedContent serves the newest published rows flagged as featured.
func (h *Handler) FeaturedContent(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListFeatured(r.Context(), featuredLimit)
	if err != nil {
		h.internalError(w, "listing featured content", err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"content": nonNilContent(items)})
}

// GetContentBySlug serves a single published item with its rendered body and
// related rows. Each request counts one view.
func (h *Handler) GetContentBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	content, err := h.queries.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Content not found")
			return
		}
		h.internalError(w, "loading content", err)
		return
	}

	if err := h.queries.IncrementViews(r.Context(), slug); err != nil {
		h.logger.Warn("incrementing views failed", "slug", slug, "error", err.Error())
	} else {
		content.Views++
	}

	bodyHTML, err := service.RenderBodyHTML(content.Body)
	if err != nil {
		h.internalError(w, "rendering content body", err)
		return
	}

	related, err := h.queries.ListRelated(r.Context(), slug, content.Region, content.Industry, relatedLimit)
	if err != nil {
		h.internalError(w, "listing related content", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"content": contentDetail{Content: content, BodyHTML: bodyHTML},
		"related": nonNilContent(related),
	})
}
