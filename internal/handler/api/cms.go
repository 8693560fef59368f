// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/menalane/menalane/internal/middleware"
	"github.com/menalane/menalane/internal/model"
	"github.com/menalane/menalane/internal/store"
	"github.com/menalane/menalane/internal/util"
)

// cmsContentRequest carries create and update payloads. Pointer fields
// distinguish "absent" from "set to zero value" on partial updates.
// PublishedAt stays raw because null and absent mean different things:
// null unpublishes, absent keeps the stored value.
type cmsContentRequest struct {
	Title         *string         `json:"title"`
	Slug          *string         `json:"slug"`
	Excerpt       *string         `json:"excerpt"`
	Body          *string         `json:"content"`
	Author        *string         `json:"author"`
	FeaturedImage *string         `json:"featured_image"`
	ContentType   *string         `json:"content_type"`
	Region        *string         `json:"region"`
	Industry      *string         `json:"industry"`
	IsFeatured    *bool           `json:"is_featured"`
	Published     *bool           `json:"published"`
	PublishedAt   json.RawMessage `json:"published_at"`
}

// parsePublishedAt decodes the tri-state published_at field. Returns the
// timestamp (nil for explicit null) and whether the field was present.
func parsePublishedAt(raw json.RawMessage) (*time.Time, bool, error) {
	if len(raw) == 0 {
		return nil, false, nil
	}
	if string(raw) == "null" {
		return nil, true, nil
	}
	var ts time.Time
	if err := json.Unmarshal(raw, &ts); err != nil {
		return nil, false, err
	}
	return &ts, true, nil
}

// validateEnums checks the closed enumerations, writing the 400 on failure.
func validateEnums(w http.ResponseWriter, contentType, region, industry string) bool {
	if !model.IsValidContentType(contentType) {
		WriteError(w, http.StatusBadRequest, "Invalid content type")
		return false
	}
	if !model.IsValidRegion(region) {
		WriteError(w, http.StatusBadRequest, "Invalid region")
		return false
	}
	if !model.IsValidIndustry(industry) {
		WriteError(w, http.StatusBadRequest, "Invalid industry")
		return false
	}
	return true
}

// CMSListContent lists all rows including drafts, ordered by last update.
func (h *Handler) CMSListContent(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)
	q := r.URL.Query()
	filter := store.ContentFilter{
		Type:     q.Get("type"),
		Region:   q.Get("region"),
		Industry: q.Get("industry"),
		Search:   q.Get("search"),
		Limit:    limit,
		Offset:   offset,
	}

	items, err := h.queries.ListContent(r.Context(), filter)
	if err != nil {
		h.internalError(w, "listing cms content", err)
		return
	}
	total, err := h.queries.CountContent(r.Context(), filter)
	if err != nil {
		h.internalError(w, "counting cms content", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"content": nonNilContent(items),
		"total":   total,
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})
}

// CMSGetContent fetches any row by id, draft or published.
func (h *Handler) CMSGetContent(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid content ID")
		return
	}

	content, err := h.queries.GetContentByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Content not found")
			return
		}
		h.internalError(w, "loading cms content", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"content": content})
}

// CMSCreateContent creates a row. The slug derives from the title when not
// supplied; publishing is controlled by the `published` flag.
func (h *Handler) CMSCreateContent(w http.ResponseWriter, r *http.Request) {
	var req cmsContentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	title := strings.TrimSpace(strValue(req.Title))
	body := strValue(req.Body)
	if title == "" || body == "" {
		WriteError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	contentType := defaultString(req.ContentType, model.ContentTypeArticle)
	region := defaultString(req.Region, model.RegionGeneral)
	industry := defaultString(req.Industry, model.IndustryGeneral)
	if !validateEnums(w, contentType, region, industry) {
		return
	}

	slug := strings.TrimSpace(strValue(req.Slug))
	if slug == "" {
		slug = util.Slugify(title)
	}
	if !util.IsValidSlug(slug) {
		WriteError(w, http.StatusBadRequest, "Invalid slug")
		return
	}

	exists, err := h.queries.SlugExists(r.Context(), slug)
	if err != nil {
		h.internalError(w, "checking slug", err)
		return
	}
	if exists {
		WriteError(w, http.StatusBadRequest, "Content with this slug already exists")
		return
	}

	now := time.Now()
	publishedAt, set, err := parsePublishedAt(req.PublishedAt)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid published_at")
		return
	}
	if !set && req.Published != nil && *req.Published {
		publishedAt = &now
	}

	created, err := h.queries.CreateContent(r.Context(), store.CreateContentParams{
		Title:         title,
		Slug:          slug,
		Excerpt:       strValue(req.Excerpt),
		Body:          body,
		Author:        strValue(req.Author),
		FeaturedImage: strValue(req.FeaturedImage),
		ContentType:   contentType,
		Region:        region,
		Industry:      industry,
		IsFeatured:    req.IsFeatured != nil && *req.IsFeatured,
		PublishedAt:   publishedAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteError(w, http.StatusBadRequest, "Content with this slug already exists")
			return
		}
		h.internalError(w, "creating content", err)
		return
	}

	h.logContentEvent(r, "content created", created)

	WriteJSON(w, http.StatusCreated, map[string]any{"content": created})
}

// CMSUpdateContent applies a partial update. Omitted fields keep their stored
// values; `published: false` unpublishes.
func (h *Handler) CMSUpdateContent(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid content ID")
		return
	}

	existing, err := h.queries.GetContentByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Content not found")
			return
		}
		h.internalError(w, "loading cms content", err)
		return
	}

	var req cmsContentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p := store.UpdateContentParams{
		ID:            existing.ID,
		Title:         existing.Title,
		Slug:          existing.Slug,
		Excerpt:       existing.Excerpt,
		Body:          existing.Body,
		Author:        existing.Author,
		FeaturedImage: existing.FeaturedImage,
		ContentType:   existing.ContentType,
		Region:        existing.Region,
		Industry:      existing.Industry,
		IsFeatured:    existing.IsFeatured,
		PublishedAt:   existing.PublishedAt,
		UpdatedAt:     time.Now(),
	}

	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
		if p.Title == "" {
			WriteError(w, http.StatusBadRequest, "Title and content are required")
			return
		}
	}
	if req.Body != nil {
		if *req.Body == "" {
			WriteError(w, http.StatusBadRequest, "Title and content are required")
			return
		}
		p.Body = *req.Body
	}
	if req.Excerpt != nil {
		p.Excerpt = *req.Excerpt
	}
	if req.Author != nil {
		p.Author = *req.Author
	}
	if req.FeaturedImage != nil {
		p.FeaturedImage = *req.FeaturedImage
	}
	if req.ContentType != nil {
		p.ContentType = *req.ContentType
	}
	if req.Region != nil {
		p.Region = *req.Region
	}
	if req.Industry != nil {
		p.Industry = *req.Industry
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
	if !validateEnums(w, p.ContentType, p.Region, p.Industry) {
		return
	}

	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		p.Slug = strings.TrimSpace(*req.Slug)
	}
	if !util.IsValidSlug(p.Slug) {
		WriteError(w, http.StatusBadRequest, "Invalid slug")
		return
	}
	if p.Slug != existing.Slug {
		exists, err := h.queries.SlugExistsExcluding(r.Context(), p.Slug, existing.ID)
		if err != nil {
			h.internalError(w, "checking slug", err)
			return
		}
		if exists {
			WriteError(w, http.StatusBadRequest, "Content with this slug already exists")
			return
		}
	}

	publishedAt, set, err := parsePublishedAt(req.PublishedAt)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid published_at")
		return
	}
	switch {
	case set:
		p.PublishedAt = publishedAt
	case req.Published != nil && *req.Published:
		if existing.PublishedAt == nil {
			now := time.Now()
			p.PublishedAt = &now
		}
	case req.Published != nil:
		p.PublishedAt = nil
	}

	updated, err := h.queries.UpdateContent(r.Context(), p)
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteError(w, http.StatusBadRequest, "Content with this slug already exists")
			return
		}
		h.internalError(w, "updating content", err)
		return
	}

	h.logContentEvent(r, "content updated", updated)

	WriteJSON(w, http.StatusOK, map[string]any{"content": updated})
}

// CMSDeleteContent hard-deletes a row.
func (h *Handler) CMSDeleteContent(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid content ID")
		return
	}

	existing, err := h.queries.GetContentByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Content not found")
			return
		}
		h.internalError(w, "loading cms content", err)
		return
	}

	if err := h.queries.DeleteContent(r.Context(), id); err != nil {
		h.internalError(w, "deleting content", err)
		return
	}

	h.logContentEvent(r, "content deleted", existing)

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Content deleted successfully"})
}

// CMSStats serves the dashboard aggregates.
func (h *Handler) CMSStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.GetContentStats(r.Context())
	if err != nil {
		h.internalError(w, "loading content stats", err)
		return
	}
	mediaCount, err := h.queries.CountMedia(r.Context())
	if err != nil {
		h.internalError(w, "counting media", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"stats": map[string]int64{
			"totalContent":     stats.Total,
			"publishedContent": stats.Published,
			"draftContent":     stats.Drafts,
			"totalMedia":       mediaCount,
		},
	})
}

func (h *Handler) logContentEvent(r *http.Request, message string, c model.Content) {
	var userID *int64
	if u := middleware.UserFrom(r); u != nil {
		userID = &u.ID
	}
	_ = h.events.LogContent(r.Context(), model.EventLevelInfo, message, userID,
		map[string]any{"id": c.ID, "slug": c.Slug})
}

func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func defaultString(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}
