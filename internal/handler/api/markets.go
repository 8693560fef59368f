// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/menalane/menalane/internal/model"
)

// ListMarketHighlights serves highlights, optionally filtered by region.
func (h *Handler) ListMarketHighlights(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")

	items, err := h.queries.ListMarketHighlights(r.Context(), region)
	if err != nil {
		h.internalError(w, "listing market highlights", err)
		return
	}
	if items == nil {
		items = []model.MarketHighlight{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"highlights": items})
}

// ListJobs serves active job listings, newest first.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListActiveJobs(r.Context())
	if err != nil {
		h.internalError(w, "listing jobs", err)
		return
	}
	if items == nil {
		items = []model.Job{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"jobs": items})
}
