// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menalane/menalane/internal/model"
	"github.com/menalane/menalane/internal/store"
)

func TestListMarketHighlights(t *testing.T) {
	db, h := testSetup(t)
	queries := store.New(db)
	ctx := context.Background()

	require.NoError(t, queries.CreateMarketHighlight(ctx, store.CreateMarketHighlightParams{
		Region: model.RegionGCC, MetricName: "Tadawul All Share", MetricValue: "12,104",
		Trend: "up", DisplayOrder: 2,
	}))
	require.NoError(t, queries.CreateMarketHighlight(ctx, store.CreateMarketHighlightParams{
		Region: model.RegionNorthAfrica, MetricName: "EGX 30", MetricValue: "31,567",
		Trend: "down", DisplayOrder: 1,
	}))

	w := executeHandler(t, h.ListMarketHighlights, newGetRequest(t, "/api/market-highlights", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	highlights, ok := body["highlights"].([]any)
	require.True(t, ok)
	require.Len(t, highlights, 2)
	// Ordered by display_order, not insertion order.
	first := highlights[0].(map[string]any)
	assert.Equal(t, "EGX 30", first["metric_name"])
}

func TestListMarketHighlights_RegionFilter(t *testing.T) {
	db, h := testSetup(t)
	queries := store.New(db)
	ctx := context.Background()

	require.NoError(t, queries.CreateMarketHighlight(ctx, store.CreateMarketHighlightParams{
		Region: model.RegionGCC, MetricName: "Tadawul All Share", MetricValue: "12,104", Trend: "up",
	}))
	require.NoError(t, queries.CreateMarketHighlight(ctx, store.CreateMarketHighlightParams{
		Region: model.RegionLevant, MetricName: "ASE Index", MetricValue: "2,450", Trend: "flat",
	}))

	filtered := executeHandler(t, h.ListMarketHighlights,
		newGetRequest(t, "/api/market-highlights?region=gcc", nil))
	require.Equal(t, http.StatusOK, filtered.Code)
	assert.Len(t, decodeBody(t, filtered)["highlights"], 1)

	// Highlights filter exactly on any region value, so "general" matches
	// only rows stored under that region.
	general := executeHandler(t, h.ListMarketHighlights,
		newGetRequest(t, "/api/market-highlights?region=general", nil))
	require.Equal(t, http.StatusOK, general.Code)
	assert.Len(t, decodeBody(t, general)["highlights"], 0)
}

func TestListMarketHighlights_Empty(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.ListMarketHighlights, newGetRequest(t, "/api/market-highlights", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"highlights":[]`)
}

func TestListJobs_ActiveOnly(t *testing.T) {
	db, h := testSetup(t)
	queries := store.New(db)
	ctx := context.Background()

	require.NoError(t, queries.CreateJob(ctx, store.CreateJobParams{
		Title: "Senior Economist", Location: "Dubai, UAE", IsActive: true, CreatedAt: time.Now(),
	}))
	require.NoError(t, queries.CreateJob(ctx, store.CreateJobParams{
		Title: "Filled Role", Location: "Riyadh, KSA", IsActive: false, CreatedAt: time.Now(),
	}))

	w := executeHandler(t, h.ListJobs, newGetRequest(t, "/api/jobs", nil))

	require.Equal(t, http.StatusOK, w.Code)
	jobs, ok := decodeBody(t, w)["jobs"].([]any)
	require.True(t, ok)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Senior Economist", jobs[0].(map[string]any)["title"])
}

func TestListJobs_Empty(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.ListJobs, newGetRequest(t, "/api/jobs", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"jobs":[]`)
}
