// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Market highlight trends
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// MarketHighlight is a single metric shown on the markets pages,
// ordered by DisplayOrder ascending.
type MarketHighlight struct {
	ID           int64  `json:"id"`
	Region       string `json:"region"`
	MetricName   string `json:"metric_name"`
	MetricValue  string `json:"metric_value"`
	Trend        string `json:"trend"`
	Description  string `json:"description"`
	DisplayOrder int64  `json:"display_order"`
}

// Job represents a careers listing. Only active rows are exposed publicly.
type Job struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
