// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Content types
const (
	ContentTypeArticle    = "article"
	ContentTypeReport     = "report"
	ContentTypeCommentary = "commentary"
)

// Regions. RegionGeneral doubles as the filter-bypass sentinel: listing
// with region=general behaves the same as omitting the filter.
const (
	RegionGCC         = "gcc"
	RegionNorthAfrica = "north_africa"
	RegionLevant      = "levant"
	RegionGeneral     = "general"
)

// Industries. IndustryGeneral is the filter-bypass sentinel.
const (
	IndustryEnergy         = "energy"
	IndustryFinance        = "finance"
	IndustryInfrastructure = "infrastructure"
	IndustryTechnology     = "technology"
	IndustryRealEstate     = "real_estate"
	IndustryGeneral        = "general"
)

// Content represents a publishable unit: an article, report, or commentary
// tagged with a region and an industry.
type Content struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Body          string     `json:"content"`
	Author        string     `json:"author"`
	FeaturedImage string     `json:"featured_image"`
	ContentType   string     `json:"content_type"`
	Region        string     `json:"region"`
	Industry      string     `json:"industry"`
	IsFeatured    bool       `json:"is_featured"`
	Views         int64      `json:"views"`
	PublishedAt   *time.Time `json:"published_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsPublished returns true if the content is visible on the public site.
// Publish state is solely determined by published_at being non-null.
func (c *Content) IsPublished() bool {
	return c.PublishedAt != nil
}

// IsDraft returns true if the content has not been published.
func (c *Content) IsDraft() bool {
	return c.PublishedAt == nil
}

// IsValidContentType checks a value against the closed content type enumeration.
func IsValidContentType(t string) bool {
	switch t {
	case ContentTypeArticle, ContentTypeReport, ContentTypeCommentary:
		return true
	default:
		return false
	}
}

// IsValidRegion checks a value against the closed region enumeration.
func IsValidRegion(r string) bool {
	switch r {
	case RegionGCC, RegionNorthAfrica, RegionLevant, RegionGeneral:
		return true
	default:
		return false
	}
}

// IsValidIndustry checks a value against the closed industry enumeration.
func IsValidIndustry(i string) bool {
	switch i {
	case IndustryEnergy, IndustryFinance, IndustryInfrastructure,
		IndustryTechnology, IndustryRealEstate, IndustryGeneral:
		return true
	default:
		return false
	}
}
