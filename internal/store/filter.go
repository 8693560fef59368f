// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"strings"

	"github.com/menalane/menalane/internal/model"
)

// ContentFilter describes the optional predicates applied to content
// listings. Region and industry values equal to the "general" sentinel
// bypass their filter, matching the public API contract.
type ContentFilter struct {
	Type          string
	Region        string
	Industry      string
	Search        string
	PublishedOnly bool
	Limit         int64
	Offset        int64
}

// whereBuilder accumulates AND-joined predicates and their arguments,
// producing a parameterized WHERE clause. The same builder output is shared
// by the list and count queries so totals always reflect the active filters.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (b *whereBuilder) add(clause string, args ...any) {
	b.clauses = append(b.clauses, clause)
	b.args = append(b.args, args...)
}

// clause returns the assembled WHERE clause, or an empty string when no
// predicates were added.
func (b *whereBuilder) clause() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// build assembles the WHERE clause and arguments for a content filter.
func (f ContentFilter) build() *whereBuilder {
	b := &whereBuilder{}

	if f.PublishedOnly {
		b.add("published_at IS NOT NULL")
	}
	if f.Type != "" {
		b.add("content_type = ?", f.Type)
	}
	if f.Region != "" && f.Region != model.RegionGeneral {
		b.add("region = ?", f.Region)
	}
	if f.Industry != "" && f.Industry != model.IndustryGeneral {
		b.add("industry = ?", f.Industry)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		b.add("(title LIKE ? OR excerpt LIKE ? OR body LIKE ?)", pattern, pattern, pattern)
	}

	return b
}
