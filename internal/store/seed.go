// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/menalane/menalane/internal/auth"
	"github.com/menalane/menalane/internal/model"
)

// SeedAdmin creates the initial admin account when the users table is empty.
// Returns true if the account was created.
func (q *Queries) SeedAdmin(ctx context.Context, email, password, name string) (bool, error) {
	n, err := q.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("counting users: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hashing admin password: %w", err)
	}

	if _, err := q.CreateUser(ctx, CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    time.Now(),
	}); err != nil {
		return false, fmt.Errorf("creating admin user: %w", err)
	}
	return true, nil
}

// SeedSampleData loads demo market highlights and job listings when their
// tables are empty. Content is left to the CMS.
func (q *Queries) SeedSampleData(ctx context.Context) error {
	n, err := q.CountMarketHighlights(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		highlights := []CreateMarketHighlightParams{
			{Region: model.RegionGCC, MetricName: "Tadawul All Share", MetricValue: "11,842.6", Trend: model.TrendUp, Description: "Saudi equities extend gains on banking sector strength", DisplayOrder: 1},
			{Region: model.RegionGCC, MetricName: "Brent Crude", MetricValue: "$84.20", Trend: model.TrendFlat, Description: "Oil holds range amid OPEC+ supply discipline", DisplayOrder: 2},
			{Region: model.RegionNorthAfrica, MetricName: "EGX 30", MetricValue: "29,115.4", Trend: model.TrendUp, Description: "Cairo index rallies on FDI inflow announcements", DisplayOrder: 3},
			{Region: model.RegionLevant, MetricName: "ASE Index", MetricValue: "2,461.8", Trend: model.TrendDown, Description: "Amman bourse softens on thin summer volumes", DisplayOrder: 4},
		}
		for _, h := range highlights {
			if err := q.CreateMarketHighlight(ctx, h); err != nil {
				return fmt.Errorf("seeding market highlights: %w", err)
			}
		}
	}

	n, err = q.CountJobs(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		now := time.Now()
		jobs := []CreateJobParams{
			{Title: "Senior Research Analyst, GCC Markets", Location: "Dubai, UAE", Description: "Lead coverage of GCC equity and fixed income markets.", Requirements: "5+ years sell-side or buy-side research experience; Arabic a plus.", IsActive: true, CreatedAt: now},
			{Title: "Data Engineer", Location: "Remote (MENA time zones)", Description: "Build and maintain the market data ingestion pipelines.", Requirements: "Strong SQL and Go or Python; experience with financial data feeds.", IsActive: true, CreatedAt: now},
		}
		for _, j := range jobs {
			if err := q.CreateJob(ctx, j); err != nil {
				return fmt.Errorf("seeding jobs: %w", err)
			}
		}
	}

	return nil
}
