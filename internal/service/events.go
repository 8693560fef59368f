// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/menalane/menalane/internal/model"
	"github.com/menalane/menalane/internal/store"
	"github.com/menalane/menalane/internal/util"
)

// EventService writes audit entries to the event log. Failures are returned
// but callers generally treat them as non-fatal.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(queries *store.Queries) *EventService {
	return &EventService{queries: queries}
}

// LogEvent creates a new event log entry.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, userID *int64, metadata map[string]any) error {
	metadataJSON := "{}"
	if metadata != nil {
		if jsonBytes, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	return s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    util.NullInt64FromPtr(userID),
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
	})
}

// LogAuth logs an authentication-related event.
func (s *EventService) LogAuth(ctx context.Context, level, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryAuth, message, userID, metadata)
}

// LogContent logs a content-related event.
func (s *EventService) LogContent(ctx context.Context, level, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryContent, message, userID, metadata)
}

// LogMedia logs a media-related event.
func (s *EventService) LogMedia(ctx context.Context, level, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryMedia, message, userID, metadata)
}

// LogIntake logs a contact or newsletter event.
func (s *EventService) LogIntake(ctx context.Context, level, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryIntake, message, nil, metadata)
}
