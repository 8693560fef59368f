package service

import (
	"context"
	"strings"
	"testing"

	"github.com/menalane/menalane/internal/model"
	"github.com/menalane/menalane/internal/store"
	"github.com/menalane/menalane/internal/testutil"
)

func TestEventService_LogEvent(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	queries := store.New(db)
	svc := NewEventService(queries)

	userID := int64(7)
	err := svc.LogAuth(context.Background(), model.EventLevelInfo, "user logged in",
		&userID, map[string]any{"email": "editor@menalane.com"})
	if err != nil {
		t.Fatalf("LogAuth: %v", err)
	}

	events, err := queries.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}

	e := events[0]
	if e.Category != model.EventCategoryAuth {
		t.Errorf("Category = %q, want %q", e.Category, model.EventCategoryAuth)
	}
	if e.Message != "user logged in" {
		t.Errorf("Message = %q, want %q", e.Message, "user logged in")
	}
	if !e.UserID.Valid || e.UserID.Int64 != 7 {
		t.Errorf("UserID = %+v, want 7", e.UserID)
	}
	if !strings.Contains(e.Metadata, "editor@menalane.com") {
		t.Errorf("Metadata = %q, missing email attribute", e.Metadata)
	}
}

func TestEventService_NilMetadata(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	queries := store.New(db)
	svc := NewEventService(queries)

	if err := svc.LogIntake(context.Background(), model.EventLevelInfo, "newsletter signup", nil); err != nil {
		t.Fatalf("LogIntake: %v", err)
	}

	events, err := queries.ListRecentEvents(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].Metadata != "{}" {
		t.Errorf("Metadata = %q, want empty object", events[0].Metadata)
	}
	if events[0].UserID.Valid {
		t.Error("UserID should be null for intake events")
	}
}
