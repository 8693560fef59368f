package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/menalane/menalane/internal/auth"
	"github.com/menalane/menalane/internal/store"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "menalane-mw-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

func authStack(db *sql.DB) (http.Handler, *auth.TokenManager) {
	tokens := auth.NewTokenManager(testSecret)
	queries := store.New(db)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := UserFrom(r)
		if u == nil {
			http.Error(w, "no user in context", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	return Authenticate(tokens, queries)(next), tokens
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return body.Message
}

func TestAuthenticate_MissingToken(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	handler, _ := authStack(db)

	req := httptest.NewRequest(http.MethodGet, "/api/cms/stats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Access token required" {
		t.Errorf("message = %q, want %q", msg, "Access token required")
	}
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	handler, _ := authStack(db)

	req := httptest.NewRequest(http.MethodGet, "/api/cms/stats", nil)
	req.Header.Set("Authorization", "Token abcdef")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for non-bearer scheme", rec.Code)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	handler, _ := authStack(db)

	req := httptest.NewRequest(http.MethodGet, "/api/cms/stats", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Invalid or expired token" {
		t.Errorf("message = %q, want %q", msg, "Invalid or expired token")
	}
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	handler, tokens := authStack(db)

	// Token names a user id that does not exist.
	tok, err := tokens.Sign(9999, "ghost@example.com")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/cms/stats", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "User not found" {
		t.Errorf("message = %q, want %q", msg, "User not found")
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	handler, tokens := authStack(db)

	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        "editor@menalane.com",
		PasswordHash: "hash",
		Name:         "Editor",
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	tok, err := tokens.Sign(user.ID, user.Email)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/cms/stats", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
}
