package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/mgavilanes/campline-be/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s := miniredis.RunT(t)
	store, err := New("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("failed to create session store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLookup(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := models.User{ID: "user-123", Name: "Ana Ruiz"}
	if err := store.Save(ctx, "token-hash", user, time.Now().Add(24*time.Hour)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Lookup(ctx, "token-hash")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if got.ID != user.ID || got.Name != user.Name {
		t.Fatalf("Lookup = %+v, want %+v", got, user)
	}
}

func TestLookupExpired(t *testing.T) {
	s := miniredis.RunT(t)
	store, err := New("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("failed to create session store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	user := models.User{ID: "user-456"}
	if err := store.Save(ctx, "expiring", user, time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s.FastForward(2 * time.Minute)

	if _, err := store.Lookup(ctx, "expiring"); err == nil {
		t.Error("expected error for expired session, got nil")
	}
}

func TestLookupNonExistent(t *testing.T) {
	store := setupTestStore(t)
	if _, err := store.Lookup(context.Background(), "nope"); err == nil {
		t.Error("expected error for non-existent session, got nil")
	}
}

func TestRevoke(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := models.User{ID: "user-789"}
	if err := store.Save(ctx, "to-revoke", user, time.Now().Add(24*time.Hour)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Revoke(ctx, "to-revoke"); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, err := store.Lookup(ctx, "to-revoke"); err == nil {
		t.Error("expected error after revoke, got nil")
	}

	// Revoking an absent token is not an error.
	if err := store.Revoke(ctx, "never-existed"); err != nil {
		t.Errorf("Revoke of absent token failed: %v", err)
	}
}

func TestSessionIsolation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	expires := time.Now().Add(24 * time.Hour)

	if err := store.Save(ctx, "token-1", models.User{ID: "user-1"}, expires); err != nil {
		t.Fatalf("Save token-1 failed: %v", err)
	}
	if err := store.Save(ctx, "token-2", models.User{ID: "user-2"}, expires); err != nil {
		t.Fatalf("Save token-2 failed: %v", err)
	}

	if err := store.Revoke(ctx, "token-1"); err != nil {
		t.Fatalf("Revoke token-1 failed: %v", err)
	}
	if _, err := store.Lookup(ctx, "token-1"); err == nil {
		t.Error("token-1 should be gone after revoke")
	}
	got, err := store.Lookup(ctx, "token-2")
	if err != nil {
		t.Fatalf("token-2 lookup failed: %v", err)
	}
	if got.ID != "user-2" {
		t.Errorf("token-2 resolved to %q, want user-2", got.ID)
	}
}
