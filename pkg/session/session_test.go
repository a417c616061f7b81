package session

import (
	"context"
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	sess, err := New("alice", "#00ff41", DefaultTTL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sess.ID == "" {
		t.Error("session ID is empty")
	}
	if sess.Name != "alice" || sess.Color != "#00ff41" {
		t.Errorf("identity = %q/%q, want alice/#00ff41", sess.Name, sess.Color)
	}
	if sess.IsExpired() {
		t.Error("fresh session reports expired")
	}
}

func TestGenerateIDUnique(t *testing.T) {
	a, err := GenerateID()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateID()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two generated IDs are equal")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	sess, _ := New("alice", "#00ff41", time.Hour)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Name != "alice" {
		t.Errorf("got = %+v, want alice's session", got)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if got != nil {
		t.Errorf("got = %+v after delete, want nil", got)
	}
}

func TestFileStoreExpiry(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	sess, _ := New("alice", "#00ff41", -time.Minute)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("expired session returned: %+v", got)
	}
}

func TestFileStoreCleanup(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	live, _ := New("live", "#00ff41", time.Hour)
	dead, _ := New("dead", "#ff0000", -time.Minute)
	store.Set(ctx, live)
	store.Set(ctx, dead)

	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	if got, _ := store.Get(ctx, live.ID); got == nil {
		t.Error("cleanup removed a live session")
	}
	if got, _ := store.Get(ctx, dead.ID); got != nil {
		t.Error("cleanup kept an expired session")
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, _ := New("alice", "#00ff41", time.Hour)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Name != "alice" {
		t.Errorf("got = %+v, want alice's session", got)
	}

	// Mutating the returned session must not affect the store.
	got.Name = "mallory"
	again, _ := store.Get(ctx, sess.ID)
	if again.Name != "alice" {
		t.Error("store returned a shared pointer")
	}

	expired, _ := New("old", "#ff0000", -time.Minute)
	store.Set(ctx, expired)
	if got, _ := store.Get(ctx, expired.ID); got != nil {
		t.Errorf("expired session returned: %+v", got)
	}

	store.Cleanup(ctx)
	store.mu.RLock()
	_, stillThere := store.sessions[expired.ID]
	store.mu.RUnlock()
	if stillThere {
		t.Error("cleanup kept an expired session")
	}
}

func TestCLIStoreSingleIdentity(t *testing.T) {
	store, err := NewCLIStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewCLIStore: %v", err)
	}
	ctx := context.Background()

	sess, _ := New("alice", "#00ff41", time.Hour)
	if err := store.SaveSession(ctx, sess); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	got, err := store.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil || got.Name != "alice" {
		t.Errorf("got = %+v, want alice's session", got)
	}

	// A second save replaces the identity rather than adding one.
	next, _ := New("bob", "#ff0000", time.Hour)
	store.SaveSession(ctx, next)
	got, _ = store.GetSession(ctx)
	if got == nil || got.Name != "bob" {
		t.Errorf("got = %+v, want bob's session", got)
	}

	if err := store.DeleteSession(ctx); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	got, _ = store.GetSession(ctx)
	if got != nil {
		t.Errorf("got = %+v after delete, want nil", got)
	}
}

func TestCLIStoreWorksOverAnyBackend(t *testing.T) {
	store := NewCLIStoreWith(NewMemoryStore())
	ctx := context.Background()

	sess, _ := New("alice", "#00ff41", time.Hour)
	if err := store.SaveSession(ctx, sess); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	got, err := store.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil || got.Name != "alice" {
		t.Errorf("got = %+v, want alice's session", got)
	}

	next, _ := New("bob", "#ff0000", time.Hour)
	store.SaveSession(ctx, next)
	got, _ = store.GetSession(ctx)
	if got == nil || got.Name != "bob" {
		t.Errorf("got = %+v, want bob's session", got)
	}
}
