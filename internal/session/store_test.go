package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	sess, err := s.Create(ctx, "admin")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.ID == "" || sess.Username != "admin" {
		t.Fatalf("bad session: %+v", sess)
	}

	got, err := s.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "admin" {
		t.Fatalf("got %+v", got)
	}

	if err := s.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, sess.ID); err != ErrSessionNotFound {
		t.Fatalf("deleted session must be gone, got %v", err)
	}
}

func TestMemoryStoreExpiresAfterInactivity(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	now := time.Date(2025, 8, 6, 11, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	sess, err := s.Create(ctx, "admin")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Just inside the window: still valid.
	now = now.Add(time.Hour)
	if _, err := s.Get(ctx, sess.ID); err != nil {
		t.Fatalf("session expired too early: %v", err)
	}

	// One tick past the window: rejected and evicted.
	now = now.Add(time.Second)
	if _, err := s.Get(ctx, sess.ID); err != ErrSessionNotFound {
		t.Fatalf("session must expire after the inactivity window, got %v", err)
	}
}

func TestMemoryStoreTouchSlidesExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	now := time.Date(2025, 8, 6, 11, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	sess, _ := s.Create(ctx, "admin")

	// Activity at +50m pushes the window forward.
	now = now.Add(50 * time.Minute)
	if err := s.Touch(ctx, sess.ID); err != nil {
		t.Fatalf("touch: %v", err)
	}

	// +1h49m from login, but only 59m since last activity.
	now = now.Add(59 * time.Minute)
	if _, err := s.Get(ctx, sess.ID); err != nil {
		t.Fatalf("touched session expired: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := s.Get(ctx, sess.ID); err != ErrSessionNotFound {
		t.Fatalf("idle session must expire, got %v", err)
	}
}

func TestMemoryStoreUnknownID(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	if _, err := s.Get(context.Background(), "nope"); err != ErrSessionNotFound {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}
	if err := s.Touch(context.Background(), "nope"); err != ErrSessionNotFound {
		t.Fatalf("touch unknown: want ErrSessionNotFound, got %v", err)
	}
}
