package models

import (
	"testing"
	"time"
)

func TestIsUnreadFor(t *testing.T) {
	now := time.Date(2026, 8, 27, 15, 0, 0, 0, time.Local)

	cases := []struct {
		name     string
		created  time.Time
		readBy   []string
		viewerID string
		want     bool
	}{
		{name: "same day unacknowledged", created: now.Add(-2 * time.Hour), viewerID: "u1", want: true},
		{name: "same day acknowledged", created: now.Add(-2 * time.Hour), readBy: []string{"u1"}, viewerID: "u1", want: false},
		{name: "acknowledged by someone else", created: now.Add(-2 * time.Hour), readBy: []string{"u2"}, viewerID: "u1", want: true},
		{name: "yesterday regardless of acks", created: now.AddDate(0, 0, -1), viewerID: "u1", want: false},
		{name: "late yesterday is still yesterday", created: time.Date(2026, 8, 26, 23, 59, 0, 0, time.Local), viewerID: "u1", want: false},
		{name: "early today counts", created: time.Date(2026, 8, 27, 0, 1, 0, 0, time.Local), viewerID: "u1", want: true},
		{name: "empty viewer never unread", created: now.Add(-2 * time.Hour), viewerID: "", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Announcement{ID: "a1", Title: "t", CreatedAt: tc.created, ReadBy: tc.readBy}
			if got := a.IsUnreadFor(tc.viewerID, now); got != tc.want {
				t.Fatalf("IsUnreadFor(%q) = %v, want %v", tc.viewerID, got, tc.want)
			}
		})
	}
}

func TestMarkReadIdempotent(t *testing.T) {
	now := time.Now()
	a := Announcement{ID: "a1", CreatedAt: now}

	a.MarkRead("u1")
	a.MarkRead("u1")
	a.MarkRead("u1")

	count := 0
	for _, id := range a.ReadBy {
		if id == "u1" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one entry for u1, got %d (%v)", count, a.ReadBy)
	}
	if a.IsUnreadFor("u1", now) {
		t.Fatal("announcement still unread after acknowledgment")
	}
}

func TestMarkReadEmptyViewer(t *testing.T) {
	a := Announcement{ID: "a1"}
	a.MarkRead("")
	if len(a.ReadBy) != 0 {
		t.Fatalf("empty viewer must not be recorded, got %v", a.ReadBy)
	}
}
