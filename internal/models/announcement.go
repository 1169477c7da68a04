package models

import "time"

// Announcement is a broadcast message shown to every signed-in
// viewer. ReadBy is the grow-only set of viewer IDs that have
// acknowledged it; an ID once present is never removed.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	ReadBy    []string  `json:"readBy"`
}

// IsUnreadFor reports whether the announcement counts as new for the
// viewer at the given time. An announcement is new only on the local
// calendar day it was posted, and only until the viewer acknowledges
// it. An empty viewer ID never sees anything as new.
func (a Announcement) IsUnreadFor(viewerID string, now time.Time) bool {
	if viewerID == "" {
		return false
	}
	cy, cm, cd := a.CreatedAt.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	if cy != ny || cm != nm || cd != nd {
		return false
	}
	for _, id := range a.ReadBy {
		if id == viewerID {
			return false
		}
	}
	return true
}

// MarkRead adds the viewer to the acknowledgment set. Marking an
// already-acknowledged viewer or an empty viewer ID is a no-op.
func (a *Announcement) MarkRead(viewerID string) {
	if viewerID == "" {
		return
	}
	for _, id := range a.ReadBy {
		if id == viewerID {
			return
		}
	}
	a.ReadBy = append(a.ReadBy, viewerID)
}
