package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mgavilanes/campline-be/internal/models"
	ws "github.com/mgavilanes/campline-be/internal/websocket"
)

type eventPush struct {
	Action  string       `json:"action"`
	Payload models.Event `json:"payload"`
}

func recvPush(t *testing.T, ch chan []byte) eventPush {
	t.Helper()
	select {
	case raw := <-ch:
		var p eventPush
		if err := json.Unmarshal(raw, &p); err != nil {
			t.Fatalf("unmarshal push %q: %v", raw, err)
		}
		return p
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for department push")
		return eventPush{}
	}
}

func TestEventChangesReachDepartmentFeed(t *testing.T) {
	db := testDB(t)
	hub := ws.NewHub()
	go hub.Run()

	departments := NewDepartmentService(db)
	events := NewEventService(db, hub)

	sales, err := departments.CreateDepartment("Sales")
	if err != nil {
		t.Fatalf("CreateDepartment: %v", err)
	}
	client := ws.NewClient(hub, nil, sales.ID)
	hub.Register <- client

	created, err := events.CreateEvent(models.Event{
		Title:        "Kickoff",
		Date:         "2026-09-01",
		Urgency:      models.UrgencyHigh,
		DepartmentID: &sales.ID,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	push := recvPush(t, client.Send)
	if push.Action != "event.created" || push.Payload.ID != created.ID {
		t.Fatalf("push = %+v, want event.created for %s", push, created.ID)
	}

	created.Title = "Kickoff (moved)"
	if _, err := events.UpdateEvent(created.ID, created); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	push = recvPush(t, client.Send)
	if push.Action != "event.updated" || push.Payload.Title != "Kickoff (moved)" {
		t.Fatalf("push = %+v, want event.updated with the new title", push)
	}

	if err := events.DeleteEvent(created.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	push = recvPush(t, client.Send)
	if push.Action != "event.deleted" || push.Payload.ID != created.ID {
		t.Fatalf("push = %+v, want event.deleted for %s", push, created.ID)
	}
}

func TestEventWithoutDepartmentPushesNothing(t *testing.T) {
	db := testDB(t)
	hub := ws.NewHub()
	go hub.Run()

	events := NewEventService(db, hub)
	client := ws.NewClient(hub, nil, "dept-1")
	hub.Register <- client

	if _, err := events.CreateEvent(models.Event{
		Title:   "Unassigned",
		Date:    "2026-09-01",
		Urgency: models.UrgencyLow,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	select {
	case msg := <-client.Send:
		t.Fatalf("received unexpected push %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDeleteEventAbsentIsNoOp(t *testing.T) {
	db := testDB(t)
	events := NewEventService(db, nil)
	if err := events.DeleteEvent("no-such-event"); err != nil {
		t.Fatalf("DeleteEvent of absent ID: %v", err)
	}
}
