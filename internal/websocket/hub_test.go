package websocket

import (
	"testing"
	"time"
)

func recvMessage(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestBroadcastToReachesOnlySubscribers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	global := NewClient(hub, nil, "")
	scoped := NewClient(hub, nil, "dept-1")
	other := NewClient(hub, nil, "dept-2")
	hub.Register <- global
	hub.Register <- scoped
	hub.Register <- other

	hub.BroadcastTo("dept-1", []byte("dept message"))

	if got := recvMessage(t, scoped.Send); string(got) != "dept message" {
		t.Fatalf("subscriber received %q, want the department message", got)
	}
	for name, c := range map[string]*Client{"global": global, "other department": other} {
		select {
		case msg := <-c.Send:
			t.Fatalf("%s client received department message %q", name, msg)
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	global := NewClient(hub, nil, "")
	scoped := NewClient(hub, nil, "dept-1")
	hub.Register <- global
	hub.Register <- scoped

	hub.Broadcast <- []byte("for everyone")

	if got := recvMessage(t, global.Send); string(got) != "for everyone" {
		t.Fatalf("global client received %q", got)
	}
	if got := recvMessage(t, scoped.Send); string(got) != "for everyone" {
		t.Fatalf("scoped client received %q", got)
	}
}

func TestUnregisterLeavesDepartmentFeed(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	scoped := NewClient(hub, nil, "dept-1")
	stayer := NewClient(hub, nil, "dept-1")
	hub.Register <- scoped
	hub.Register <- stayer
	hub.Unregister <- scoped

	hub.BroadcastTo("dept-1", []byte("after leave"))

	if got := recvMessage(t, stayer.Send); string(got) != "after leave" {
		t.Fatalf("remaining subscriber received %q", got)
	}
	// The unregistered client's channel is closed without the message.
	if msg, ok := <-scoped.Send; ok {
		t.Fatalf("unregistered client received %q", msg)
	}
}
