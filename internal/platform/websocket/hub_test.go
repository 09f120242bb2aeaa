package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestClient(hub *Hub, id string, topics ...string) *Client {
	return &Client{
		ID:     id,
		Topics: topics,
		Send:   make(chan []byte, 256),
		hub:    hub,
	}
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "c-1", UserTopic("user-1"))

	hub.Register(client)
	if hub.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ClientCount())
	}
	if hub.TopicCount(UserTopic("user-1")) != 1 {
		t.Fatalf("expected 1 subscriber on user topic, got %d", hub.TopicCount(UserTopic("user-1")))
	}

	hub.Unregister(client)
	if hub.ClientCount() != 0 {
		t.Fatalf("expected 0 clients, got %d", hub.ClientCount())
	}
	if _, ok := <-client.Send; ok {
		t.Fatal("expected Send channel to be closed after unregister")
	}
}

func TestHub_BroadcastReachesOnlySubscribers(t *testing.T) {
	hub := NewHub()
	staff := newTestClient(hub, "staff", BroadcastTopic)
	caregiver := newTestClient(hub, "caregiver", UserTopic("user-9"))
	hub.Register(staff)
	hub.Register(caregiver)

	event := Event{
		Type:      "notification.created",
		Topic:     BroadcastTopic,
		Timestamp: time.Now(),
		Data:      json.RawMessage(`{"title":"Vital Signs Alert"}`),
	}
	hub.Broadcast(BroadcastTopic, event)

	select {
	case msg := <-staff.Send:
		var got Event
		if err := json.Unmarshal(msg, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Type != "notification.created" {
			t.Fatalf("expected notification.created, got %s", got.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("staff client did not receive broadcast")
	}

	select {
	case <-caregiver.Send:
		t.Fatal("caregiver should not receive staff broadcast")
	default:
	}
}

func TestHub_PublishTargetedEvent(t *testing.T) {
	hub := NewHub()
	target := newTestClient(hub, "target", UserTopic("user-7"))
	other := newTestClient(hub, "other", UserTopic("user-8"))
	hub.Register(target)
	hub.Register(other)

	var publisher EventPublisher = hub
	event := Event{
		Type:      "notification.created",
		Topic:     UserTopic("user-7"),
		Timestamp: time.Now(),
	}
	if err := publisher.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case <-target.Send:
	case <-time.After(time.Second):
		t.Fatal("target did not receive event")
	}

	select {
	case <-other.Send:
		t.Fatal("other user received a targeted event")
	default:
	}
}

func TestHub_SubscribeUnsubscribe(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "dyn")
	hub.Register(client)

	hub.ProcessMessage(client, ClientMessage{Action: "subscribe", Topics: []string{BroadcastTopic}})
	if hub.TopicCount(BroadcastTopic) != 1 {
		t.Fatalf("expected 1 subscriber, got %d", hub.TopicCount(BroadcastTopic))
	}

	hub.ProcessMessage(client, ClientMessage{Action: "unsubscribe", Topics: []string{BroadcastTopic}})
	if hub.TopicCount(BroadcastTopic) != 0 {
		t.Fatalf("expected 0 subscribers, got %d", hub.TopicCount(BroadcastTopic))
	}
	if len(client.Topics) != 0 {
		t.Fatalf("expected no topics on client, got %v", client.Topics)
	}
}

func TestHub_BroadcastToEmptyTopic(t *testing.T) {
	hub := NewHub()
	// Should not panic.
	hub.Broadcast("nobody-here", Event{Type: "notification.created", Topic: "nobody-here", Timestamp: time.Now()})
}

func TestHandler_RegisterRoutes(t *testing.T) {
	hub := NewHub()
	handler := NewHandler(hub)

	e := echo.New()
	handler.RegisterRoutes(e.Group(""))

	found := false
	for _, r := range e.Routes() {
		if r.Path == "/ws" && r.Method == http.MethodGet {
			found = true
		}
	}
	if !found {
		t.Fatal("expected GET /ws route")
	}
}

func TestHandler_RejectsPlainHTTP(t *testing.T) {
	hub := NewHub()
	handler := NewHandler(hub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.HandleConnect(c)
	if err == nil && rec.Code == http.StatusSwitchingProtocols {
		t.Fatal("expected upgrade to fail for non-websocket request")
	}
}
