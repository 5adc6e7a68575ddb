package ws

import (
	"context"
	"errors"
	"testing"

	"github.com/yehuda888/aicreatedapp/internal/core/domain"
)

type sentEvent struct {
	event domain.EventType
	data  any
}

type fakeClient struct {
	id      domain.ClientID
	sent    []sentEvent
	sendErr error
	closed  bool
}

func (c *fakeClient) ID() domain.ClientID {
	return c.id
}

func (c *fakeClient) Send(event domain.EventType, data any) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, sentEvent{event, data})
	return nil
}

func (c *fakeClient) Close() error {
	c.closed = true
	return nil
}

func TestRegister_SendsYourID(t *testing.T) {
	h := NewHub()
	c := &fakeClient{id: "a"}

	h.Register(c)

	if len(c.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(c.sent))
	}
	if c.sent[0].event != domain.EventYourID {
		t.Errorf("event = %s, want your-id", c.sent[0].event)
	}
	if c.sent[0].data != "a" {
		t.Errorf("data = %v, want a", c.sent[0].data)
	}
}

func TestEmit_TargetsSingleClient(t *testing.T) {
	h := NewHub()
	a := &fakeClient{id: "a"}
	b := &fakeClient{id: "b"}
	h.Register(a)
	h.Register(b)

	if err := h.Emit(context.Background(), "b", domain.EventAudio, "payload"); err != nil {
		t.Fatalf("Emit error = %v", err)
	}

	if len(b.sent) != 2 { // your-id + audio
		t.Fatalf("b sent = %d, want 2", len(b.sent))
	}
	if b.sent[1].event != domain.EventAudio {
		t.Errorf("event = %s, want audio", b.sent[1].event)
	}
	if len(a.sent) != 1 { // your-id only
		t.Errorf("a sent = %d, want 1", len(a.sent))
	}
}

func TestEmit_UnknownTargetIsNotAnError(t *testing.T) {
	h := NewHub()

	if err := h.Emit(context.Background(), "ghost", domain.EventICECandidate, "payload"); err != nil {
		t.Errorf("Emit to ghost error = %v, want nil", err)
	}
}

func TestEmit_SendFailureDropsClient(t *testing.T) {
	h := NewHub()
	b := &fakeClient{id: "b", sendErr: errors.New("write: broken pipe")}
	h.mu.Lock()
	h.clients["b"] = b
	h.mu.Unlock()

	if err := h.Emit(context.Background(), "b", domain.EventMessage, "x"); err == nil {
		t.Fatal("Emit error = nil, want send failure")
	}
	if !b.closed {
		t.Error("failed client not closed")
	}
	if err := h.Emit(context.Background(), "b", domain.EventMessage, "x"); err != nil {
		t.Errorf("Emit after drop error = %v, want nil", err)
	}
}

func TestBroadcastExcept_SkipsSender(t *testing.T) {
	h := NewHub()
	a := &fakeClient{id: "a"}
	b := &fakeClient{id: "b"}
	c := &fakeClient{id: "c"}
	h.Register(a)
	h.Register(b)
	h.Register(c)

	if err := h.BroadcastExcept(context.Background(), "a", domain.EventMessage, "hello"); err != nil {
		t.Fatalf("BroadcastExcept error = %v", err)
	}

	for _, cl := range []*fakeClient{b, c} {
		if len(cl.sent) != 2 {
			t.Fatalf("%s sent = %d, want 2", cl.id, len(cl.sent))
		}
		if cl.sent[1].event != domain.EventMessage || cl.sent[1].data != "hello" {
			t.Errorf("%s got %v", cl.id, cl.sent[1])
		}
	}
	if len(a.sent) != 1 {
		t.Errorf("sender received its own broadcast, sent = %d", len(a.sent))
	}
}

func TestBroadcastExcept_BestEffort(t *testing.T) {
	h := NewHub()
	a := &fakeClient{id: "a"}
	bad := &fakeClient{id: "bad", sendErr: errors.New("write: broken pipe")}
	c := &fakeClient{id: "c"}
	h.Register(a)
	h.Register(c)
	h.mu.Lock()
	h.clients["bad"] = bad
	h.mu.Unlock()

	err := h.BroadcastExcept(context.Background(), "a", domain.EventImage, "img")
	if err == nil {
		t.Fatal("BroadcastExcept error = nil, want failure for bad client")
	}

	// the healthy recipient still got the event
	if len(c.sent) != 2 {
		t.Errorf("c sent = %d, want 2", len(c.sent))
	}
	if !bad.closed {
		t.Error("failed client not closed")
	}
}

func TestUnregister_RemovesAndCloses(t *testing.T) {
	h := NewHub()
	a := &fakeClient{id: "a"}
	h.Register(a)

	h.Unregister("a")

	if !a.closed {
		t.Error("client not closed on unregister")
	}
	if err := h.Emit(context.Background(), "a", domain.EventMessage, "x"); err != nil {
		t.Errorf("Emit after unregister error = %v, want nil", err)
	}
	if len(a.sent) != 1 {
		t.Errorf("sent = %d, want 1 (nothing after unregister)", len(a.sent))
	}
}

func TestStop_ClosesEveryClient(t *testing.T) {
	h := NewHub()
	a := &fakeClient{id: "a"}
	b := &fakeClient{id: "b"}
	h.Register(a)
	h.Register(b)

	h.Stop()

	if !a.closed || !b.closed {
		t.Error("clients left open after Stop")
	}
}
