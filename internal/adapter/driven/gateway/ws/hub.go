package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/yehuda888/aicreatedapp/internal/core/domain"
	"github.com/yehuda888/aicreatedapp/internal/core/port"
)

// Hub tracks every live connection by its ClientID and implements the
// core's Gateway port on top of per-client sends.
type Hub struct {
	mu      sync.RWMutex
	clients map[domain.ClientID]port.Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[domain.ClientID]port.Client),
	}
}

// Register adds the client and tells it its own identity. The your-id
// event goes out before Register returns, so it reaches the client
// ahead of anything routed through the hub afterwards.
func (h *Hub) Register(c port.Client) {
	h.mu.Lock()
	h.clients[c.ID()] = c
	count := len(h.clients)
	h.mu.Unlock()

	log.Info().Str("client_id", c.ID().String()).Int("count", count).Msg("Client registered")

	if err := c.Send(domain.EventYourID, c.ID().String()); err != nil {
		log.Error().Err(err).Str("client_id", c.ID().String()).Msg("Error sending client its id")
	}
}

func (h *Hub) Unregister(id domain.ClientID) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	count := len(h.clients)
	h.mu.Unlock()

	if ok {
		c.Close()
		log.Info().Str("client_id", id.String()).Int("count", count).Msg("Client unregistered")
	}
}

// Emit sends one event to one identity. An unknown target is not an
// error; the client may simply have gone away.
func (h *Hub) Emit(ctx context.Context, target domain.ClientID, event domain.EventType, data any) error {
	h.mu.RLock()
	c, ok := h.clients[target]
	h.mu.RUnlock()
	if !ok {
		return nil
	}

	if err := c.Send(event, data); err != nil {
		log.Error().Err(err).
			Str("client_id", target.String()).
			Str("event", string(event)).
			Msg("Error sending event")
		h.drop(target)
		return err
	}
	return nil
}

// BroadcastExcept fans the event out to every client but the sender.
// Fan-out is best effort: a failed recipient is dropped and the rest
// still receive the event.
func (h *Hub) BroadcastExcept(ctx context.Context, sender domain.ClientID, event domain.EventType, data any) error {
	h.mu.RLock()
	targets := make([]port.Client, 0, len(h.clients))
	for id, c := range h.clients {
		if id == sender {
			continue
		}
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	var errs []error
	for _, c := range targets {
		if err := c.Send(event, data); err != nil {
			log.Error().Err(err).
				Str("client_id", c.ID().String()).
				Str("event", string(event)).
				Msg("Error broadcasting event")
			h.drop(c.ID())
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *Hub) drop(id domain.ClientID) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	h.mu.Unlock()

	if ok {
		c.Close()
	}
}

// Stop closes every remaining connection.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		c.Close()
		delete(h.clients, id)
	}
}
