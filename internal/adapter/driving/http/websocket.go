package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yehuda888/aicreatedapp/internal/core/domain"
)

type WSClient struct {
	id   domain.ClientID
	conn *websocket.Conn

	// gorilla conns allow one concurrent writer
	mu sync.Mutex
}

func (c *WSClient) ID() domain.ClientID {
	return c.id
}

func (c *WSClient) Send(event domain.EventType, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(domain.Envelope{Event: event, Data: raw})
}

func (c *WSClient) Close() error {
	return c.conn.Close()
}

// HTTP handler
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	client := &WSClient{
		id:   domain.NewClientID(),
		conn: conn,
	}

	l := log.With().Str("client_id", client.id.String()).Logger()
	l.Info().Msg("New client connected")

	h.Hub.Register(client)

	defer func() {
		l.Info().Msg("Client disconnected")
		h.CallService.Disconnect(context.Background(), client.id)
		h.Hub.Unregister(client.id)
	}()

	// listening for browser
	for {
		var env domain.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}

		h.dispatch(r.Context(), &l, client, env)
	}
}

// dispatch routes one inbound event to its handler and turns handler
// failures into an error event for the sender. No failure here may take
// the read loop down.
func (h *Handler) dispatch(ctx context.Context, l *zerolog.Logger, client *WSClient, env domain.Envelope) {
	var err error

	switch env.Event {
	case domain.EventMessage, domain.EventImage:
		err = h.RelayService.Broadcast(ctx, client.id, env.Event, env.Data)

	case domain.EventAudio:
		var p domain.AudioPayload
		if err = json.Unmarshal(env.Data, &p); err == nil {
			err = h.RelayService.ForwardAudio(ctx, client.id, p)
		}

	case domain.EventICECandidate:
		err = h.RelayService.ForwardCandidate(ctx, client.id, env.Data)

	case domain.EventStartCall:
		var p domain.StartCallPayload
		if err = json.Unmarshal(env.Data, &p); err == nil {
			err = h.CallService.StartCall(ctx, client.id, p)
		}

	case domain.EventAnswerCall:
		var p domain.AnswerCallPayload
		if err = json.Unmarshal(env.Data, &p); err == nil {
			err = h.CallService.AnswerCall(ctx, client.id, p)
		}

	case domain.EventEndCall:
		var p domain.EndCallPayload
		if err = json.Unmarshal(env.Data, &p); err == nil {
			err = h.CallService.EndCall(ctx, client.id, p)
		}

	default:
		l.Warn().Str("event", string(env.Event)).Msg("Unknown event")
		return
	}

	if err == nil {
		return
	}

	l.Error().Err(err).Str("event", string(env.Event)).Msg("Handler error")

	msg := failureMessage(env.Event)
	var vErr *domain.ValidationError
	var cErr *domain.ConflictError
	if errors.As(err, &vErr) || errors.As(err, &cErr) {
		msg = err.Error()
	}

	if sendErr := client.Send(domain.EventError, domain.ErrorPayload{Message: msg}); sendErr != nil {
		l.Error().Err(sendErr).Msg("Error sending error event")
	}
}

func failureMessage(event domain.EventType) string {
	switch event {
	case domain.EventMessage:
		return "Failed to send message"
	case domain.EventImage:
		return "Failed to send image"
	case domain.EventAudio:
		return "Failed to send audio"
	case domain.EventStartCall:
		return "Failed to start call"
	case domain.EventAnswerCall:
		return "Failed to answer call"
	case domain.EventEndCall:
		return "Failed to end call"
	}
	return "Failed to handle event"
}
