package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/yehuda888/aicreatedapp/internal/core/domain"
	"github.com/yehuda888/aicreatedapp/internal/core/port"
)

// RelayService forwards chat, image, audio and ICE payloads between
// clients. It holds no state of its own; targets come from the payload.
type RelayService struct {
	gateway port.Gateway
}

func NewRelayService(gateway port.Gateway) *RelayService {
	return &RelayService{gateway: gateway}
}

// Broadcast fans the payload out to everyone but the sender. The
// payload is opaque and forwarded untouched.
func (s *RelayService) Broadcast(ctx context.Context, sender domain.ClientID, event domain.EventType, data json.RawMessage) error {
	return s.gateway.BroadcastExcept(ctx, sender, event, data)
}

// ForwardAudio reshapes the payload into the canonical audio envelope
// and sends it to the target. Fields outside the envelope are dropped.
func (s *RelayService) ForwardAudio(ctx context.Context, sender domain.ClientID, p domain.AudioPayload) error {
	if p.TargetID == "" {
		return &domain.ValidationError{Event: domain.EventAudio, Field: "target_id"}
	}

	msg := domain.AudioMessage{
		SenderID:  sender.String(),
		AudioData: p.AudioData,
		Timestamp: p.Timestamp,
	}
	if err := s.gateway.Emit(ctx, domain.ClientID(p.TargetID), domain.EventAudio, msg); err != nil {
		return err
	}

	log.Debug().
		Str("sender_id", sender.String()).
		Str("target_id", p.TargetID).
		Msg("Audio message forwarded")
	return nil
}

// ForwardCandidate relays an ICE candidate unmodified. Unlike the other
// handlers a candidate without a target is logged and dropped without
// telling the sender.
func (s *RelayService) ForwardCandidate(ctx context.Context, sender domain.ClientID, data json.RawMessage) error {
	var probe struct {
		TargetID string `json:"target_id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil || probe.TargetID == "" {
		log.Warn().
			Str("client_id", sender.String()).
			Msg("Dropping ice-candidate without target_id")
		return nil
	}

	if err := s.gateway.Emit(ctx, domain.ClientID(probe.TargetID), domain.EventICECandidate, data); err != nil {
		log.Error().Err(err).
			Str("client_id", sender.String()).
			Str("target_id", probe.TargetID).
			Msg("Error forwarding ice-candidate")
	}
	return nil
}
