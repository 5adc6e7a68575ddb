package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yehuda888/aicreatedapp/internal/core/domain"
	"github.com/yehuda888/aicreatedapp/internal/core/port"
)

// CallService owns the table of active calls. An identity holds at most
// one record at a time, and every operation that touches both sides of
// a pair runs inside a single critical section so the two records
// change together.
type CallService struct {
	gateway port.Gateway

	mu    sync.Mutex
	calls map[domain.ClientID]domain.CallRecord
}

func NewCallService(gateway port.Gateway) *CallService {
	return &CallService{
		gateway: gateway,
		calls:   make(map[domain.ClientID]domain.CallRecord),
	}
}

// StartCall rings the callee. Only the caller gets a record at this
// point; the callee's record is created when it answers.
func (s *CallService) StartCall(ctx context.Context, caller domain.ClientID, p domain.StartCallPayload) error {
	if p.CalleeID == "" {
		return &domain.ValidationError{Event: domain.EventStartCall, Field: "callee_id"}
	}
	callee := domain.ClientID(p.CalleeID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.calls[caller]; busy {
		return domain.ErrAlreadyInCall
	}
	if _, busy := s.calls[callee]; busy {
		return domain.ErrAlreadyInCall
	}

	name := p.CallerUsername
	if name == "" {
		name = caller.String()
	}
	s.calls[caller] = domain.CallRecord{
		Partner:     callee,
		State:       domain.CallStateCalling,
		DisplayName: name,
	}

	ts := p.Timestamp
	if ts == 0 {
		ts = float64(time.Now().UnixMilli()) / 1000
	}

	log.Info().
		Str("caller_id", caller.String()).
		Str("callee_id", callee.String()).
		Msg("Starting call")

	return s.gateway.Emit(ctx, callee, domain.EventStartCall, domain.StartCallMessage{
		CalleeID:       p.CalleeID,
		CallerID:       caller.String(),
		CallerUsername: name,
		Timestamp:      ts,
	})
}

// AnswerCall connects the callee to the caller. There is deliberately
// no precondition here: answering always succeeds, and the caller's
// record is re-synced to the answering callee if it exists.
func (s *CallService) AnswerCall(ctx context.Context, callee domain.ClientID, p domain.AnswerCallPayload) error {
	if p.CallerID == "" {
		return &domain.ValidationError{Event: domain.EventAnswerCall, Field: "caller_id"}
	}
	caller := domain.ClientID(p.CallerID)

	s.mu.Lock()
	defer s.mu.Unlock()

	calleeName := p.CalleeUsername
	if calleeName == "" {
		calleeName = callee.String()
	}
	s.calls[callee] = domain.CallRecord{
		Partner:     caller,
		State:       domain.CallStateConnected,
		DisplayName: calleeName,
	}

	if rec, ok := s.calls[caller]; ok {
		rec.State = domain.CallStateConnected
		rec.Partner = callee
		s.calls[caller] = rec
	}

	callerName := p.CallerUsername
	if callerName == "" {
		callerName = caller.String()
	}

	log.Info().
		Str("caller_id", caller.String()).
		Str("callee_id", callee.String()).
		Msg("Call answered")

	return s.gateway.Emit(ctx, caller, domain.EventAnswerCall, domain.AnswerCallMessage{
		CallerID:       p.CallerID,
		CalleeID:       callee.String(),
		CallerUsername: callerName,
		CalleeUsername: calleeName,
	})
}

// EndCall tears down both sides' records, whether or not they were
// actually partnered, and notifies the target.
func (s *CallService) EndCall(ctx context.Context, sender domain.ClientID, p domain.EndCallPayload) error {
	if p.TargetID == "" {
		return &domain.ValidationError{Event: domain.EventEndCall, Field: "target_id"}
	}
	target := domain.ClientID(p.TargetID)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := domain.EndCallMessage{
		TargetID: p.TargetID,
		Reason:   p.Reason,
	}
	if rec, ok := s.calls[sender]; ok {
		out.CallerUsername = rec.DisplayName
	}
	if rec, ok := s.calls[target]; ok {
		out.CalleeUsername = rec.DisplayName
	}

	delete(s.calls, sender)
	delete(s.calls, target)

	log.Info().
		Str("caller_id", sender.String()).
		Str("callee_id", target.String()).
		Msg("Call ended")

	return s.gateway.Emit(ctx, target, domain.EventEndCall, out)
}

// Disconnect cleans up after a dropped connection. If the identity was
// in a call the partner receives exactly one end-call and both records
// go away. A disconnect is never an error.
func (s *CallService) Disconnect(ctx context.Context, id domain.ClientID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.calls[id]
	if !ok {
		return
	}
	delete(s.calls, id)
	delete(s.calls, rec.Partner)

	msg := domain.EndCallMessage{
		TargetID: rec.Partner.String(),
		Reason:   domain.ReasonUserDisconnected,
	}
	if err := s.gateway.Emit(ctx, rec.Partner, domain.EventEndCall, msg); err != nil {
		log.Error().Err(err).
			Str("client_id", id.String()).
			Str("partner_id", rec.Partner.String()).
			Msg("Error notifying call partner")
	}
}
