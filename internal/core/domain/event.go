package domain

import (
	"encoding/json"
)

type EventType string

const (
	EventYourID       EventType = "your-id"
	EventMessage      EventType = "message"
	EventImage        EventType = "image"
	EventAudio        EventType = "audio"
	EventStartCall    EventType = "start-call"
	EventAnswerCall   EventType = "answer-call"
	EventICECandidate EventType = "ice-candidate"
	EventEndCall      EventType = "end-call"
	EventError        EventType = "error"
)

// Envelope is the wire frame for every event in both directions.
// Data stays opaque here; each handler decodes the payload it expects.
type Envelope struct {
	Event EventType       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// StartCallPayload is what a caller sends to ring another client.
type StartCallPayload struct {
	CalleeID       string  `json:"callee_id"`
	CallerUsername string  `json:"caller_username,omitempty"`
	Timestamp      float64 `json:"timestamp,omitempty"`
}

// StartCallMessage is the augmented start-call forwarded to the callee.
type StartCallMessage struct {
	CalleeID       string  `json:"callee_id"`
	CallerID       string  `json:"caller_id"`
	CallerUsername string  `json:"caller_username"`
	Timestamp      float64 `json:"timestamp"`
}

// AnswerCallPayload is what a callee sends to pick up.
type AnswerCallPayload struct {
	CallerID       string `json:"caller_id"`
	CallerUsername string `json:"caller_username,omitempty"`
	CalleeUsername string `json:"callee_username,omitempty"`
}

// AnswerCallMessage is the answer-call forwarded back to the caller.
type AnswerCallMessage struct {
	CallerID       string `json:"caller_id"`
	CalleeID       string `json:"callee_id"`
	CallerUsername string `json:"caller_username"`
	CalleeUsername string `json:"callee_username"`
}

type EndCallPayload struct {
	TargetID string `json:"target_id"`
	Reason   string `json:"reason,omitempty"`
}

// EndCallMessage carries the hang-up to the other party, with display
// names resolved from the call table when they are known.
type EndCallMessage struct {
	TargetID       string `json:"target_id"`
	Reason         string `json:"reason,omitempty"`
	CallerUsername string `json:"caller_username,omitempty"`
	CalleeUsername string `json:"callee_username,omitempty"`
}

type AudioPayload struct {
	TargetID  string  `json:"target_id"`
	AudioData string  `json:"audio_data"`
	Timestamp float64 `json:"timestamp"`
}

// AudioMessage is the canonical shape audio is forwarded in. Anything
// else the sender attached is dropped.
type AudioMessage struct {
	SenderID  string  `json:"sender_id"`
	AudioData string  `json:"audio_data"`
	Timestamp float64 `json:"timestamp"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
