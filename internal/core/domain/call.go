package domain

type CallState string

const (
	CallStateCalling   CallState = "calling"
	CallStateConnected CallState = "connected"
)

// CallRecord is one participant's view of an active or pending call.
// DisplayName falls back to the owner's ClientID when the client never
// supplied a username.
type CallRecord struct {
	Partner     ClientID
	State       CallState
	DisplayName string
}

// ReasonUserDisconnected marks an end-call that was triggered by the
// partner's connection dropping rather than an explicit hang-up.
const ReasonUserDisconnected = "user_disconnected"
