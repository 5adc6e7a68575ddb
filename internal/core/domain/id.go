package domain

import (
	"github.com/google/uuid"
)

// ClientID identifies one connected client for the lifetime of its
// connection. It is assigned by the transport at upgrade time and is
// never chosen by the client itself.
type ClientID string

func NewClientID() ClientID {
	return ClientID(uuid.New().String())
}

func (id ClientID) String() string {
	return string(id)
}
