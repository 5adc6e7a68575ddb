package port

import (
	"context"

	"github.com/yehuda888/aicreatedapp/internal/core/domain"
)

// Gateway is the outbound edge of the core: it delivers named events to
// connected clients without knowing anything about the transport.
// Emitting to an identity that is not connected is not an error;
// delivery is best effort.
type Gateway interface {
	Emit(ctx context.Context, target domain.ClientID, event domain.EventType, data any) error
	BroadcastExcept(ctx context.Context, sender domain.ClientID, event domain.EventType, data any) error
}
