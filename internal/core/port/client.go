package port

import (
	"github.com/yehuda888/aicreatedapp/internal/core/domain"
)

type Client interface {
	ID() domain.ClientID
	Send(event domain.EventType, data any) error
	Close() error
}
