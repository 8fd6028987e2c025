package notify

import (
	"context"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

// Dispatcher delivers a stored notification to the recipient's live streams.
type Dispatcher interface {
	Dispatch(ctx context.Context, n *entity.Notification) error
}

// hubDispatcher delivers in-process only.
type hubDispatcher struct {
	hub *Hub
}

func NewHubDispatcher(hub *Hub) Dispatcher {
	return &hubDispatcher{hub: hub}
}

func (d *hubDispatcher) Dispatch(_ context.Context, n *entity.Notification) error {
	d.hub.Broadcast(*n)
	return nil
}

// NewDispatcher publishes through RabbitMQ when a URL is configured so every
// instance's consumer can relay the notification. Otherwise it uses the hub.
func NewDispatcher(cfg utils.RabbitMQConfig, hub *Hub, log *zap.Logger) Dispatcher {
	if cfg.URL == "" {
		return NewHubDispatcher(hub)
	}
	return NewPublisher(cfg, log)
}
