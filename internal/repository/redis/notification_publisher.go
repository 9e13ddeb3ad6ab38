package redis

import (
	"context"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
)

type notificationPublisher struct {
	streams repository.StreamRepository
	stream  string
}

// NewNotificationPublisher ставит задания на рассылку в стрим stream
func NewNotificationPublisher(streams repository.StreamRepository, stream string) repository.NotificationPublisher {
	if stream == "" {
		stream = domain.StreamServiceAvailable
	}
	return &notificationPublisher{
		streams: streams,
		stream:  stream,
	}
}

func (p *notificationPublisher) PublishServiceAvailable(ctx context.Context, event domain.ServiceAvailableEvent) error {
	return p.streams.PublishToStream(ctx, p.stream, event)
}
