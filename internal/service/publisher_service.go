package service

import (
	"context"
	"fmt"

	"robi-be/internal/pkg/logger"
	"robi-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const EventsTopic = "robi.events"

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topic   string
	pubSub  message.Publisher
	forward events.Publisher
	logger  logger.ILogger
}

// NewPublisherService publishes to the in-process bus and, when forward is set,
// also to an external broker.
func NewPublisherService(topic string, pubSub message.Publisher, forward events.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		topic:   topic,
		pubSub:  pubSub,
		forward: forward,
		logger:  log,
	}
}

func (s *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := events.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("type", event.EventType())
	if err := s.pubSub.Publish(s.topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.EventType(), err)
	}

	if s.forward != nil {
		// External delivery is best effort.
		if err := s.forward.Publish(ctx, event); err != nil {
			s.logger.Warn("EVENTS", "Failed to forward event", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}
	return nil
}
