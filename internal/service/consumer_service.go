package service

import (
	"context"
	"sync"

	"robi-be/internal/pkg/logger"
	"robi-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventSink receives every decoded event payload, e.g. a websocket hub.
type EventSink interface {
	Broadcast(data []byte)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
	Counts() map[string]int
}

// consumerService writes every domain event to the audit log, counts them by type
// and forwards them to the sink.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	sink       EventSink
	logger     logger.ILogger

	mu     sync.Mutex
	counts map[string]int
}

func NewConsumerService(subscriber message.Subscriber, topicName string, sink EventSink, log logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		sink:       sink,
		logger:     log,
		counts:     map[string]int{},
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Error("EVENTS", "Failed to decode event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // a malformed payload never becomes valid
		return
	}

	cs.mu.Lock()
	cs.counts[event.Type]++
	cs.mu.Unlock()

	cs.logger.Info("EVENTS", event.Type, map[string]interface{}{
		"event_id": event.ID,
		"data":     event.Data,
	})
	if cs.sink != nil {
		cs.sink.Broadcast(msg.Payload)
	}
	msg.Ack()
}

func (cs *consumerService) Counts() map[string]int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	out := make(map[string]int, len(cs.counts))
	for k, v := range cs.counts {
		out[k] = v
	}
	return out
}
