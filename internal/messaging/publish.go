package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish publishes a typed event to its topic.
type Publish[T any] func(event *T) error

// NewPublishFunc binds a watermill publisher and topic into a typed
// publish function.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal event for %s: %w", topic, err)
		}

		return publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), payload))
	}
}

// NopPublish returns a publish function that drops events. Used where the
// ledger pipeline is not wired, and in tests.
func NopPublish[T any]() Publish[T] {
	return func(*T) error { return nil }
}

// PublisherGroup owns the underlying publisher lifecycle so the injector
// can shut it down once, regardless of how many typed functions wrap it.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup creates a publisher group.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher exposes the wrapped publisher for creating typed publish functions.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
