package clicks

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/shrinklab/shrink/internal/messaging"
	"go.uber.org/zap"
)

// NewLedgerConsumer builds a consumer that appends published click events
// to the ledger store.
func NewLedgerConsumer(subscriber message.Subscriber, store Store, logger *zap.Logger) *messaging.Consumer[Event] {
	handler := func(ctx context.Context, event *Event) error {
		return store.Append(ctx, event)
	}

	return messaging.NewConsumer(subscriber, TopicURLClicked, handler, logger)
}
