package messaging

import (
	"context"
)

const (
	ProductsSubjectWildcard = "products.>"
	ProductsCreatedSubject  = "products.created"
	ProductsUpdatedSubject  = "products.updated"
	ProductsDeletedSubject  = "products.deleted"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards every event. Used when event publishing is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}
