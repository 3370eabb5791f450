package event

import "context"

// Handler Each kind of event has his own handler.
// Handlers are registered on the bus per event type and run in isolation.
type Handler interface {
	Handle(ctx context.Context, e DomainEvent) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, e DomainEvent) error

func (f HandlerFunc) Handle(ctx context.Context, e DomainEvent) error {
	return f(ctx, e)
}
