package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is anything that can be published on the bus.
type Event interface {
	Name() string
}

// Listener handles one event. Errors are logged, never propagated to the
// publisher.
type Listener func(ctx context.Context, event Event) error

// Bus is a small in-process pub/sub used to run side effects after a
// transaction has committed. Publishing never blocks the caller and a
// failing listener cannot influence the outcome of the operation that
// emitted the event.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	logger    *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish dispatches the event to every subscriber in its own goroutine.
// Each listener gets a fresh context with a timeout so a stuck delivery
// channel cannot leak goroutines forever.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	listeners := b.listeners[event.Name()]
	b.mu.RUnlock()

	for _, listener := range listeners {
		go func(l Listener) {
			lctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			if err := l(lctx, event); err != nil {
				b.logger.Warn("event listener failed",
					zap.String("event", event.Name()),
					zap.Error(err),
				)
			}
		}(listener)
	}
}
