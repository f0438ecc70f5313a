package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct {
	name string
}

func (e testEvent) Name() string { return e.name }

func TestPublish_FansOutToAllSubscribers(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	var got []string

	for _, id := range []string{"a", "b"} {
		id := id
		bus.Subscribe("reservation.approved", func(ctx context.Context, event Event) error {
			defer wg.Done()
			mu.Lock()
			got = append(got, id+":"+event.Name())
			mu.Unlock()
			return nil
		})
	}

	bus.Publish(context.Background(), testEvent{name: "reservation.approved"})

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listeners were not invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"a:reservation.approved", "b:reservation.approved"}, got)
}

func TestPublish_NoSubscribersIsFine(t *testing.T) {
	bus := NewBus(zap.NewNop())
	bus.Publish(context.Background(), testEvent{name: "reservation.updated"})
}

func TestPublish_FailingListenerDoesNotBlockOthers(t *testing.T) {
	bus := NewBus(zap.NewNop())

	called := make(chan struct{})
	bus.Subscribe("reservation.declined", func(ctx context.Context, event Event) error {
		return errors.New("sms gateway down")
	})
	bus.Subscribe("reservation.declined", func(ctx context.Context, event Event) error {
		close(called)
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "reservation.declined"})

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("second listener was not invoked")
	}
}

func TestPublish_DoesNotBlockPublisher(t *testing.T) {
	bus := NewBus(zap.NewNop())

	release := make(chan struct{})
	bus.Subscribe("reservation.approved", func(ctx context.Context, event Event) error {
		<-release
		return nil
	})

	start := time.Now()
	bus.Publish(context.Background(), testEvent{name: "reservation.approved"})
	assert.Less(t, time.Since(start), time.Second)
	close(release)
}
