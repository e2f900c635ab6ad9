package event

import (
	"log/slog"
	"sync"

	"github.com/atlasbank/corebank/internal/domain"
)

// Handler consumes one event. Handlers run outside the publishing path and
// must tolerate at-least-once, possibly out-of-order delivery.
type Handler func(event domain.Event)

// Bus is the fire-and-forget fan-out boundary between the engine and its
// event consumers. Publish never blocks the caller: events normally travel
// through a buffered channel drained by a single goroutine, and a full buffer
// falls back to a detached dispatch goroutine, trading ordering for liveness.
type Bus struct {
	ch       chan domain.Event
	handlers []Handler
	logger   *slog.Logger

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewBus creates a bus with the given buffer size and starts draining it.
func NewBus(logger *slog.Logger, buffer int, handlers ...Handler) *Bus {
	if buffer <= 0 {
		buffer = 64
	}
	b := &Bus{
		ch:       make(chan domain.Event, buffer),
		handlers: handlers,
		logger:   logger,
		done:     make(chan struct{}),
	}

	b.wg.Add(1)
	go b.run()

	return b
}

// Publish hands the event to the consumers without ever blocking the caller.
// Events published after Close are dropped.
func (b *Bus) Publish(event domain.Event) {
	select {
	case <-b.done:
		b.logger.Warn("event dropped after bus close", "event_id", event.EventID())
		return
	default:
	}

	select {
	case b.ch <- event:
	default:
		go b.dispatch(event)
	}
}

// Close stops accepting events, drains whatever is buffered, and waits for
// the drain loop to finish.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
	b.wg.Wait()
}

func (b *Bus) run() {
	defer b.wg.Done()
	for {
		select {
		case event := <-b.ch:
			b.dispatch(event)
		case <-b.done:
			for {
				select {
				case event := <-b.ch:
					b.dispatch(event)
				default:
					return
				}
			}
		}
	}
}

// dispatch fans one event out to every handler. Consumer failures are
// isolated and logged, never propagated back to the publisher.
func (b *Bus) dispatch(event domain.Event) {
	for _, handler := range b.handlers {
		b.safeHandle(handler, event)
	}
}

func (b *Bus) safeHandle(handler Handler, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event consumer panicked",
				"event_id", event.EventID(),
				"panic", r,
			)
		}
	}()
	handler(event)
}
