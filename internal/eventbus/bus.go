// Package eventbus is the in-process choreography channel between services.
// Publishing is fire-and-forget from the caller's point of view; a single
// worker goroutine delivers to subscribers in order with a bounded retry.
package eventbus

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/velvet-labs/velvet/internal/entity"
)

const (
	defaultBufferSize = 64
	maxAttempts       = 3
	retryDelay        = 50 * time.Millisecond
)

type envelope struct {
	name     string
	dispatch func(ctx context.Context) error
}

type Bus struct {
	log *logrus.Logger

	mu                   sync.RWMutex
	closed               bool
	userCreatedHandlers  []func(context.Context, entity.UserCreated) error
	userAttendedHandlers []func(context.Context, entity.UserAttendedEvent) error

	ch chan envelope
	wg sync.WaitGroup
}

func New(log *logrus.Logger, bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	b := &Bus{
		log: log,
		ch:  make(chan envelope, bufferSize),
	}
	b.wg.Add(1)
	go b.run()
	return b
}

func (b *Bus) SubscribeUserCreated(h func(context.Context, entity.UserCreated) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userCreatedHandlers = append(b.userCreatedHandlers, h)
}

func (b *Bus) SubscribeUserAttended(h func(context.Context, entity.UserAttendedEvent) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userAttendedHandlers = append(b.userAttendedHandlers, h)
}

func (b *Bus) PublishUserCreated(event entity.UserCreated) {
	b.mu.RLock()
	handlers := b.userCreatedHandlers
	b.mu.RUnlock()

	b.publish(envelope{
		name: "user.created",
		dispatch: func(ctx context.Context) error {
			for _, h := range handlers {
				if err := h(ctx, event); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

func (b *Bus) PublishUserAttended(event entity.UserAttendedEvent) {
	b.mu.RLock()
	handlers := b.userAttendedHandlers
	b.mu.RUnlock()

	b.publish(envelope{
		name: "user.attended_event",
		dispatch: func(ctx context.Context) error {
			for _, h := range handlers {
				if err := h(ctx, event); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

func (b *Bus) publish(env envelope) {
	// the read lock spans the send so Close cannot close the channel
	// between the check and the send; delivery never takes the lock, so
	// the worker keeps draining while a writer waits
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		b.log.WithField("event", env.name).Warn("bus closed, dropping event")
		return
	}
	b.ch <- env
}

// Close stops accepting events and blocks until the buffer is drained.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	close(b.ch)
	b.wg.Wait()
}

func (b *Bus) run() {
	defer b.wg.Done()
	for env := range b.ch {
		b.deliver(env)
	}
}

func (b *Bus) deliver(env envelope) {
	ctx := context.Background()
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = env.dispatch(ctx); err == nil {
			return
		}
		b.log.WithError(err).WithFields(logrus.Fields{
			"event":   env.name,
			"attempt": attempt,
		}).Warn("event handler failed")
		if attempt < maxAttempts {
			time.Sleep(retryDelay)
		}
	}
	b.log.WithError(err).WithField("event", env.name).Error("event dropped after retries")
}
