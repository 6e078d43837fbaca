// Package notify carries the "new events were committed" signal from game
// transactions to the resolver loop. Notifications are hints, not a delivery
// guarantee; the resolver's ticker covers missed ones.
package notify

import "context"

//go:generate mockgen -destination=mock/mock_notifier.go -package=mocknotify -source=notify.go

// Notifier signals that new events were persisted
type Notifier interface {
	Notify(ctx context.Context) error
}

// Waker exposes the channel the resolver loop selects on
type Waker interface {
	Wake() <-chan struct{}
}

// Local is an in-process Notifier and Waker. The channel is buffered with
// size one so a burst of notifications collapses into a single wake-up.
type Local struct {
	ch chan struct{}
}

// NewLocal creates a local notifier
func NewLocal() *Local {
	return &Local{ch: make(chan struct{}, 1)}
}

// Notify never blocks; a pending wake-up absorbs the signal
func (l *Local) Notify(ctx context.Context) error {
	select {
	case l.ch <- struct{}{}:
	default:
	}
	return nil
}

// Wake returns the wake-up channel
func (l *Local) Wake() <-chan struct{} {
	return l.ch
}
