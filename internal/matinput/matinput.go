// Package matinput delivers physical mat-pad presses to game sessions.
//
// A Source is a realtime backend (Firebase Realtime Database, a WebSocket
// relay, or an in-process channel). Subscribing starts a background reader
// that pushes presses into a bounded channel; the session drains that
// channel from its own loop, so presses never mutate game state directly.
package matinput

import (
	"context"
	"sync"
)

// DefaultGroup is the mat group the arcade listens to.
const DefaultGroup = 1

// MaxPad is the highest pad number on a mat. Pads are numbered 1..MaxPad.
const MaxPad = 9

// DefaultBuffer is the press buffer size of a subscription.
const DefaultBuffer = 16

// Press is one mat-pad press.
type Press struct {
	Pad   int    // Pad number, 1..9 on a valid mat
	Group int    // Mat group the press belongs to
	Key   string // Backend key of the record, if any
}

// Source is a realtime backend that can stream presses for one mat group.
type Source interface {
	// Name identifies the backend for status lines and logs.
	Name() string

	// Subscribe starts streaming presses for group without waiting on the
	// network. Connection failures end the subscription and are reported by
	// Err. The subscription ends when ctx is canceled or Close is called.
	Subscribe(ctx context.Context, group int) (Subscription, error)
}

// Subscription is an active press stream.
type Subscription interface {
	// Presses returns the bounded press channel. It is closed when the
	// stream ends.
	Presses() <-chan Press

	// Err returns the error that ended the stream, if any.
	Err() error

	// Close stops the stream. Safe to call multiple times.
	Close()
}

// CellForPad maps a pad number to a 0-based grid cell.
// Pads outside 1..cells are rejected.
func CellForPad(pad, cells int) (int, bool) {
	if pad < 1 || pad > MaxPad || pad > cells {
		return 0, false
	}
	return pad - 1, true
}

// stream is the Subscription shared by every source: a bounded press queue
// fed by one reader goroutine.
type stream struct {
	presses chan Press
	cancel  context.CancelFunc
	done    chan struct{}

	mu        sync.Mutex
	err       error
	closeOnce sync.Once
	finished  bool
}

func newStream(parent context.Context, buffer int) (*stream, context.Context) {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	ctx, cancel := context.WithCancel(parent)
	return &stream{
		presses: make(chan Press, buffer),
		cancel:  cancel,
		done:    make(chan struct{}),
	}, ctx
}

// Presses implements Subscription.
func (s *stream) Presses() <-chan Press {
	return s.presses
}

// Err implements Subscription.
func (s *stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close implements Subscription.
func (s *stream) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
	})
}

// push queues a press. When the buffer is full the oldest press is dropped.
func (s *stream) push(p Press) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return
	}

	select {
	case s.presses <- p:
		return
	default:
	}
	select {
	case <-s.presses:
	default:
	}
	select {
	case s.presses <- p:
	default:
	}
}

// finish records the terminal error and closes the press channel.
func (s *stream) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return
	}
	s.finished = true
	s.err = err
	close(s.presses)
	close(s.done)
}
