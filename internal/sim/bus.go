package sim

import "sync"

// DefaultBuffer is the event buffer of a bus subscriber.
const DefaultBuffer = 64

// Bus fans events out to subscribers. Publishing never blocks: a subscriber
// whose buffer is full loses its oldest event.
type Bus struct {
	mu   sync.Mutex
	subs map[*Subscriber]struct{}
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscriber]struct{})}
}

// Subscribe registers a subscriber with the given buffer size.
func (b *Bus) Subscribe(buffer int) *Subscriber {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	s := &Subscriber{bus: b, events: make(chan Event, buffer)}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// Publish delivers evt to every subscriber.
func (b *Bus) Publish(evt Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs {
		s.send(evt)
	}
}

// Subscribers returns the number of registered subscribers.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Subscriber receives events from a Bus.
type Subscriber struct {
	bus    *Bus
	events chan Event
	once   sync.Once
}

// Events returns the event channel. It is closed by Close.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Drain returns every buffered event without blocking.
func (s *Subscriber) Drain() []Event {
	var out []Event
	for {
		select {
		case evt, ok := <-s.events:
			if !ok {
				return out
			}
			out = append(out, evt)
		default:
			return out
		}
	}
}

// Close unregisters the subscriber. Safe to call multiple times.
func (s *Subscriber) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s)
		close(s.events)
		s.bus.mu.Unlock()
	})
}

// send is called with the bus lock held.
func (s *Subscriber) send(evt Event) {
	select {
	case s.events <- evt:
		return
	default:
	}
	// Buffer full, drop oldest and retry
	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- evt:
	default:
	}
}
