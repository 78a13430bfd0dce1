package matinput

import (
	"context"
	"sync"
)

// ChanSource is an in-process Source. Presses sent with Send reach every
// subscription of the matching group. Used for tests and keyboard bridging.
type ChanSource struct {
	mu     sync.Mutex
	subs   map[*stream]int
	buffer int
	fail   error
}

// NewChanSource creates an in-process source with the given per-subscription buffer.
func NewChanSource(buffer int) *ChanSource {
	return &ChanSource{
		subs:   make(map[*stream]int),
		buffer: buffer,
	}
}

// Name implements Source.
func (c *ChanSource) Name() string {
	return "local"
}

// FailWith makes the next Subscribe calls return err. Nil clears it.
func (c *ChanSource) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail = err
}

// Subscribe implements Source.
func (c *ChanSource) Subscribe(ctx context.Context, group int) (Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return nil, c.fail
	}

	s, sctx := newStream(ctx, c.buffer)
	c.subs[s] = group

	go func() {
		<-sctx.Done()
		c.drop(s)
	}()

	return &chanSub{stream: s, src: c}, nil
}

func (c *ChanSource) drop(s *stream) {
	c.mu.Lock()
	delete(c.subs, s)
	c.mu.Unlock()
	s.finish(nil)
}

// chanSub unregisters synchronously on Close so Subscribers is exact.
type chanSub struct {
	*stream
	src *ChanSource
}

func (s *chanSub) Close() {
	s.src.drop(s.stream)
	s.stream.Close()
}

// Send delivers a press to the subscriptions of p.Group.
func (c *ChanSource) Send(p Press) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for s, group := range c.subs {
		if group == p.Group {
			s.push(p)
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (c *ChanSource) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}
