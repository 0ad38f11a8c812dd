package feed

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBuffer     = 64
	defaultRetryDelay = 5 * time.Second
)

// Handler receives changes for one subscription
type Handler func(Change)

// Broker routes published changes to matching subscriptions
type Broker struct {
	mu         sync.RWMutex
	subs       map[*Subscription]struct{}
	buffer     int
	retryDelay time.Duration
}

// Option configures a Broker
type Option func(*Broker)

// WithBuffer sets how many undelivered changes a subscription may queue
// before changes are dropped in favour of a resync.
func WithBuffer(n int) Option {
	return func(b *Broker) {
		if n > 0 {
			b.buffer = n
		}
	}
}

// WithRetryDelay sets how long Watch waits before reopening a failed stream.
func WithRetryDelay(d time.Duration) Option {
	return func(b *Broker) {
		b.retryDelay = d
	}
}

// NewBroker creates an empty broker
func NewBroker(opts ...Option) *Broker {
	b := &Broker{
		subs:       make(map[*Subscription]struct{}),
		buffer:     defaultBuffer,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscription is a live registration on a Broker
type Subscription struct {
	broker  *Broker
	channel string
	table   string
	op      Op
	handler Handler

	changes chan Change
	done    chan struct{}
	once    sync.Once
	dropped atomic.Bool
}

// Subscribe registers handler for op changes on table. channel names the
// subscriber in logs. The handler runs on a goroutine owned by the
// subscription until Unsubscribe is called.
func (b *Broker) Subscribe(channel, table string, op Op, handler Handler) *Subscription {
	s := &Subscription{
		broker:  b,
		channel: channel,
		table:   table,
		op:      op,
		handler: handler,
		changes: make(chan Change, b.buffer),
		done:    make(chan struct{}),
	}

	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()

	go s.run()

	zap.S().Debugw("feed subscription opened", "channel", channel, "table", table, "op", op)
	return s
}

// Publish delivers c to every matching subscription without blocking.
func (b *Broker) Publish(c Change) {
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for s := range b.subs {
		if s.matches(c) {
			s.offer(c)
		}
	}
}

// Subscribers returns the number of open subscriptions
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Unsubscribe removes the subscription and stops its delivery goroutine.
// Changes still queued are discarded. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.broker.mu.Lock()
		delete(s.broker.subs, s)
		s.broker.mu.Unlock()
		close(s.done)
		zap.S().Debugw("feed subscription closed", "channel", s.channel, "table", s.table)
	})
}

func (s *Subscription) matches(c Change) bool {
	if s.table != c.Table {
		return false
	}
	return s.op == OpAll || c.Op == OpAll || s.op == c.Op
}

func (s *Subscription) offer(c Change) {
	select {
	case s.changes <- c:
	default:
		s.dropped.Store(true)
	}
}

func (s *Subscription) run() {
	for {
		select {
		case c := <-s.changes:
			s.deliver(c)
			// the buffer was full at some point; once it has drained, tell
			// the subscriber it missed something
			if len(s.changes) == 0 && s.dropped.CompareAndSwap(true, false) {
				s.deliver(Change{Table: s.table, Op: OpAll, At: time.Now().UTC()})
			}
		case <-s.done:
			return
		}
	}
}

func (s *Subscription) deliver(c Change) {
	select {
	case <-s.done:
		return
	default:
	}
	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorw("feed handler panicked", "channel", s.channel, "table", s.table, "panic", r)
		}
	}()
	s.handler(c)
}
