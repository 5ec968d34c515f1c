package events

import (
	"fmt"
	"regexp"
	"sync"
)

// Handler receives the payload published on a matching topic. A returned error
// aborts the delivery and surfaces to the publisher.
type Handler func(payload any) error

// Topic selects published topic names either by exact string or by pattern.
type Topic struct {
	exact   string
	pattern *regexp.Regexp
}

// Exact matches a single topic name.
func Exact(name string) Topic {
	return Topic{exact: name}
}

// Pattern matches every topic name the expression matches.
func Pattern(re *regexp.Regexp) Topic {
	if re == nil {
		panic("events: nil pattern")
	}
	return Topic{pattern: re}
}

// MustPattern compiles expr and returns a pattern topic.
func MustPattern(expr string) Topic {
	return Pattern(regexp.MustCompile(expr))
}

// IsPattern reports whether the topic matches by expression.
func (t Topic) IsPattern() bool {
	return t.pattern != nil
}

// Matches reports whether a published topic name is selected by t.
func (t Topic) Matches(name string) bool {
	if t.pattern != nil {
		return t.pattern.MatchString(name)
	}
	return t.exact == name
}

func (t Topic) String() string {
	if t.pattern != nil {
		return "/" + t.pattern.String() + "/"
	}
	return t.exact
}

// Subscription identifies one Subscribe call. Unsubscribe takes it back.
type Subscription struct {
	id    uint64
	topic Topic
}

// Topic returns the topic the subscription was registered for.
func (s Subscription) Topic() Topic {
	return s.topic
}

// Observer is notified of bus activity; metrics plug in here.
type Observer interface {
	Delivered(topic string, handlers int)
	HandlerFailed(topic string)
}

type subscriber struct {
	id      uint64
	topic   Topic
	handler Handler
}

type delivery struct {
	topic    string
	payload  any
	handlers []Handler
}

// Bus is a synchronous topic bus. Handlers run on the publisher's goroutine in
// subscription order; publishes made from inside a handler are queued and
// delivered once the running delivery has finished.
type Bus struct {
	mu          sync.Mutex
	nextID      uint64
	exact       map[string][]subscriber
	patterns    []subscriber
	queue       []delivery
	dispatching bool
	observer    Observer
}

// Option configures a Bus.
type Option func(*Bus)

// WithObserver attaches an Observer to the bus.
func WithObserver(o Observer) Option {
	return func(b *Bus) {
		b.observer = o
	}
}

// NewBus builds an empty bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{exact: make(map[string][]subscriber)}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Subscribe registers handler for topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) Subscription {
	if handler == nil {
		panic("events: nil handler")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := subscriber{id: b.nextID, topic: topic, handler: handler}
	if topic.IsPattern() {
		b.patterns = append(b.patterns, sub)
	} else {
		b.exact[topic.exact] = append(b.exact[topic.exact], sub)
	}
	return Subscription{id: sub.id, topic: topic}
}

// On subscribes handler to an exact topic name.
func (b *Bus) On(name string, handler Handler) Subscription {
	return b.Subscribe(Exact(name), handler)
}

// Unsubscribe removes the subscription. Unknown or already removed
// subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.topic.IsPattern() {
		b.patterns = without(b.patterns, sub.id)
		return
	}
	remaining := without(b.exact[sub.topic.exact], sub.id)
	if len(remaining) == 0 {
		delete(b.exact, sub.topic.exact)
		return
	}
	b.exact[sub.topic.exact] = remaining
}

// Publish delivers payload to every handler whose topic selects name. When
// called from inside a handler the delivery is queued and Publish returns nil;
// the outermost Publish drains the queue and returns the first handler error,
// dropping whatever was still queued.
func (b *Bus) Publish(name string, payload any) error {
	b.mu.Lock()
	d := delivery{topic: name, payload: payload, handlers: b.matchLocked(name)}
	if b.dispatching {
		b.queue = append(b.queue, d)
		b.mu.Unlock()
		return nil
	}
	b.dispatching = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.dispatching = false
		b.queue = nil
		b.mu.Unlock()
	}()

	for {
		if err := b.deliver(d); err != nil {
			return err
		}
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.mu.Unlock()
			return nil
		}
		d = b.queue[0]
		b.queue = b.queue[1:]
		b.mu.Unlock()
	}
}

// HasSubscribers reports whether any subscription selects name.
func (b *Bus) HasSubscribers(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.matchLocked(name)) > 0
}

func (b *Bus) deliver(d delivery) error {
	if b.observer != nil {
		b.observer.Delivered(d.topic, len(d.handlers))
	}
	for _, handler := range d.handlers {
		if err := handler(d.payload); err != nil {
			if b.observer != nil {
				b.observer.HandlerFailed(d.topic)
			}
			return fmt.Errorf("handle %s: %w", d.topic, err)
		}
	}
	return nil
}

// matchLocked snapshots the handlers for name in subscription order. The exact
// bucket is a map hit; only patterns are tested one by one.
func (b *Bus) matchLocked(name string) []Handler {
	exact := b.exact[name]
	handlers := make([]Handler, 0, len(exact)+len(b.patterns))
	i := 0
	for _, sub := range b.patterns {
		if !sub.topic.Matches(name) {
			continue
		}
		for i < len(exact) && exact[i].id < sub.id {
			handlers = append(handlers, exact[i].handler)
			i++
		}
		handlers = append(handlers, sub.handler)
	}
	for ; i < len(exact); i++ {
		handlers = append(handlers, exact[i].handler)
	}
	return handlers
}

func without(subs []subscriber, id uint64) []subscriber {
	for i, sub := range subs {
		if sub.id == id {
			out := make([]subscriber, 0, len(subs)-1)
			out = append(out, subs[:i]...)
			return append(out, subs[i+1:]...)
		}
	}
	return subs
}
