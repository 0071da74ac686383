package event

// Handler receives published events.
type Handler interface {
	HandleEvent(ev Event)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ev Event)

// HandleEvent implements Handler.
func (f HandlerFunc) HandleEvent(ev Event) { f(ev) }

// Subscription identifies one registered handler.
type Subscription struct {
	id      uint64
	topic   Topic
	handler Handler
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() Topic { return s.topic }

// Stats reports bus activity counters.
type Stats struct {
	EventsPublished   uint64
	EventsDelivered   uint64
	HandlerPanics     uint64
	ActiveSubscribers int
}

// Bus delivers events to subscribers synchronously, in subscription
// order, on the publisher's goroutine. The engine is single-threaded,
// so there is no queueing and no locking: by the time Publish returns,
// every handler has observed the event.
//
// The subscriber list is copy-on-write, so handlers may subscribe or
// unsubscribe (including themselves) during dispatch; such changes take
// effect for the next publish.
type Bus struct {
	subs   []*Subscription
	nextID uint64

	eventsPublished uint64
	eventsDelivered uint64
	handlerPanics   uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for a topic. TopicAll receives every
// event. A nil handler is ignored and returns a nil subscription.
func (b *Bus) Subscribe(topic Topic, handler Handler) *Subscription {
	if handler == nil {
		return nil
	}
	b.nextID++
	sub := &Subscription{id: b.nextID, topic: topic, handler: handler}

	next := make([]*Subscription, len(b.subs)+1)
	copy(next, b.subs)
	next[len(b.subs)] = sub
	b.subs = next
	return sub
}

// SubscribeFunc is a convenience method for subscribing with a function
// handler.
func (b *Bus) SubscribeFunc(topic Topic, fn HandlerFunc) *Subscription {
	if fn == nil {
		return nil
	}
	return b.Subscribe(topic, fn)
}

// Unsubscribe removes a subscription. Unknown or nil subscriptions are
// ignored.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	for i, s := range b.subs {
		if s == sub {
			next := make([]*Subscription, 0, len(b.subs)-1)
			next = append(next, b.subs[:i]...)
			next = append(next, b.subs[i+1:]...)
			b.subs = next
			return
		}
	}
}

// Publish delivers the event to every matching subscriber before
// returning. A panicking handler is contained and counted; the
// remaining handlers still run.
func (b *Bus) Publish(ev Event) {
	if ev == nil {
		return
	}
	b.eventsPublished++

	topic := ev.EventTopic()
	for _, sub := range b.subs {
		if sub.topic != topic && sub.topic != TopicAll {
			continue
		}
		b.deliver(sub, ev)
	}
}

func (b *Bus) deliver(sub *Subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics++
		}
	}()
	sub.handler.HandleEvent(ev)
	b.eventsDelivered++
}

// Stats returns current bus statistics.
func (b *Bus) Stats() Stats {
	return Stats{
		EventsPublished:   b.eventsPublished,
		EventsDelivered:   b.eventsDelivered,
		HandlerPanics:     b.handlerPanics,
		ActiveSubscribers: len(b.subs),
	}
}
