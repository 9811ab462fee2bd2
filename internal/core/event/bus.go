package event

import (
	"reflect"
	"sync"
)

type topic struct {
	front    []any
	back     []any
	handlers []func(any)
}

// Bus is a double-buffered event bus. Events emitted in tick N are readable
// in tick N+1. SwapBuffers is called at tick start by the event system.
// Topics dispatch in the order they were first seen so replays are
// deterministic.
type Bus struct {
	mu     sync.Mutex // only protects handler registration
	index  map[reflect.Type]int
	topics []*topic
}

func NewBus() *Bus {
	return &Bus{index: make(map[reflect.Type]int)}
}

func (b *Bus) topic(t reflect.Type) *topic {
	i, ok := b.index[t]
	if !ok {
		i = len(b.topics)
		b.index[t] = i
		b.topics = append(b.topics, &topic{})
	}
	return b.topics[i]
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event into the back buffer (will be readable next tick).
func Emit[T any](b *Bus, event T) {
	q := b.topic(typeOf[T]())
	q.back = append(q.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.topic(typeOf[T]())
	q.handlers = append(q.handlers, func(ev any) { fn(ev.(T)) })
}

// Pending is the number of events of type T waiting for the next swap.
func Pending[T any](b *Bus) int {
	i, ok := b.index[typeOf[T]()]
	if !ok {
		return 0
	}
	return len(b.topics[i].back)
}

// SwapBuffers rotates back→front and clears the new back buffer.
// Called once at tick start.
func (b *Bus) SwapBuffers() {
	for _, q := range b.topics {
		q.front, q.back = q.back, q.front[:0]
	}
}

// DispatchAll delivers all front-buffer events to their subscribed handlers.
func (b *Bus) DispatchAll() {
	for _, q := range b.topics {
		for _, ev := range q.front {
			for _, h := range q.handlers {
				h(ev)
			}
		}
	}
}
