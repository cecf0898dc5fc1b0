// Package signal provides ordered listener lists with explicit,
// deterministic teardown. Every Listen call returns a Subscription
// handle; callers collect handles and release them on disposal rather
// than relying on garbage collection of listener closures.
//
// Dispatch is synchronous and in registration order. Lists are not
// goroutine-safe; the binding layer is single-goroutine by design.
package signal

import "github.com/oklog/ulid/v2"

// Subscription is a handle to an active listener registration.
type Subscription interface {
	// Unsubscribe stops delivery and releases the listener. Idempotent.
	Unsubscribe()

	// ID returns the unique registration key.
	ID() string
}

// entry pairs a registration key with a callback.
type entry[T any] struct {
	id string
	fn func(T)
}

// List is an ordered listener registry for events of type T.
// The zero value is ready to use.
type List[T any] struct {
	subs []entry[T]
}

// Listen registers fn and returns its teardown handle.
func (l *List[T]) Listen(fn func(T)) Subscription {
	id := ulid.Make().String()
	l.subs = append(l.subs, entry[T]{id: id, fn: fn})
	return &handle[T]{list: l, id: id}
}

// Emit invokes every listener in registration order. The list is
// snapshotted first so listeners may unsubscribe during dispatch.
func (l *List[T]) Emit(v T) {
	snapshot := make([]entry[T], len(l.subs))
	copy(snapshot, l.subs)
	for _, s := range snapshot {
		s.fn(v)
	}
}

// Len returns the number of registered listeners.
func (l *List[T]) Len() int {
	return len(l.subs)
}

func (l *List[T]) remove(id string) {
	for i, s := range l.subs {
		if s.id == id {
			l.subs = append(l.subs[:i], l.subs[i+1:]...)
			return
		}
	}
}

// handle implements Subscription over a List entry.
type handle[T any] struct {
	list *List[T]
	id   string
	done bool
}

func (h *handle[T]) Unsubscribe() {
	if h.done {
		return
	}
	h.done = true
	h.list.remove(h.id)
}

func (h *handle[T]) ID() string {
	return h.id
}

// Group collects subscriptions for bulk teardown, in the manner of an
// adapter owning every listener it registered.
type Group struct {
	subs []Subscription
}

// Add appends subscriptions to the group.
func (g *Group) Add(subs ...Subscription) {
	g.subs = append(g.subs, subs...)
}

// UnsubscribeAll releases every held subscription and empties the group.
func (g *Group) UnsubscribeAll() {
	for _, s := range g.subs {
		s.Unsubscribe()
	}
	g.subs = nil
}

// Len returns the number of held subscriptions.
func (g *Group) Len() int {
	return len(g.subs)
}
