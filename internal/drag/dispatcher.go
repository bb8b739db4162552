package drag

import "sync"

// Dispatcher is a synchronous EventSource, adapters push the pointer events of
// their rendering surface into it.
type Dispatcher struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(PointerEvent)
}

// NewDispatcher returns a dispatcher without subscribers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[int]func(PointerEvent){}}
}

// Subscribe implements EventSource.
func (d *Dispatcher) Subscribe(handler func(PointerEvent)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	d.handlers[id] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			delete(d.handlers, id)
		})
	}
}

// Dispatch delivers the event to the current subscribers. Handlers may unsubscribe
// while being called.
func (d *Dispatcher) Dispatch(ev PointerEvent) {
	d.mu.Lock()
	handlers := make([]func(PointerEvent), 0, len(d.handlers))
	for _, h := range d.handlers {
		handlers = append(handlers, h)
	}
	d.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

// Subscribers returns the number of active subscriptions.
func (d *Dispatcher) Subscribers() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.handlers)
}
