package sim

import (
	"sort"
	"sync"
)

type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerRelease
)

func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerRelease:
		return "release"
	default:
		return "unknown"
	}
}

// PointerEvent carries arena-local coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

func Press(x, y float64) PointerEvent   { return PointerEvent{Kind: PointerPress, X: x, Y: y} }
func Release(x, y float64) PointerEvent { return PointerEvent{Kind: PointerRelease, X: x, Y: y} }

// PointerSource delivers pointer events to subscribed listeners until the
// returned unsubscribe func is called.
type PointerSource interface {
	Subscribe(fn func(PointerEvent)) (unsubscribe func())
}

// PointerHub is the listener registry a host publishes its pointer events to.
type PointerHub struct {
	mu       sync.Mutex
	next     int
	handlers map[int]func(PointerEvent)
}

func NewPointerHub() *PointerHub {
	return &PointerHub{handlers: make(map[int]func(PointerEvent))}
}

func (h *PointerHub) Subscribe(fn func(PointerEvent)) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.handlers[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.handlers, id)
			h.mu.Unlock()
		})
	}
}

// Publish calls every listener in subscription order. Listeners run
// outside the hub lock and may unsubscribe themselves.
func (h *PointerHub) Publish(ev PointerEvent) {
	h.mu.Lock()
	ids := make([]int, 0, len(h.handlers))
	for id := range h.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(PointerEvent), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, h.handlers[id])
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Listeners returns the number of live subscriptions.
func (h *PointerHub) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handlers)
}
