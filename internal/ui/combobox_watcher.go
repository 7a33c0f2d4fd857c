package ui

import (
	"fmt"

	"go.uber.org/zap"

	"fixdesk/internal/debug"
)

// PointerBus is the shared pointer listener for a screen. The screen routes
// every pointer press through it, and open pickers subscribe so they can
// learn about presses that land outside their bounds.
type PointerBus struct {
	order []string
	subs  map[string]*Subscription
}

// Subscription is a live registration on a PointerBus. It is released
// exactly once; later Release calls are no-ops.
type Subscription struct {
	bus      *PointerBus
	id       string
	released bool
}

// NewPointerBus returns an empty bus.
func NewPointerBus() *PointerBus {
	return &PointerBus{subs: make(map[string]*Subscription)}
}

// Subscribe registers id. It fails if id already holds a subscription so a
// control can never be attached twice.
func (b *PointerBus) Subscribe(id string) (*Subscription, error) {
	if _, ok := b.subs[id]; ok {
		return nil, fmt.Errorf("pointer listener %s already subscribed", id)
	}
	sub := &Subscription{bus: b, id: id}
	b.subs[id] = sub
	b.order = append(b.order, id)
	return sub, nil
}

// Listening reports whether id currently holds a subscription.
func (b *PointerBus) Listening(id string) bool {
	if b == nil {
		return false
	}
	_, ok := b.subs[id]
	return ok
}

// Listeners returns subscribed ids in subscription order.
func (b *PointerBus) Listeners() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Len returns the number of live subscriptions.
func (b *PointerBus) Len() int {
	if b == nil {
		return 0
	}
	return len(b.subs)
}

// Release removes the subscription from its bus.
func (s *Subscription) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	delete(s.bus.subs, s.id)
	for i, id := range s.bus.order {
		if id == s.id {
			s.bus.order = append(s.bus.order[:i], s.bus.order[i+1:]...)
			break
		}
	}
}

// outsideWatcher binds one picker's subscription lifetime to its open state.
type outsideWatcher struct {
	bus *PointerBus
	sub *Subscription
}

func (w *outsideWatcher) acquire(id string) {
	if w.active() {
		return
	}
	sub, err := w.bus.Subscribe(id)
	if err != nil {
		debug.Warn("pointer subscribe failed", zap.String("picker", id), zap.Error(err))
		return
	}
	w.sub = sub
	debug.Debug("pointer watcher acquired", zap.String("picker", id), zap.Int("listeners", w.bus.Len()))
}

func (w *outsideWatcher) release() {
	if !w.active() {
		w.sub = nil
		return
	}
	id := w.sub.id
	w.sub.Release()
	w.sub = nil
	debug.Debug("pointer watcher released", zap.String("picker", id), zap.Int("listeners", w.bus.Len()))
}

func (w outsideWatcher) active() bool {
	return w.sub != nil && !w.sub.released
}
