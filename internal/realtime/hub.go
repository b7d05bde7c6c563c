package realtime

import "sync"

// Subscriber is one live connection attached to an identity channel. Send
// must not block; it reports false when the event was dropped (dead or
// saturated connection).
type Subscriber interface {
	Send(ev Event) bool
}

// Hub is the process-wide channel registry: identity -> set of live
// subscribers. Created once at startup; entries are pruned as connections
// leave. An identity may hold several concurrent connections (multi-device)
// and a broadcast reaches all of them.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[Subscriber]struct{}
}

// NewHub creates an empty registry.
func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[Subscriber]struct{})}
}

// Join subscribes a connection to the identity's channel.
func (h *Hub) Join(identity string, sub Subscriber) {
	if identity == "" || sub == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.channels[identity]
	if !ok {
		set = make(map[Subscriber]struct{})
		h.channels[identity] = set
	}
	set[sub] = struct{}{}
}

// Leave removes a connection from the identity's channel, pruning the
// channel when it empties.
func (h *Hub) Leave(identity string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.channels[identity]
	if !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.channels, identity)
	}
}

// Broadcast delivers the event to every connection of one identity,
// at-most-once, best-effort. Returns the number of connections that accepted
// the event; zero when the identity has no live connections.
func (h *Hub) Broadcast(identity string, ev Event) int {
	h.mu.RLock()
	subs := make([]Subscriber, 0, len(h.channels[identity]))
	for sub := range h.channels[identity] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, sub := range subs {
		if sub.Send(ev) {
			delivered++
		}
	}
	return delivered
}

// BroadcastAll delivers the event to every live connection on every channel.
func (h *Hub) BroadcastAll(ev Event) {
	h.mu.RLock()
	var subs []Subscriber
	for _, set := range h.channels {
		for sub := range set {
			subs = append(subs, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		sub.Send(ev)
	}
}

// Connections reports the number of live connections on one channel.
func (h *Hub) Connections(identity string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[identity])
}
