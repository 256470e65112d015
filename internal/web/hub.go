package web

import (
	"strconv"
	"sync"
)

// Hub fans out change notifications to live SSE streams. Mutations on any
// surface (REST API, web forms, CLI against the same database) call
// Invalidate; every subscribed view re-renders from the store.
type Hub struct {
	mu      sync.Mutex
	subs    map[chan struct{}]struct{}
	version uint64
}

func NewHub() *Hub {
	return &Hub{subs: map[chan struct{}]struct{}{}}
}

func (h *Hub) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}
}

// Invalidate wakes every subscriber. Sends never block; a slow stream
// just coalesces notifications.
func (h *Hub) Invalidate() {
	h.mu.Lock()
	h.version++
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}

// Version increments on every invalidation; streams publish it as a
// signal so a reconnecting client can tell whether it missed updates.
func (h *Hub) Version() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return strconv.FormatUint(h.version, 10)
}
