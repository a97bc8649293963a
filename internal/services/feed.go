package services

import "sync"

// FeedEvent is pushed to connected dashboard tabs whenever a post is saved
// to either store.
type FeedEvent struct {
	Type string      `json:"type"` // "file_post" or "mongodb_post"
	Post interface{} `json:"post"`
}

// FeedHub fans saved-post events out to WebSocket subscribers. Delivery is
// best-effort: a subscriber whose buffer is full misses the event rather
// than blocking the save path.
type FeedHub struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[int]chan FeedEvent
}

func NewFeedHub() *FeedHub {
	return &FeedHub{subscribers: make(map[int]chan FeedEvent)}
}

// Subscribe registers a listener and returns its channel plus an
// unsubscribe function. The channel is closed on unsubscribe.
func (h *FeedHub) Subscribe() (<-chan FeedEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan FeedEvent, 8)
	h.subscribers[id] = ch

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subscribers[id]; ok {
			delete(h.subscribers, id)
			close(sub)
		}
	}
}

// Broadcast delivers evt to every subscriber that has buffer space.
func (h *FeedHub) Broadcast(evt FeedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subscribers {
		select {
		case ch <- evt:
		default:
		}
	}
}
