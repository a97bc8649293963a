package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gmbdash/gmb-backend/internal/services"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// FeedHandler serves the live post feed for open dashboard tabs.
type FeedHandler struct {
	Feed *services.FeedHub
}

// PostsFeed handles GET /ws/posts: every post saved to either store is
// pushed to the connection as a FeedEvent. One-way; client frames are read
// only to detect disconnects.
func (h *FeedHandler) PostsFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, unsubscribe := h.Feed.Subscribe()
	defer unsubscribe()

	// Reader goroutine: drain client frames, close events delivery on error.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case evt, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
