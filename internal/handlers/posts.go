package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gmbdash/gmb-backend/internal/models"
	"github.com/gmbdash/gmb-backend/internal/services"
)

// SavePostRequest is the JSON body for POST /save-post.
type SavePostRequest struct {
	BusinessType  string     `json:"businessType"`
	Offer         string     `json:"offer"`
	GeneratedPost string     `json:"generatedPost"`
	ImageURL      *string    `json:"imageUrl"`
	CreatedAt     *time.Time `json:"createdAt"`
}

// PostsHandler serves the flat-file post collection.
type PostsHandler struct {
	Store *services.FileStore
	Feed  *services.FeedHub
}

// SavePost handles POST /save-post. Validation runs before any write; a
// rejected request leaves the file untouched.
func (h *PostsHandler) SavePost(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req SavePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "Invalid request body"})
		return
	}
	if req.BusinessType == "" || req.Offer == "" || req.GeneratedPost == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "Missing required fields"})
		return
	}

	createdAt := time.Now()
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}
	post := models.FilePost{
		ID:            strconv.FormatInt(time.Now().UnixMilli(), 10),
		BusinessType:  req.BusinessType,
		Offer:         req.Offer,
		GeneratedPost: req.GeneratedPost,
		ImageURL:      req.ImageURL,
		Status:        models.StatusDraft,
		CreatedAt:     createdAt,
	}

	if err := h.Store.Save(post); err != nil {
		log.Printf("Error saving post: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   "Failed to save post",
			"details": err.Error(),
		})
		return
	}

	if h.Feed != nil {
		h.Feed.Broadcast(services.FeedEvent{Type: "file_post", Post: post})
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Post saved successfully",
		"postId":  post.ID,
	})
}

// ListPosts handles GET /posts.
func (h *PostsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	posts, err := h.Store.List()
	if err != nil {
		log.Printf("Error reading posts: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   "Failed to retrieve posts",
			"details": err.Error(),
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"posts":   posts,
		"count":   len(posts),
	})
}
