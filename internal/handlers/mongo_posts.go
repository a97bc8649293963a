package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gmbdash/gmb-backend/internal/services"
)

// MongoPostRequest is the JSON body for POST /post-to-mongodb.
type MongoPostRequest struct {
	BusinessType  string  `json:"businessType"`
	Offer         string  `json:"offer"`
	GeneratedPost string  `json:"generatedPost"`
	ImageURL      *string `json:"imageUrl"`
}

// MongoPostsHandler serves the MongoDB post collection. Store is nil when
// the database was unreachable at startup; the endpoints then answer 500
// while the rest of the API keeps working.
type MongoPostsHandler struct {
	Store *services.PostStore
	Feed  *services.FeedHub
}

// PostToMongo handles POST /post-to-mongodb.
func (h *MongoPostsHandler) PostToMongo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req MongoPostRequest
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
	if h.Store == nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "Database not available"})
		return
	}

	post, err := h.Store.Create(r.Context(), req.BusinessType, req.Offer, req.GeneratedPost, req.ImageURL)
	if err != nil {
		log.Printf("Error saving to MongoDB: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   "Failed to save post to MongoDB",
			"details": err.Error(),
		})
		return
	}

	if h.Feed != nil {
		h.Feed.Broadcast(services.FeedEvent{Type: "mongodb_post", Post: post})
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Post saved to MongoDB successfully!",
		"postId":  post.ID.Hex(),
		"post":    post,
	})
}

// ListMongoPosts handles GET /mongodb-posts.
func (h *MongoPostsHandler) ListMongoPosts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.Store == nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "Database not available"})
		return
	}

	posts, err := h.Store.ListRecent(r.Context())
	if err != nil {
		log.Printf("Error retrieving posts from MongoDB: %v", err)
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
