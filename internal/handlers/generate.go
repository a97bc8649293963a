package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gmbdash/gmb-backend/internal/services"
)

// GenerateRequest is the JSON body shared by the generation endpoints.
type GenerateRequest struct {
	BusinessType string `json:"businessType"`
	Offer        string `json:"offer"`
}

// GenerateHandler serves the endpoints that call the upstream generation
// providers. Cloudinary is optional; when nil the provider's own image URL
// is returned as-is.
type GenerateHandler struct {
	Anthropic  *services.AnthropicClient
	OpenAI     *services.OpenAIClient
	Cloudinary *services.CloudinaryService
}

// GeneratePost handles POST /generate-post.
func (h *GenerateHandler) GeneratePost(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "Invalid request body"})
		return
	}

	post, err := h.Anthropic.Complete(r.Context(), services.PostPrompt(req.BusinessType, req.Offer), services.PostMaxTokens)
	if err != nil {
		log.Printf("Post generation error: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": err.Error()})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"post": post})
}

// GenerateImage handles POST /generate-image.
func (h *GenerateHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "Invalid request body"})
		return
	}
	if req.BusinessType == "" || req.Offer == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "businessType and offer are required"})
		return
	}

	imageURL, err := h.generateImage(r.Context(), req.BusinessType, req.Offer)
	if err != nil {
		log.Printf("Image generation error: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   "Image generation failed",
			"details": err.Error(),
			"type":    services.ErrorKind(err),
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"imageUrl": imageURL,
	})
}

// GenerateContentResponse is the partial-success body of POST
// /generate-content: each branch reports its result or its error
// independently.
type GenerateContentResponse struct {
	Post       string `json:"post,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	PostError  string `json:"postError,omitempty"`
	ImageError string `json:"imageError,omitempty"`
}

// GenerateContent handles POST /generate-content: text and image generation
// run concurrently, and a failure in one branch never cancels the other.
// The response is 200 as long as at least one branch succeeded.
func (h *GenerateHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "Invalid request body"})
		return
	}
	if req.BusinessType == "" || req.Offer == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "businessType and offer are required"})
		return
	}

	var (
		wg       sync.WaitGroup
		post     string
		postErr  error
		imageURL string
		imageErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		post, postErr = h.Anthropic.Complete(r.Context(), services.PostPrompt(req.BusinessType, req.Offer), services.PostMaxTokens)
	}()
	go func() {
		defer wg.Done()
		imageURL, imageErr = h.generateImage(r.Context(), req.BusinessType, req.Offer)
	}()
	wg.Wait()

	resp := GenerateContentResponse{Post: post, ImageURL: imageURL}
	if postErr != nil {
		log.Printf("Post generation error: %v", postErr)
		resp.PostError = postErr.Error()
	}
	if imageErr != nil {
		log.Printf("Image generation error: %v", imageErr)
		resp.ImageError = imageErr.Error()
	}
	if postErr != nil && imageErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(resp)
}

// TestOpenAI handles GET /test-openai.
func (h *GenerateHandler) TestOpenAI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	output, err := h.OpenAI.Respond(r.Context(), "Say hello")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"output":  output,
	})
}

// generateImage requests the rendering and, when Cloudinary is configured,
// re-hosts the short-lived provider URL. A mirroring failure is logged but
// does not fail the request.
func (h *GenerateHandler) generateImage(ctx context.Context, businessType, offer string) (string, error) {
	imageURL, err := h.OpenAI.GenerateImage(ctx, services.ImagePrompt(businessType, offer))
	if err != nil {
		return "", err
	}
	if h.Cloudinary != nil {
		mirrored, err := h.Cloudinary.MirrorImage(ctx, imageURL)
		if err != nil {
			log.Printf("Cloudinary mirror error: %v", err)
			return imageURL, nil
		}
		return mirrored, nil
	}
	return imageURL, nil
}
