package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gmbdash/gmb-backend/internal/services"
)

// AnalyzeSentimentRequest is the JSON body for POST /analyze-sentiment.
type AnalyzeSentimentRequest struct {
	Review string `json:"review"`
}

// SentimentHandler serves the sentiment-analysis endpoint.
type SentimentHandler struct {
	Anthropic *services.AnthropicClient
}

// AnalyzeSentiment handles POST /analyze-sentiment: prompt the model for a
// structured opinion, then extract the JSON shape best-effort. A
// non-conformant model answer degrades to the fallback result, never to an
// error.
func (h *SentimentHandler) AnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req AnalyzeSentimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Review) == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "Review text is required"})
		return
	}

	raw, err := h.Anthropic.Complete(r.Context(), services.SentimentPrompt(req.Review), services.SentimentMaxTokens)
	if err != nil {
		log.Printf("Sentiment analysis error: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   "Sentiment analysis failed",
			"details": err.Error(),
		})
		return
	}

	result, parsed := services.ExtractSentiment(raw)
	if !parsed {
		log.Printf("Sentiment response was not structured; returning fallback")
	}
	json.NewEncoder(w).Encode(result)
}
