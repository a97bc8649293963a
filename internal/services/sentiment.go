package services

import (
	"encoding/json"
	"strings"

	"github.com/gmbdash/gmb-backend/internal/models"
)

// Fallback emotion notes, distinguishing "no JSON found" from "JSON found
// but unparsable".
const (
	emotionNoJSON  = "Analysis provided in explanation"
	emotionBadJSON = "Unable to parse structured response"
	fallbackLabel  = "neutral"
	fallbackConfid = 70
)

// ExtractSentiment converts the model's free-form answer into a
// SentimentResult. The candidate JSON object is the greedy span from the
// first '{' to the last '}'. On success the parsed values are returned
// verbatim (parsed=true); otherwise a fallback result carrying the full raw
// text as explanation is returned (parsed=false). It never fails.
func ExtractSentiment(raw string) (models.SentimentResult, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return fallbackResult(raw, emotionNoJSON), false
	}

	var result models.SentimentResult
	if err := json.Unmarshal([]byte(raw[start:end+1]), &result); err != nil {
		return fallbackResult(raw, emotionBadJSON), false
	}
	if result.Keywords == nil {
		result.Keywords = []string{}
	}
	return result, true
}

func fallbackResult(raw, emotion string) models.SentimentResult {
	return models.SentimentResult{
		Sentiment:   fallbackLabel,
		Confidence:  fallbackConfid,
		Explanation: raw,
		Keywords:    []string{},
		Emotion:     emotion,
	}
}
