package services

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/gmbdash/gmb-backend/internal/models"
)

func TestExtractSentimentEmbeddedJSON(t *testing.T) {
	t.Parallel()

	original := models.SentimentResult{
		Sentiment:   "positive",
		Confidence:  92,
		Explanation: "Glowing language throughout",
		Keywords:    []string{"love", "amazing"},
		Emotion:     "enthusiastic",
	}
	encoded, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Models tend to wrap the JSON in prose; extraction must survive that.
	raw := "Here is my analysis:\n\n" + string(encoded) + "\n\nLet me know if you need more detail."

	result, parsed := ExtractSentiment(raw)
	if !parsed {
		t.Fatalf("expected parsed result")
	}
	if !reflect.DeepEqual(result, original) {
		t.Fatalf("round trip mismatch: got %+v want %+v", result, original)
	}
}

func TestExtractSentimentNoJSON(t *testing.T) {
	t.Parallel()

	raw := "The review reads as mostly positive with some reservations."
	result, parsed := ExtractSentiment(raw)
	if parsed {
		t.Fatalf("expected fallback")
	}
	if result.Sentiment != "neutral" || result.Confidence != 70 {
		t.Fatalf("unexpected fallback values: %+v", result)
	}
	if result.Explanation != raw {
		t.Fatalf("fallback explanation must carry the full raw text, got %q", result.Explanation)
	}
	if result.Keywords == nil || len(result.Keywords) != 0 {
		t.Fatalf("fallback keywords must be empty, got %v", result.Keywords)
	}
	if result.Emotion != "Analysis provided in explanation" {
		t.Fatalf("unexpected emotion note %q", result.Emotion)
	}
}

func TestExtractSentimentMalformedJSON(t *testing.T) {
	t.Parallel()

	raw := `Sure: {"sentiment": "positive", "confidence": not-a-number}`
	result, parsed := ExtractSentiment(raw)
	if parsed {
		t.Fatalf("expected fallback")
	}
	if result.Sentiment != "neutral" || result.Confidence != 70 {
		t.Fatalf("unexpected fallback values: %+v", result)
	}
	if result.Explanation != raw {
		t.Fatalf("fallback explanation must carry the full raw text")
	}
	if result.Emotion != "Unable to parse structured response" {
		t.Fatalf("unexpected emotion note %q", result.Emotion)
	}
}

func TestExtractSentimentConfidenceAsString(t *testing.T) {
	t.Parallel()

	raw := `{"sentiment": "negative", "confidence": "85", "explanation": "harsh wording", "keywords": ["broken"], "emotion": "frustration"}`
	result, parsed := ExtractSentiment(raw)
	if !parsed {
		t.Fatalf("numeric-string confidence should still parse")
	}
	if result.Confidence != 85 {
		t.Fatalf("expected coerced confidence 85, got %d", result.Confidence)
	}
}

func TestExtractSentimentMissingOptionalFields(t *testing.T) {
	t.Parallel()

	raw := `{"sentiment": "happy"}`
	result, parsed := ExtractSentiment(raw)
	if !parsed {
		t.Fatalf("sparse object should parse")
	}
	if result.Sentiment != "happy" {
		t.Fatalf("unexpected sentiment %q", result.Sentiment)
	}
	if result.Keywords == nil {
		t.Fatalf("keywords must serialize as [], not null")
	}
}
