package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Confidence is a 0-100 confidence value. Providers sometimes return it as a
// quoted string ("85") instead of a number, so decoding accepts both.
type Confidence int

func (c *Confidence) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*c = Confidence(int(f))
	return nil
}

func (c Confidence) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(c))
}

// SentimentResult is the structured shape extracted from the model's
// sentiment analysis. Every field is advisory: values are returned to the
// caller as the model produced them, without range or enum validation.
type SentimentResult struct {
	Sentiment   string     `json:"sentiment"`
	Confidence  Confidence `json:"confidence"`
	Explanation string     `json:"explanation"`
	Keywords    []string   `json:"keywords"`
	Emotion     string     `json:"emotion"`
}
