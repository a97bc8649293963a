package services

import "fmt"

// Token budgets for the two Anthropic calls.
const (
	PostMaxTokens      = 300
	SentimentMaxTokens = 500
)

// PostPrompt builds the instruction for generating a Google Business Profile
// post. Both values are embedded verbatim; the prompt is free text.
func PostPrompt(businessType, offer string) string {
	return fmt.Sprintf("Generate a Google Business Profile post for a %s offering %s. Include emojis and CTA.", businessType, offer)
}

// ImagePrompt builds the instruction for the promotional banner rendering.
func ImagePrompt(businessType, offer string) string {
	return fmt.Sprintf(`Create a professional promotional banner for a %s.
Highlight this offer clearly: %q.
Modern design, high resolution, marketing style,
bright lighting, realistic, social media ready.`, businessType, offer)
}

// SentimentPrompt asks the model for a sentiment analysis of review and
// requests a JSON response shape. The model is not guaranteed to honor the
// requested shape; see ExtractSentiment.
func SentimentPrompt(review string) string {
	return fmt.Sprintf(`Analyze the sentiment of this product review and provide a detailed analysis.

Review: %q

Please provide:
1. Overall sentiment (e.g., positive, negative, neutral, happy, sad, frustrated, satisfied, disappointed)
2. Confidence level (0-100%%)
3. A brief explanation of why you classified it this way
4. Key emotional phrases or words that influenced your decision (up to 5 keywords)
5. The predominant emotion detected

Format your response as JSON with this structure:
{
  "sentiment": "positive/negative/neutral/happy/sad/etc",
  "confidence": 85,
  "explanation": "Brief explanation here",
  "keywords": ["keyword1", "keyword2"],
  "emotion": "The emotional tone description"
}`, review)
}
