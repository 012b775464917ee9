package classify

import (
	"fmt"
	"strings"

	"triage/internal/models"
)

// Keyword sets driving the deterministic fallback analyses. Matching is a
// case-insensitive substring scan over the email text.
var (
	negativeKeywords = []string{"urgent", "critical", "cannot", "problem", "error", "issue", "down", "broken", "failed"}
	positiveKeywords = []string{"thank", "please", "help", "appreciate", "good", "great"}

	urgencyKeywords = []string{"urgent", "critical", "immediately", "asap", "emergency", "down", "cannot access", "blocked", "broken", "failed"}

	// Ordered category buckets; the first matching bucket wins.
	categoryBuckets = []struct {
		keywords []string
		category string
	}{
		{[]string{"billing", "payment", "charge", "invoice"}, "Billing"},
		{[]string{"login", "password", "access", "account"}, "Account"},
		{[]string{"integration", "api"}, "Integration"},
		{[]string{"refund"}, "Refund"},
		{[]string{"pricing", "price"}, "Sales"},
	}
)

// countMatches returns how many of the keywords occur in text.
func countMatches(text string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			count++
		}
	}
	return count
}

// FallbackSentiment classifies sentiment by comparing negative and positive
// keyword hits; ties resolve to neutral.
func FallbackSentiment(body string) models.SentimentResult {
	text := strings.ToLower(body)
	negativeCount := countMatches(text, negativeKeywords)
	positiveCount := countMatches(text, positiveKeywords)

	sentiment := models.SentimentNeutral
	if negativeCount > positiveCount {
		sentiment = models.SentimentNegative
	} else if positiveCount > negativeCount {
		sentiment = models.SentimentPositive
	}

	return models.SentimentResult{
		Sentiment:  sentiment,
		Confidence: 0.8,
		Reasoning:  fmt.Sprintf("Fallback analysis based on keyword detection (%d negative, %d positive keywords)", negativeCount, positiveCount),
	}
}

// FallbackPriority classifies priority from urgency keywords in the combined
// subject and body: two or more distinct hits mean urgent, none plus the
// word "query" means low, anything else normal.
func FallbackPriority(subject, body string) models.PriorityResult {
	text := strings.ToLower(subject + " " + body)

	found := []string{}
	for _, keyword := range urgencyKeywords {
		if strings.Contains(text, keyword) {
			found = append(found, keyword)
		}
	}

	priority := models.PriorityNormal
	if len(found) >= 2 {
		priority = models.PriorityUrgent
	} else if len(found) == 0 && strings.Contains(text, "query") {
		priority = models.PriorityLow
	}

	return models.PriorityResult{
		Priority:        priority,
		Confidence:      0.8,
		Reasoning:       "Fallback analysis based on keyword detection",
		UrgencyKeywords: found,
	}
}

// FallbackCategory buckets the email by the first matching keyword group.
func FallbackCategory(subject, body string) models.CategoryResult {
	text := strings.ToLower(subject + " " + body)

	for _, bucket := range categoryBuckets {
		for _, keyword := range bucket.keywords {
			if strings.Contains(text, keyword) {
				return models.CategoryResult{
					Category:   bucket.category,
					Confidence: 0.8,
					Reasoning:  fmt.Sprintf("Fallback: Detected %s-related keywords", strings.ToLower(bucket.category)),
				}
			}
		}
	}

	return models.CategoryResult{
		Category:   "General",
		Confidence: 0.7,
		Reasoning:  "Fallback: Default categorization",
	}
}

// FallbackExtraction takes the first sentences of the body as key points.
func FallbackExtraction(body string) models.ExtractedInfoResult {
	sentences := splitSentences(body)

	keyPoints := sentences
	if len(keyPoints) > 3 {
		keyPoints = keyPoints[:3]
	}

	requirements := []string{"Customer inquiry needs attention"}
	if len(keyPoints) > 0 {
		requirements = []string{keyPoints[0]}
	}

	return models.ExtractedInfoResult{
		ContactDetails:      []string{},
		Requirements:        requirements,
		SentimentIndicators: []string{"Customer reaching out for support"},
		KeyPoints:           keyPoints,
	}
}

// splitSentences splits on sentence-ending punctuation, trimming whitespace
// and dropping empty fragments.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := []string{}
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// FallbackResponse assembles a templated reply from the classification
// context: greeting from the sender's local part, an empathy or appreciation
// clause, an urgency clause when warranted, and a category-specific body.
func FallbackResponse(sender, sentiment, priority, category string) models.ResponseResult {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("Dear %s,\n\nThank you for contacting our support team. ", localPart(sender)))

	if sentiment == models.SentimentNegative {
		content.WriteString("I understand your frustration, and I sincerely apologize for any inconvenience this may have caused. ")
	} else {
		content.WriteString("I appreciate you reaching out to us. ")
	}

	if priority == models.PriorityUrgent {
		content.WriteString("I've marked your request as high priority and will ensure it receives immediate attention. ")
	}

	content.WriteString(fmt.Sprintf("Based on your %s inquiry, our team will review your request and provide a detailed response within 24 hours.\n\n", strings.ToLower(category)))
	content.WriteString("In the meantime, if you have any urgent questions, please don't hesitate to contact us.\n\n")
	content.WriteString("Best regards,\nSupport Team")

	tone := "professional"
	if sentiment == models.SentimentNegative {
		tone = "empathetic"
	}

	return models.ResponseResult{
		Content:      content.String(),
		QualityScore: 75,
		Tone:         tone,
	}
}

// localPart returns the part of an email address before the @.
func localPart(address string) string {
	if at := strings.Index(address, "@"); at > 0 {
		return address[:at]
	}
	return address
}
