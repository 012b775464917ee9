package classify

import (
	"strings"
	"testing"

	"triage/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFallbackSentiment(t *testing.T) {
	tests := []struct {
		name              string
		body              string
		expectedSentiment string
	}{
		{
			name:              "negative keywords dominate",
			body:              "The system is down and I cannot access my account, this is a critical problem",
			expectedSentiment: models.SentimentNegative,
		},
		{
			name:              "positive keywords dominate",
			body:              "Thank you so much for the great service, I really appreciate it",
			expectedSentiment: models.SentimentPositive,
		},
		{
			name:              "no keywords is neutral",
			body:              "I changed my email address last week",
			expectedSentiment: models.SentimentNeutral,
		},
		{
			name:              "tie resolves to neutral",
			body:              "Thank you for looking into this problem",
			expectedSentiment: models.SentimentNeutral,
		},
		{
			name:              "matching is case-insensitive",
			body:              "URGENT PROBLEM with the ERROR page",
			expectedSentiment: models.SentimentNegative,
		},
		{
			name:              "empty body is neutral",
			body:              "",
			expectedSentiment: models.SentimentNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FallbackSentiment(tt.body)

			assert.Equal(t, tt.expectedSentiment, result.Sentiment)
			assert.Equal(t, 0.8, result.Confidence)
			assert.Contains(t, result.Reasoning, "Fallback analysis based on keyword detection")
		})
	}
}

func TestFallbackSentiment_ReasoningCounts(t *testing.T) {
	result := FallbackSentiment("urgent problem, thank you")

	assert.Equal(t, models.SentimentNegative, result.Sentiment)
	assert.Equal(t, "Fallback analysis based on keyword detection (2 negative, 1 positive keywords)", result.Reasoning)
}

func TestFallbackPriority(t *testing.T) {
	tests := []struct {
		name             string
		subject          string
		body             string
		expectedPriority string
		expectedKeywords []string
	}{
		{
			name:             "two urgency keywords mean urgent",
			subject:          "URGENT: site down",
			body:             "Please fix immediately",
			expectedPriority: models.PriorityUrgent,
			expectedKeywords: []string{"urgent", "immediately", "down"},
		},
		{
			name:             "single urgency keyword stays normal",
			subject:          "Login broken",
			body:             "It stopped working yesterday",
			expectedPriority: models.PriorityNormal,
			expectedKeywords: []string{"broken"},
		},
		{
			name:             "query without urgency keywords is low",
			subject:          "General query",
			body:             "What are your office hours?",
			expectedPriority: models.PriorityLow,
			expectedKeywords: []string{},
		},
		{
			name:             "query with one urgency keyword is normal",
			subject:          "Query about failed payment",
			body:             "My card was declined",
			expectedPriority: models.PriorityNormal,
			expectedKeywords: []string{"failed"},
		},
		{
			name:             "plain email is normal",
			subject:          "Feedback",
			body:             "Nice product",
			expectedPriority: models.PriorityNormal,
			expectedKeywords: []string{},
		},
		{
			name:             "multi-word keyword matches as phrase",
			subject:          "Help",
			body:             "I cannot access the dashboard, it is blocked",
			expectedPriority: models.PriorityUrgent,
			expectedKeywords: []string{"cannot access", "blocked"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FallbackPriority(tt.subject, tt.body)

			assert.Equal(t, tt.expectedPriority, result.Priority)
			assert.Equal(t, 0.8, result.Confidence)
			assert.ElementsMatch(t, tt.expectedKeywords, result.UrgencyKeywords)
			assert.NotNil(t, result.UrgencyKeywords)
		})
	}
}

func TestFallbackCategory(t *testing.T) {
	tests := []struct {
		name             string
		subject          string
		body             string
		expectedCategory string
	}{
		{
			name:             "billing keywords",
			subject:          "Invoice question",
			body:             "I was charged twice this month",
			expectedCategory: "Billing",
		},
		{
			name:             "account keywords",
			subject:          "Password reset",
			body:             "I cannot log in",
			expectedCategory: "Account",
		},
		{
			name:             "integration keywords",
			subject:          "API rate limits",
			body:             "Our integration is hitting limits",
			expectedCategory: "Integration",
		},
		{
			name:             "refund keyword",
			subject:          "Refund request",
			body:             "I would like my money back",
			expectedCategory: "Refund",
		},
		{
			name:             "pricing keywords",
			subject:          "Pricing for enterprise plan",
			body:             "How much does it cost?",
			expectedCategory: "Sales",
		},
		{
			name:             "no match defaults to General",
			subject:          "Hello",
			body:             "Just saying hi",
			expectedCategory: "General",
		},
		{
			name:             "billing wins over account when both match",
			subject:          "Payment failed on my account",
			body:             "Please check",
			expectedCategory: "Billing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FallbackCategory(tt.subject, tt.body)

			assert.Equal(t, tt.expectedCategory, result.Category)
			if tt.expectedCategory == "General" {
				assert.Equal(t, 0.7, result.Confidence)
				assert.Equal(t, "Fallback: Default categorization", result.Reasoning)
			} else {
				assert.Equal(t, 0.8, result.Confidence)
				assert.Contains(t, result.Reasoning, "Fallback: Detected")
			}
		})
	}
}

func TestFallbackExtraction(t *testing.T) {
	t.Run("takes at most three key points", func(t *testing.T) {
		body := "First sentence. Second one! Third point? Fourth gets dropped."
		result := FallbackExtraction(body)

		assert.Equal(t, []string{"First sentence", "Second one", "Third point"}, result.KeyPoints)
		assert.Equal(t, []string{"First sentence"}, result.Requirements)
		assert.Equal(t, []string{}, result.ContactDetails)
		assert.Equal(t, []string{"Customer reaching out for support"}, result.SentimentIndicators)
	})

	t.Run("empty body uses placeholder requirement", func(t *testing.T) {
		result := FallbackExtraction("")

		assert.Empty(t, result.KeyPoints)
		assert.Equal(t, []string{"Customer inquiry needs attention"}, result.Requirements)
	})

	t.Run("whitespace-only fragments are dropped", func(t *testing.T) {
		result := FallbackExtraction("One sentence...   ")

		assert.Equal(t, []string{"One sentence"}, result.KeyPoints)
	})
}

func TestFallbackResponse(t *testing.T) {
	tests := []struct {
		name         string
		sender       string
		sentiment    string
		priority     string
		category     string
		expectedTone string
		contains     []string
		notContains  []string
	}{
		{
			name:         "negative urgent email",
			sender:       "jane@example.com",
			sentiment:    models.SentimentNegative,
			priority:     models.PriorityUrgent,
			category:     "Billing",
			expectedTone: "empathetic",
			contains: []string{
				"Dear jane,",
				"I understand your frustration",
				"high priority",
				"billing inquiry",
			},
		},
		{
			name:         "positive normal email",
			sender:       "bob@example.com",
			sentiment:    models.SentimentPositive,
			priority:     models.PriorityNormal,
			category:     "Sales",
			expectedTone: "professional",
			contains: []string{
				"Dear bob,",
				"I appreciate you reaching out",
				"sales inquiry",
			},
			notContains: []string{"high priority", "frustration"},
		},
		{
			name:         "sender without at sign is used verbatim",
			sender:       "support-desk",
			sentiment:    models.SentimentNeutral,
			priority:     models.PriorityLow,
			category:     "General",
			expectedTone: "professional",
			contains:     []string{"Dear support-desk,"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FallbackResponse(tt.sender, tt.sentiment, tt.priority, tt.category)

			assert.Equal(t, 75, result.QualityScore)
			assert.Equal(t, tt.expectedTone, result.Tone)
			assert.True(t, strings.HasSuffix(result.Content, "Best regards,\nSupport Team"))
			for _, s := range tt.contains {
				assert.Contains(t, result.Content, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, result.Content, s)
			}
		})
	}
}

func TestLocalPart(t *testing.T) {
	assert.Equal(t, "alice", localPart("alice@example.com"))
	assert.Equal(t, "no-at-sign", localPart("no-at-sign"))
	assert.Equal(t, "@leading", localPart("@leading"))
}
