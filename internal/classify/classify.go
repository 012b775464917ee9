// Package classify implements the five email analysis tasks: sentiment,
// priority, category, information extraction and reply drafting. Each task
// asks the model first and substitutes a deterministic keyword analysis when
// the call fails, so no task ever returns an error to the pipeline. Fallback
// results are distinguishable only by their reasoning text.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"triage/internal/models"
	aiclient "triage/internal/openai"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var errNotConfigured = errors.New("OpenAI client not configured")

const (
	sentimentSystemPrompt = "You are a sentiment analysis expert. Analyze the sentiment of customer support emails and provide detailed analysis. " +
		"Respond with JSON in this format: { \"sentiment\": \"positive\"|\"negative\"|\"neutral\", \"confidence\": number, \"reasoning\": string }"

	prioritySystemPrompt = "You are an email priority classification expert. Analyze support emails and classify them as urgent, normal, or low priority. " +
		"Look for keywords like 'immediately', 'critical', 'cannot access', 'down', 'emergency', 'asap', 'urgent'. " +
		"Respond with JSON in this format: { \"priority\": \"urgent\"|\"normal\"|\"low\", \"confidence\": number, \"reasoning\": string, \"urgencyKeywords\": string[] }"

	categorySystemPrompt = "You are an email categorization expert. Categorize support emails into categories like: Technical, Billing, Sales, Account, General, Refund, Integration, Login, etc. " +
		"Respond with JSON in this format: { \"category\": string, \"confidence\": number, \"reasoning\": string }"

	extractionSystemPrompt = "You are an information extraction expert. Extract key information from customer support emails. " +
		"Respond with JSON in this format: { \"contactDetails\": string[], \"requirements\": string[], \"sentimentIndicators\": string[], \"keyPoints\": string[] }"

	responseSystemPrompt = "You are a customer support response expert. Generate professional, empathetic, and context-aware responses to customer emails."
)

// ResponseContext carries the merged classification context into reply
// drafting.
type ResponseContext struct {
	Subject       string
	Body          string
	Sender        string
	Sentiment     string
	Priority      string
	Category      string
	ExtractedInfo models.ExtractedInfoResult
}

// Analyzer runs the classification tasks. A nil client is allowed and makes
// every task take its fallback path.
type Analyzer struct {
	client *aiclient.Client
	logger zerolog.Logger
}

// NewAnalyzer creates a new analyzer. client may be nil when no API key is
// configured.
func NewAnalyzer(client *aiclient.Client, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		client: client,
		logger: logger,
	}
}

// complete runs one JSON-mode completion, or fails fast when no client is
// configured.
func (a *Analyzer) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if a.client == nil {
		return "", errNotConfigured
	}
	return a.client.CompleteJSON(ctx, systemPrompt, userPrompt)
}

// fallbackWarn logs a classification-service failure before the fallback
// result is substituted.
func (a *Analyzer) fallbackWarn(task string, err error) {
	a.logger.Warn().Err(err).Str("task", task).Msg("Classification call failed, using fallback analysis")
}

// AnalyzeSentiment classifies the emotional tone of an email body.
func (a *Analyzer) AnalyzeSentiment(ctx context.Context, body string) models.SentimentResult {
	raw, err := a.complete(ctx, sentimentSystemPrompt,
		fmt.Sprintf("Analyze the sentiment of this customer support email:\n\n%s", body))
	if err == nil {
		var result models.SentimentResult
		if jsonErr := json.Unmarshal([]byte(raw), &result); jsonErr == nil && validSentiment(result.Sentiment) {
			result.Confidence = clamp01(result.Confidence)
			return result
		}
		err = fmt.Errorf("malformed sentiment result: %.120q", raw)
	}

	a.fallbackWarn("sentiment", err)
	return FallbackSentiment(body)
}

// AnalyzePriority classifies how urgently an email needs attention.
func (a *Analyzer) AnalyzePriority(ctx context.Context, subject, body string) models.PriorityResult {
	raw, err := a.complete(ctx, prioritySystemPrompt,
		fmt.Sprintf("Classify the priority of this support email:\n\nSubject: %s\n\nBody: %s", subject, body))
	if err == nil {
		var result models.PriorityResult
		if jsonErr := json.Unmarshal([]byte(raw), &result); jsonErr == nil && validPriority(result.Priority) {
			result.Confidence = clamp01(result.Confidence)
			if result.UrgencyKeywords == nil {
				result.UrgencyKeywords = []string{}
			}
			return result
		}
		err = fmt.Errorf("malformed priority result: %.120q", raw)
	}

	a.fallbackWarn("priority", err)
	return FallbackPriority(subject, body)
}

// CategorizeEmail assigns a short free-form category label.
func (a *Analyzer) CategorizeEmail(ctx context.Context, subject, body string) models.CategoryResult {
	raw, err := a.complete(ctx, categorySystemPrompt,
		fmt.Sprintf("Categorize this support email:\n\nSubject: %s\n\nBody: %s", subject, body))
	if err == nil {
		var result models.CategoryResult
		if jsonErr := json.Unmarshal([]byte(raw), &result); jsonErr == nil && result.Category != "" {
			result.Category = normalizeCategory(result.Category)
			result.Confidence = clamp01(result.Confidence)
			return result
		}
		err = fmt.Errorf("malformed category result: %.120q", raw)
	}

	a.fallbackWarn("category", err)
	return FallbackCategory(subject, body)
}

// ExtractInformation pulls structured details out of an email body.
func (a *Analyzer) ExtractInformation(ctx context.Context, body string) models.ExtractedInfoResult {
	raw, err := a.complete(ctx, extractionSystemPrompt,
		fmt.Sprintf("Extract key information from this support email:\n\n%s", body))
	if err == nil {
		var result models.ExtractedInfoResult
		if jsonErr := json.Unmarshal([]byte(raw), &result); jsonErr == nil {
			return normalizeExtraction(result)
		}
		err = fmt.Errorf("malformed extraction result: %.120q", raw)
	}

	a.fallbackWarn("extraction", err)
	return FallbackExtraction(body)
}

// GenerateResponse drafts a reply using the merged classification context.
// It must run after the four analysis tasks have completed.
func (a *Analyzer) GenerateResponse(ctx context.Context, rc ResponseContext) models.ResponseResult {
	raw, err := a.complete(ctx, responseSystemPrompt, buildResponsePrompt(rc))
	if err == nil {
		var result models.ResponseResult
		if jsonErr := json.Unmarshal([]byte(raw), &result); jsonErr == nil && result.Content != "" {
			if result.QualityScore == 0 {
				result.QualityScore = 85
			}
			result.QualityScore = clampScore(result.QualityScore)
			if result.Tone == "" {
				result.Tone = "professional"
			}
			return result
		}
		err = fmt.Errorf("malformed response result: %.120q", raw)
	}

	a.fallbackWarn("response", err)
	return FallbackResponse(rc.Sender, rc.Sentiment, rc.Priority, rc.Category)
}

// buildResponsePrompt assembles the drafting prompt from the full context.
func buildResponsePrompt(rc ResponseContext) string {
	infoJSON, _ := json.Marshal(rc.ExtractedInfo)

	return fmt.Sprintf(`Generate a professional, empathetic response to this customer support email.

Email Details:
- From: %s
- Subject: %s
- Body: %s
- Sentiment: %s
- Priority: %s
- Category: %s
- Key Points: %s

Guidelines:
- Maintain professional and friendly tone
- Be context-aware and acknowledge their sentiment
- If customer is frustrated, acknowledge empathetically
- Include relevant details and action items
- Provide clear next steps
- Use proper email format

Respond with JSON in this format: { "content": string, "qualityScore": number, "tone": string }`,
		rc.Sender, rc.Subject, rc.Body, rc.Sentiment, rc.Priority, rc.Category, string(infoJSON))
}

// normalizeCategory title-cases labels the model returned in lowercase so
// "billing" and "Billing" count as one category downstream.
func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == strings.ToLower(category) {
		category = cases.Title(language.English).String(category)
	}
	return category
}

// normalizeExtraction replaces nil slices so the stored annotation always
// marshals as arrays.
func normalizeExtraction(result models.ExtractedInfoResult) models.ExtractedInfoResult {
	if result.ContactDetails == nil {
		result.ContactDetails = []string{}
	}
	if result.Requirements == nil {
		result.Requirements = []string{}
	}
	if result.SentimentIndicators == nil {
		result.SentimentIndicators = []string{}
	}
	if result.KeyPoints == nil {
		result.KeyPoints = []string{}
	}
	return result
}

func validSentiment(s string) bool {
	return s == models.SentimentPositive || s == models.SentimentNegative || s == models.SentimentNeutral
}

func validPriority(p string) bool {
	return p == models.PriorityUrgent || p == models.PriorityNormal || p == models.PriorityLow
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampScore(v int) int {
	if v < 70 {
		return 70
	}
	if v > 100 {
		return 100
	}
	return v
}
