// Package processor orchestrates the per-email classification pipeline and
// the read-time ranking of the stored collection. One call to ProcessEmail
// fans the four independent analyses out concurrently, merges their results
// into an annotated email, and then drafts a reply from the merged context.
package processor

import (
	"context"
	"fmt"
	"strings"

	"triage/internal/classify"
	"triage/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ProcessedEmail is the pipeline output: the raw email fields plus every
// derived annotation and the not-yet-persisted reply draft.
type ProcessedEmail struct {
	models.RawEmail

	Sentiment     string
	Priority      string
	Category      string
	Status        string
	ExtractedInfo models.ExtractedInfo
	Keywords      []string
	Draft         models.ResponseDraft
}

// Processor runs raw emails through classification and drafting.
type Processor struct {
	analyzer *classify.Analyzer
	logger   zerolog.Logger
}

// New creates a new processor.
func New(analyzer *classify.Analyzer, logger zerolog.Logger) *Processor {
	return &Processor{
		analyzer: analyzer,
		logger:   logger,
	}
}

// ProcessEmail annotates one raw email. The four analysis tasks run
// concurrently and are individually fault tolerant; reply drafting runs
// strictly after all of them since it consumes their merged output. An
// error here means the input itself was unusable, never a classification
// failure, and is fatal only to this item.
func (p *Processor) ProcessEmail(ctx context.Context, raw models.RawEmail) (*ProcessedEmail, error) {
	if raw.Sender == "" || raw.Subject == "" || raw.Body == "" {
		return nil, fmt.Errorf("failed to process email: sender, subject and body are required")
	}

	var (
		sentiment models.SentimentResult
		priority  models.PriorityResult
		category  models.CategoryResult
		extracted models.ExtractedInfoResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sentiment = p.analyzer.AnalyzeSentiment(gctx, raw.Body)
		return nil
	})
	g.Go(func() error {
		priority = p.analyzer.AnalyzePriority(gctx, raw.Subject, raw.Body)
		return nil
	})
	g.Go(func() error {
		category = p.analyzer.CategorizeEmail(gctx, raw.Subject, raw.Body)
		return nil
	})
	g.Go(func() error {
		extracted = p.analyzer.ExtractInformation(gctx, raw.Body)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to process email: %w", err)
	}

	status := models.StatusPending
	if priority.Priority == models.PriorityUrgent {
		status = models.StatusProcessing
	}

	keywords := make([]string, 0, len(priority.UrgencyKeywords)+2)
	keywords = append(keywords, priority.UrgencyKeywords...)
	keywords = append(keywords, strings.ToLower(category.Category), sentiment.Sentiment)

	draft := p.analyzer.GenerateResponse(ctx, classify.ResponseContext{
		Subject:       raw.Subject,
		Body:          raw.Body,
		Sender:        raw.Sender,
		Sentiment:     sentiment.Sentiment,
		Priority:      priority.Priority,
		Category:      category.Category,
		ExtractedInfo: extracted,
	})

	return &ProcessedEmail{
		RawEmail:  raw,
		Sentiment: sentiment.Sentiment,
		Priority:  priority.Priority,
		Category:  category.Category,
		Status:    status,
		ExtractedInfo: models.ExtractedInfo{
			ContactDetails:      extracted.ContactDetails,
			Requirements:        extracted.Requirements,
			SentimentIndicators: extracted.SentimentIndicators,
			KeyPoints:           extracted.KeyPoints,
			SentimentAnalysis:   sentiment,
			PriorityAnalysis:    priority,
			CategoryAnalysis:    category,
		},
		Keywords: keywords,
		Draft: models.ResponseDraft{
			Content:      draft.Content,
			QualityScore: draft.QualityScore,
			Tone:         draft.Tone,
		},
	}, nil
}
