// Package store holds the in-process collections behind the API. A single
// Store owns the email and response maps plus the analytics snapshot; every
// read and mutation goes through it, and it is created explicitly in main
// rather than living as package state.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"triage/internal/analytics"
	"triage/internal/models"
	"triage/internal/processor"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Lookup errors surfaced to the HTTP layer.
var (
	ErrEmailNotFound    = errors.New("email not found")
	ErrResponseNotFound = errors.New("response not found")
)

// Store is the in-memory system of record for emails, reply drafts and the
// analytics snapshot.
type Store struct {
	mu        sync.RWMutex
	emails    map[string]*models.Email
	responses map[string]*models.AiResponse

	// seedMu serializes sample-data loads so racing first requests run the
	// import exactly once.
	seedMu sync.Mutex
	seeded bool

	analyticsID string
	processor   *processor.Processor
	logger      zerolog.Logger
}

// New creates an empty store.
func New(proc *processor.Processor, logger zerolog.Logger) *Store {
	return &Store{
		emails:      make(map[string]*models.Email),
		responses:   make(map[string]*models.AiResponse),
		analyticsID: uuid.NewString(),
		processor:   proc,
		logger:      logger,
	}
}

// ListEmails returns the visible collection: support-relevant emails
// ordered by priority, then recency. Ordering is decided here at read time,
// never by insertion order.
func (s *Store) ListEmails() []models.Email {
	s.mu.RLock()
	emails := make([]models.Email, 0, len(s.emails))
	for _, email := range s.emails {
		emails = append(emails, *email)
	}
	s.mu.RUnlock()

	return processor.SortEmailsByPriority(processor.FilterSupportEmails(emails))
}

// GetEmail returns one email by id.
func (s *Store) GetEmail(id string) (models.Email, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email, ok := s.emails[id]
	if !ok {
		return models.Email{}, ErrEmailNotFound
	}
	return *email, nil
}

// CreateEmail persists a processed email together with its reply draft,
// minting fresh ids and stamping the received date.
func (s *Store) CreateEmail(processed *processor.ProcessedEmail) (models.Email, models.AiResponse) {
	now := time.Now().UTC()

	email := &models.Email{
		ID:           uuid.NewString(),
		Sender:       processed.Sender,
		Subject:      processed.Subject,
		Body:         processed.Body,
		SentDate:     processed.SentDate,
		ReceivedDate: now,
		Sentiment:    strPtr(processed.Sentiment),
		Priority:     strPtr(processed.Priority),
		Category:     strPtr(processed.Category),
		Status:       processed.Status,
		ExtractedInfo: &models.ExtractedInfo{
			ContactDetails:      processed.ExtractedInfo.ContactDetails,
			Requirements:        processed.ExtractedInfo.Requirements,
			SentimentIndicators: processed.ExtractedInfo.SentimentIndicators,
			KeyPoints:           processed.ExtractedInfo.KeyPoints,
			SentimentAnalysis:   processed.ExtractedInfo.SentimentAnalysis,
			PriorityAnalysis:    processed.ExtractedInfo.PriorityAnalysis,
			CategoryAnalysis:    processed.ExtractedInfo.CategoryAnalysis,
		},
		Keywords: processed.Keywords,
	}

	response := &models.AiResponse{
		ID:           uuid.NewString(),
		EmailID:      email.ID,
		Content:      processed.Draft.Content,
		QualityScore: processed.Draft.QualityScore,
		Status:       models.ResponseStatusDraft,
		CreatedAt:    now,
	}

	s.mu.Lock()
	s.emails[email.ID] = email
	s.responses[response.ID] = response
	s.mu.Unlock()

	return *email, *response
}

// UpdateEmailStatus sets the workflow status of one email. The caller has
// already validated the status value.
func (s *Store) UpdateEmailStatus(id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.emails[id]
	if !ok {
		return ErrEmailNotFound
	}
	email.Status = status
	return nil
}

// GetResponseByEmailID finds the reply draft belonging to an email.
func (s *Store) GetResponseByEmailID(emailID string) (models.AiResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, response := range s.responses {
		if response.EmailID == emailID {
			return *response, nil
		}
	}
	return models.AiResponse{}, ErrResponseNotFound
}

// UpdateResponse applies a partial update to a reply draft. Saving new
// content moves a draft to edited unless the caller set a status of its own.
func (s *Store) UpdateResponse(id string, update models.ResponseUpdateRequest) (models.AiResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	response, ok := s.responses[id]
	if !ok {
		return models.AiResponse{}, ErrResponseNotFound
	}

	if update.Content != nil {
		response.Content = *update.Content
		if update.Status == nil && response.Status == models.ResponseStatusDraft {
			response.Status = models.ResponseStatusEdited
		}
	}
	if update.Status != nil {
		response.Status = *update.Status
	}

	return *response, nil
}

// MarkResponseSent dispatches a reply draft: status becomes sent, SentAt is
// stamped, and the owning email is resolved in the same step so the two
// transitions cannot be observed apart. Sending an already-sent response is
// a no-op that leaves SentAt untouched.
func (s *Store) MarkResponseSent(id string) (models.AiResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	response, ok := s.responses[id]
	if !ok {
		return models.AiResponse{}, ErrResponseNotFound
	}

	if response.SentAt != nil {
		return *response, nil
	}

	now := time.Now().UTC()
	response.Status = models.ResponseStatusSent
	response.SentAt = &now

	if email, ok := s.emails[response.EmailID]; ok {
		email.Status = models.StatusResolved
	}

	return *response, nil
}

// Analytics recomputes and returns the current snapshot.
func (s *Store) Analytics() models.Analytics {
	s.mu.RLock()
	emails := make([]models.Email, 0, len(s.emails))
	for _, email := range s.emails {
		emails = append(emails, *email)
	}
	responses := make([]models.AiResponse, 0, len(s.responses))
	for _, response := range s.responses {
		responses = append(responses, *response)
	}
	s.mu.RUnlock()

	snapshot := analytics.Recompute(emails, responses)
	snapshot.ID = s.analyticsID
	snapshot.Date = time.Now().UTC()
	return snapshot
}

// ProcessBulk runs a batch of raw emails through the pipeline and stores
// the survivors. A failed item is logged and skipped; it must never abort
// the batch.
func (s *Store) ProcessBulk(ctx context.Context, raws []models.RawEmail) (stored, failed int) {
	for _, raw := range raws {
		processed, err := s.processor.ProcessEmail(ctx, raw)
		if err != nil {
			s.logger.Warn().Err(err).Str("sender", raw.Sender).Str("subject", raw.Subject).Msg("Skipping email that failed processing")
			failed++
			continue
		}
		s.CreateEmail(processed)
		stored++
	}
	return stored, failed
}

// Seed loads the sample dataset exactly once. Repeat calls return without
// touching the store.
func (s *Store) Seed(ctx context.Context, raws []models.RawEmail) int {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	if s.seeded {
		return 0
	}

	stored, failed := s.ProcessBulk(ctx, raws)
	s.seeded = true

	s.logger.Info().Int("stored", stored).Int("failed", failed).Msg("Sample data loaded")
	return stored
}

// Seeded reports whether the sample dataset has been loaded.
func (s *Store) Seeded() bool {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	return s.seeded
}

func strPtr(s string) *string {
	return &s
}
