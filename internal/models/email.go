package models

import "time"

// Sentiment labels assigned during classification.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Priority labels assigned during classification.
const (
	PriorityUrgent = "urgent"
	PriorityNormal = "normal"
	PriorityLow    = "low"
)

// Email workflow statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusResolved   = "resolved"
)

// RawEmail is the ingestion tuple: the fields an email carries before the
// pipeline has seen it.
type RawEmail struct {
	Sender   string    `json:"sender" validate:"required,email" example:"alice@example.com"`
	Subject  string    `json:"subject" validate:"required" example:"Support request: login issue"`
	Body     string    `json:"body" validate:"required"`
	SentDate time.Time `json:"sentDate" validate:"required" example:"2025-09-01T10:30:00Z"`
}

// Email represents a processed support message. Sender, subject, body and
// sent date are immutable after creation; the classification fields are set
// exactly once by the processing pipeline and never recomputed.
type Email struct {
	ID           string    `json:"id"`
	Sender       string    `json:"sender"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	SentDate     time.Time `json:"sentDate"`
	ReceivedDate time.Time `json:"receivedDate"`

	// Classification fields, nil until the pipeline has run.
	Sentiment *string `json:"sentiment"` // positive | negative | neutral
	Priority  *string `json:"priority"`  // urgent | normal | low
	Category  *string `json:"category"`  // short label, e.g. "Billing"

	Status        string         `json:"status"` // pending | processing | resolved
	ExtractedInfo *ExtractedInfo `json:"extractedInfo"`
	Keywords      []string       `json:"keywords"`
}
