package models

import "time"

// AiResponse statuses.
const (
	ResponseStatusDraft  = "draft"
	ResponseStatusEdited = "edited"
	ResponseStatusSent   = "sent"
)

// ResponseDraft is a generated reply that has not been persisted yet. The
// store mints the id and the foreign email reference when it saves one.
type ResponseDraft struct {
	Content      string `json:"content"`
	QualityScore int    `json:"qualityScore"`
	Tone         string `json:"tone"`
}

// AiResponse is the stored reply draft for an email. Exactly one is created
// alongside each email during processing. SentAt is set once on the first
// send and never reset.
type AiResponse struct {
	ID           string     `json:"id"`
	EmailID      string     `json:"emailId"`
	Content      string     `json:"content"`
	QualityScore int        `json:"qualityScore"`
	Status       string     `json:"status"` // draft | edited | sent
	CreatedAt    time.Time  `json:"createdAt"`
	SentAt       *time.Time `json:"sentAt"`
}
