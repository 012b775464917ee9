package models

import "time"

// Analytics is the single current dashboard snapshot, recomputed wholesale
// from the live email collection on every read. All fields are always
// present; SentimentStats carries all three sentiment keys even when zero,
// CategoryStats only the categories actually observed.
type Analytics struct {
	ID              string         `json:"id"`
	Date            time.Time      `json:"date"`
	TotalEmails     int            `json:"totalEmails"`
	UrgentEmails    int            `json:"urgentEmails"`
	ResolvedEmails  int            `json:"resolvedEmails"`
	AvgResponseTime int            `json:"avgResponseTime"` // minutes between receipt and reply send
	SentimentStats  map[string]int `json:"sentimentStats"`
	CategoryStats   map[string]int `json:"categoryStats"`
}
