// Package analytics derives the dashboard summary from the live email
// collection. The snapshot is recomputed wholesale on every read; nothing
// here is incremental and nothing here mutates state.
package analytics

import (
	"triage/internal/models"
	"triage/internal/processor"
)

// Recompute builds a fresh snapshot from the current collections. Only
// support-relevant emails count, using the same relevance gate as the
// visible list. The caller stamps the snapshot id and date.
func Recompute(emails []models.Email, responses []models.AiResponse) models.Analytics {
	support := processor.FilterSupportEmails(emails)

	snapshot := models.Analytics{
		TotalEmails: len(support),
		SentimentStats: map[string]int{
			models.SentimentPositive: 0,
			models.SentimentNegative: 0,
			models.SentimentNeutral:  0,
		},
		CategoryStats: map[string]int{},
	}

	for _, email := range support {
		if email.Priority != nil && *email.Priority == models.PriorityUrgent {
			snapshot.UrgentEmails++
		}
		if email.Status == models.StatusResolved {
			snapshot.ResolvedEmails++
		}
		if email.Sentiment != nil {
			snapshot.SentimentStats[*email.Sentiment]++
		}
		if email.Category != nil {
			snapshot.CategoryStats[*email.Category]++
		}
	}

	snapshot.AvgResponseTime = avgResponseMinutes(support, responses)

	return snapshot
}

// avgResponseMinutes is the mean whole-minute delay between an email's
// receipt and its reply being sent, over support-relevant emails whose
// reply has gone out. Zero when nothing has been sent yet.
func avgResponseMinutes(support []models.Email, responses []models.AiResponse) int {
	received := make(map[string]models.Email, len(support))
	for _, email := range support {
		received[email.ID] = email
	}

	total, count := 0, 0
	for _, response := range responses {
		if response.SentAt == nil {
			continue
		}
		email, ok := received[response.EmailID]
		if !ok {
			continue
		}
		minutes := int(response.SentAt.Sub(email.ReceivedDate).Minutes())
		if minutes < 0 {
			minutes = 0
		}
		total += minutes
		count++
	}

	if count == 0 {
		return 0
	}
	return total / count
}
