package processor

import (
	"sort"
	"strings"

	"triage/internal/models"
)

// supportKeywords is the relevance gate: an email is support-relevant when
// its subject contains at least one of these terms.
var supportKeywords = []string{"support", "query", "request", "help"}

// priorityRank orders priorities for sorting. Unset or unrecognized
// priorities rank as normal.
func priorityRank(priority *string) int {
	if priority == nil {
		return 1
	}
	switch *priority {
	case models.PriorityUrgent:
		return 0
	case models.PriorityLow:
		return 2
	default:
		return 1
	}
}

// FilterSupportEmails keeps only support-relevant emails. The same gate is
// applied to the visible list and to the analytics snapshot.
func FilterSupportEmails(emails []models.Email) []models.Email {
	filtered := make([]models.Email, 0, len(emails))
	for _, email := range emails {
		subject := strings.ToLower(email.Subject)
		for _, keyword := range supportKeywords {
			if strings.Contains(subject, keyword) {
				filtered = append(filtered, email)
				break
			}
		}
	}
	return filtered
}

// SortEmailsByPriority orders emails urgent first, then normal, then low,
// breaking ties by received date with the most recent on top. The input
// slice is sorted in place and returned.
func SortEmailsByPriority(emails []models.Email) []models.Email {
	sort.SliceStable(emails, func(i, j int) bool {
		ri, rj := priorityRank(emails[i].Priority), priorityRank(emails[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return emails[i].ReceivedDate.After(emails[j].ReceivedDate)
	})
	return emails
}
