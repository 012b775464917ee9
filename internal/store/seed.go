package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"triage/internal/models"
)

// sentDateLayout matches the fixture format, e.g. "21-08-2025 14:30" (UTC).
const sentDateLayout = "02-01-2006 15:04"

// LoadSampleCSV reads raw emails from a header-driven CSV fixture with the
// columns sender, subject, body and sent_date. Rows missing a required
// column or carrying an unparseable date are skipped; a missing sent_date
// falls back to the current time, matching how ad-hoc fixtures are usually
// assembled.
func LoadSampleCSV(path string) ([]models.RawEmail, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample data: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse sample data: %w", err)
	}
	if len(records) < 2 {
		return []models.RawEmail{}, nil
	}

	column := make(map[string]int, len(records[0]))
	for i, header := range records[0] {
		column[strings.TrimSpace(strings.ToLower(header))] = i
	}

	field := func(row []string, name string) string {
		idx, ok := column[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	raws := make([]models.RawEmail, 0, len(records)-1)
	for _, row := range records[1:] {
		raw := models.RawEmail{
			Sender:  field(row, "sender"),
			Subject: field(row, "subject"),
			Body:    field(row, "body"),
		}
		if raw.Sender == "" && raw.Subject == "" && raw.Body == "" {
			continue
		}

		if sent := field(row, "sent_date"); sent != "" {
			parsed, err := time.ParseInLocation(sentDateLayout, sent, time.UTC)
			if err != nil {
				continue
			}
			raw.SentDate = parsed
		} else {
			raw.SentDate = time.Now().UTC()
		}

		raws = append(raws, raw)
	}

	return raws, nil
}
