package models

// SentimentResult is the outcome of the sentiment analysis task.
type SentimentResult struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// PriorityResult is the outcome of the priority classification task.
// UrgencyKeywords holds the urgency terms detected in the email text.
type PriorityResult struct {
	Priority        string   `json:"priority"`
	Confidence      float64  `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
	UrgencyKeywords []string `json:"urgencyKeywords"`
}

// CategoryResult is the outcome of the categorization task.
type CategoryResult struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// ExtractedInfoResult is the outcome of the information extraction task.
type ExtractedInfoResult struct {
	ContactDetails      []string `json:"contactDetails"`
	Requirements        []string `json:"requirements"`
	SentimentIndicators []string `json:"sentimentIndicators"`
	KeyPoints           []string `json:"keyPoints"`
}

// ResponseResult is the outcome of the reply drafting task.
type ResponseResult struct {
	Content      string `json:"content"`
	QualityScore int    `json:"qualityScore"`
	Tone         string `json:"tone"`
}

// ExtractedInfo is the structured annotation stored on an email: the
// extraction output plus the raw result of every classification task,
// kept for audit.
type ExtractedInfo struct {
	ContactDetails      []string `json:"contactDetails"`
	Requirements        []string `json:"requirements"`
	SentimentIndicators []string `json:"sentimentIndicators"`
	KeyPoints           []string `json:"keyPoints"`

	SentimentAnalysis SentimentResult `json:"sentimentAnalysis"`
	PriorityAnalysis  PriorityResult  `json:"priorityAnalysis"`
	CategoryAnalysis  CategoryResult  `json:"categoryAnalysis"`
}
