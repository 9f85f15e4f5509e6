package scoring

// Priority ranks how urgently a suggestion should be addressed.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Suggestion is a single actionable improvement.
type Suggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// ResumeAnalysis is the full result of scoring one resume.
type ResumeAnalysis struct {
	Filename         string        `json:"filename"`
	OverallScore     int           `json:"overall_score"`
	SectionScores    SectionScores `json:"section_scores"`
	KeywordsFound    int           `json:"keywords_found"`
	SectionsDetected int           `json:"sections_detected"`
	FormatScore      int           `json:"format_score"`
	Suggestions      []Suggestion  `json:"suggestions"`
}
