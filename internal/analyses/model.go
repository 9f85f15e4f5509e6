package analyses

import (
	"io"
	"time"

	"ats-backend/internal/scoring"
)

// Analysis is one scored resume and the upload it came from.
type Analysis struct {
	ID          string                 `json:"id"`
	FileName    string                 `json:"fileName"`
	MimeType    string                 `json:"mimeType"`
	SizeBytes   int64                  `json:"sizeBytes"`
	ContentHash string                 `json:"contentHash,omitempty"`
	StorageKey  string                 `json:"-"`
	Result      scoring.ResumeAnalysis `json:"result"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// Summary is the list view of an Analysis.
type Summary struct {
	ID           string    `json:"id"`
	FileName     string    `json:"fileName"`
	OverallScore int       `json:"overallScore"`
	FormatScore  int       `json:"formatScore"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Summary returns the list view of a.
func (a Analysis) Summary() Summary {
	return Summary{
		ID:           a.ID,
		FileName:     a.FileName,
		OverallScore: a.Result.OverallScore,
		FormatScore:  a.Result.FormatScore,
		CreatedAt:    a.CreatedAt,
	}
}

// Upload is a resume file submitted for scoring.
type Upload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// StoredUpload references a document already in the object store.
type StoredUpload struct {
	StorageKey  string
	FileName    string
	ContentType string
}
