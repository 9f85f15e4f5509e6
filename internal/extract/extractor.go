package extract

import (
	"context"

	"ats-backend/internal/shared/telemetry"
)

// Extractor is the text-extraction collaborator used by the analysis
// service. It never fails: any problem is logged and yields "".
type Extractor struct {
	// Clean normalizes extracted text before it is returned.
	Clean bool
}

// NewExtractor returns an Extractor that cleans its output.
func NewExtractor() *Extractor {
	return &Extractor{Clean: true}
}

// Extract returns the document text or "" when nothing can be extracted.
func (e *Extractor) Extract(ctx context.Context, data []byte, mimeType string, fileName string) string {
	text, err := ExtractTextFromBytes(ctx, data, mimeType, fileName)
	if err != nil {
		telemetry.Warn("extract.failed", map[string]any{
			"file_name":  fileName,
			"mime_type":  mimeType,
			"size_bytes": len(data),
			"err":        err.Error(),
		})
		return ""
	}
	if e != nil && e.Clean {
		text = Clean(text)
	}
	return text
}
