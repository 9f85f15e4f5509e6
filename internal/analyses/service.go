package analyses

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"ats-backend/internal/extract"
	"ats-backend/internal/scoring"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/storage/object"
	"ats-backend/internal/shared/telemetry"
	"ats-backend/internal/shared/util"
)

const (
	DefaultMaxUploadBytes int64 = 5 << 20
	defaultTextFileName         = "resume.txt"
)

// TextExtractor turns an uploaded document into plain text. It returns ""
// when nothing could be extracted.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mimeType string, fileName string) string
}

// Analyzer scores resume text.
type Analyzer interface {
	Analyze(text, filename string) scoring.ResumeAnalysis
}

// Service contains business logic for analyses.
type Service struct {
	Repo      Repo
	Store     object.ObjectStore
	Extractor TextExtractor
	Scorer    Analyzer

	MaxUploadBytes int64
	// RetainUploads keeps the original upload and its extracted text in the
	// object store instead of deleting them once scored.
	RetainUploads bool

	Now   func() time.Time
	NewID func() string
}

// AnalyzeUpload validates, archives, extracts and scores an uploaded resume.
func (s *Service) AnalyzeUpload(ctx context.Context, upload Upload) (Analysis, error) {
	start := time.Now()
	metrics.IncAnalysisStarted()

	analysis, err := s.analyzeUpload(ctx, upload)
	if err != nil {
		metrics.IncAnalysisFailed(failureReason(err))
		telemetry.Warn("analysis.failed", map[string]any{
			"file_name": upload.FileName,
			"reason":    failureReason(err),
			"err":       err.Error(),
		})
		return Analysis{}, err
	}

	s.recordSuccess(analysis, time.Since(start))
	return analysis, nil
}

func (s *Service) analyzeUpload(ctx context.Context, upload Upload) (Analysis, error) {
	fileName := strings.TrimSpace(upload.FileName)
	if fileName == "" || upload.Body == nil {
		return Analysis{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	data, mimeType, err := s.readDocument(upload.Body, upload.ContentType, fileName)
	if err != nil {
		return Analysis{}, err
	}

	id := s.newID()
	storageKey, _, _, err := s.Store.Save(ctx, id, fileName, bytes.NewReader(data))
	if err != nil {
		return Analysis{}, &storageError{op: "save upload", err: err}
	}
	return s.scoreDocument(ctx, id, storageKey, fileName, mimeType, data)
}

// AnalyzeStored scores a document a client already uploaded to the object
// store, typically through a presigned URL.
func (s *Service) AnalyzeStored(ctx context.Context, ref StoredUpload) (Analysis, error) {
	start := time.Now()
	metrics.IncAnalysisStarted()

	analysis, err := s.analyzeStored(ctx, ref)
	if err != nil {
		metrics.IncAnalysisFailed(failureReason(err))
		telemetry.Warn("analysis.failed", map[string]any{
			"storage_key": ref.StorageKey,
			"reason":      failureReason(err),
			"err":         err.Error(),
		})
		return Analysis{}, err
	}

	s.recordSuccess(analysis, time.Since(start))
	return analysis, nil
}

func (s *Service) analyzeStored(ctx context.Context, ref StoredUpload) (Analysis, error) {
	storageKey := strings.TrimSpace(ref.StorageKey)
	if storageKey == "" {
		return Analysis{}, fmt.Errorf("%w: storageKey is required", ErrInvalidInput)
	}
	fileName := strings.TrimSpace(ref.FileName)
	if fileName == "" {
		fileName = path.Base(storageKey)
	}

	rc, err := s.Store.Open(ctx, storageKey)
	if err != nil {
		switch {
		case errors.Is(err, object.ErrNotFound):
			return Analysis{}, ErrUploadNotFound
		case errors.Is(err, object.ErrInvalidKey):
			return Analysis{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return Analysis{}, &storageError{op: "open upload", err: err}
	}
	defer rc.Close()

	data, mimeType, err := s.readDocument(rc, ref.ContentType, fileName)
	if err != nil {
		return Analysis{}, err
	}
	return s.scoreDocument(ctx, s.newID(), storageKey, fileName, mimeType, data)
}

// readDocument reads at most MaxUploadBytes and resolves a supported MIME type.
func (s *Service) readDocument(body io.Reader, contentType, fileName string) ([]byte, string, error) {
	limit := s.maxUploadBytes()
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, "", fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, limit)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	mimeType := extract.NormalizeMimeType(contentType, fileName, data)
	if !extract.Supported(mimeType) {
		mimeType = extract.DetectMimeType(data, fileName)
	}
	if !extract.Supported(mimeType) {
		return nil, "", fmt.Errorf("%w: got %s", ErrUnsupportedType, mimeType)
	}
	return data, mimeType, nil
}

// scoreDocument extracts and scores an archived document, then keeps or
// discards the archive according to RetainUploads.
func (s *Service) scoreDocument(ctx context.Context, id, storageKey, fileName, mimeType string, data []byte) (Analysis, error) {
	text := s.Extractor.Extract(ctx, data, mimeType, fileName)
	if strings.TrimSpace(text) == "" {
		s.discard(ctx, id, storageKey)
		return Analysis{}, ErrNoText
	}

	analysis := Analysis{
		ID:          id,
		FileName:    fileName,
		MimeType:    mimeType,
		SizeBytes:   int64(len(data)),
		ContentHash: util.ContentHash(data),
		Result:      s.Scorer.Analyze(text, fileName),
		CreatedAt:   s.now(),
	}

	if s.RetainUploads {
		if _, err := extract.SaveExtracted(ctx, s.Store, storageKey, text); err != nil {
			s.discard(ctx, id, storageKey)
			return Analysis{}, &storageError{op: "save extracted text", err: err}
		}
		analysis.StorageKey = storageKey
	} else {
		s.discard(ctx, id, storageKey)
	}

	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, fmt.Errorf("persist analysis id=%s: %w", id, err)
	}
	return analysis, nil
}

// AnalyzeText scores raw resume text. Empty text is scored, not rejected.
func (s *Service) AnalyzeText(ctx context.Context, fileName, text string) (Analysis, error) {
	start := time.Now()
	metrics.IncAnalysisStarted()

	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		fileName = defaultTextFileName
	}
	if int64(len(text)) > s.maxUploadBytes() {
		metrics.IncAnalysisFailed(metrics.ReasonValidation)
		return Analysis{}, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, s.maxUploadBytes())
	}

	analysis := Analysis{
		ID:          s.newID(),
		FileName:    fileName,
		MimeType:    extract.MimeText,
		SizeBytes:   int64(len(text)),
		ContentHash: util.ContentHash([]byte(text)),
		Result:      s.Scorer.Analyze(text, fileName),
		CreatedAt:   s.now(),
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		metrics.IncAnalysisFailed(metrics.ReasonInternal)
		return Analysis{}, fmt.Errorf("persist analysis id=%s: %w", analysis.ID, err)
	}

	s.recordSuccess(analysis, time.Since(start))
	return analysis, nil
}

// Get returns an analysis by ID.
func (s *Service) Get(ctx context.Context, analysisID string) (Analysis, error) {
	if strings.TrimSpace(analysisID) == "" {
		return Analysis{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, analysisID)
}

// List returns stored analyses newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	return s.Repo.List(ctx, limit, offset)
}

func (s *Service) recordSuccess(analysis Analysis, elapsed time.Duration) {
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDuration(elapsed)
	metrics.ObserveOverallScore(analysis.Result.OverallScore)
	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id":       analysis.ID,
		"file_name":         analysis.FileName,
		"mime_type":         analysis.MimeType,
		"size_bytes":        analysis.SizeBytes,
		"overall_score":     analysis.Result.OverallScore,
		"sections_detected": analysis.Result.SectionsDetected,
		"duration_ms":       float64(elapsed.Microseconds()) / 1000.0,
	})
}

// discard removes an archived upload. Failures are logged, not returned.
func (s *Service) discard(ctx context.Context, analysisID, storageKey string) {
	if err := s.Store.Delete(ctx, storageKey); err != nil && !errors.Is(err, object.ErrNotFound) {
		telemetry.Warn("analysis.upload_cleanup_failed", map[string]any{
			"analysis_id": analysisID,
			"storage_key": storageKey,
			"err":         err.Error(),
		})
	}
}

func (s *Service) maxUploadBytes() int64 {
	if s.MaxUploadBytes > 0 {
		return s.MaxUploadBytes
	}
	return DefaultMaxUploadBytes
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

type storageError struct {
	op  string
	err error
}

func (e *storageError) Error() string { return e.op + ": " + e.err.Error() }
func (e *storageError) Unwrap() error { return e.err }

func failureReason(err error) string {
	var se *storageError
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrTooLarge), errors.Is(err, ErrUnsupportedType),
		errors.Is(err, ErrUploadNotFound):
		return metrics.ReasonValidation
	case errors.Is(err, ErrNoText):
		return metrics.ReasonExtraction
	case errors.As(err, &se):
		return metrics.ReasonStorage
	default:
		return metrics.ReasonInternal
	}
}
