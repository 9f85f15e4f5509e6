package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/internal/analyses"
	"ats-backend/internal/extract"
	"ats-backend/internal/scoring"
	"ats-backend/internal/shared/config"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/storage/object/local"
	"ats-backend/internal/uploads"
)

func testConfig() config.Config {
	return config.Config{
		Env:             "test",
		CORSAllowOrigin: []string{"*"},
		RateLimitRPS:    1,
		RateLimitBurst:  2,
	}
}

func newTestRouter(t *testing.T, cfg config.Config) http.Handler {
	t.Helper()
	svc := &analyses.Service{
		Repo:      analyses.NewMemoryRepo(),
		Store:     local.New(t.TempDir()),
		Extractor: extract.NewExtractor(),
		Scorer:    scoring.NewScorer(nil),
	}
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	return NewRouter(RouterDeps{
		Config:          cfg,
		AnalysisHandler: analyses.NewHandler(svc),
		RateLimiter:     middleware.NewRateLimiter(func() time.Time { return now }),
	})
}

func TestRootMessage(t *testing.T) {
	r := newTestRouter(t, testConfig())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"message":"ATS Scorer API is running"}`, resp.Body.String())
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t, testConfig())
	for _, path := range []string{"/health", "/api/v1/health"} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusOK, resp.Code, path)
		assert.JSONEq(t, `{"status":"healthy","services":{"text_extractor":"running","ats_scorer":"running","database":"memory"}}`, resp.Body.String(), path)
		assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, testConfig())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "ats_analysis_started_total")
}

func uploadRequest(t *testing.T) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "resume.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Skills: Python, Docker. email: jane@example.com"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadThroughRouter(t *testing.T) {
	r := newTestRouter(t, testConfig())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, uploadRequest(t))

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.NotEmpty(t, resp.Header().Get("X-Analysis-Id"))

	var result scoring.ResumeAnalysis
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, "resume.txt", result.Filename)
}

func TestUploadsAreRateLimited(t *testing.T) {
	r := newTestRouter(t, testConfig())

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, uploadRequest(t))
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, uploadRequest(t))
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "1", resp.Header().Get("Retry-After"))

	// Reads use their own, larger bucket.
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestAddr(t *testing.T) {
	assert.Equal(t, ":8080", Addr(""))
	assert.Equal(t, ":9000", Addr("9000"))
	assert.Equal(t, ":9000", Addr(":9000"))
}

type stubPresigner struct{}

func (stubPresigner) PresignPut(ctx context.Context, storageKey string, expires time.Duration) (string, error) {
	return "https://uploads.example/" + storageKey, nil
}

func TestPresignRouteOnlyWithUploadHandler(t *testing.T) {
	body := `{"fileName":"cv.pdf","contentType":"application/pdf","sizeBytes":100}`

	r := newTestRouter(t, testConfig())
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/presign", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	withUploads := NewRouter(RouterDeps{
		Config:        testConfig(),
		UploadHandler: uploads.NewHandler(stubPresigner{}, 0),
		RateLimiter:   middleware.NewRateLimiter(nil),
	})
	resp = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/uploads/presign", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	withUploads.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), "uploadUrl")
}
