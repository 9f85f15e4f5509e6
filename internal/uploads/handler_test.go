package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	key     string
	expires time.Duration
	err     error
}

func (f *fakePresigner) PresignPut(ctx context.Context, storageKey string, expires time.Duration) (string, error) {
	f.key = storageKey
	f.expires = expires
	if f.err != nil {
		return "", f.err
	}
	return "https://bucket.s3.amazonaws.com/" + storageKey + "?X-Amz-Signature=abc", nil
}

func setupRouter(p Presigner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(p, 1<<20)
	h.NewID = func() string { return "upload-1" }
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postPresign(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/presign", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestPresignReturnsUploadURL(t *testing.T) {
	p := &fakePresigner{}
	r := setupRouter(p)

	resp := postPresign(t, r, map[string]any{
		"fileName":    "Jane Doe CV.pdf",
		"contentType": "application/pdf",
		"sizeBytes":   2048,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out presignResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, "upload-1/Jane Doe CV.pdf", out.StorageKey)
	assert.Equal(t, p.key, out.StorageKey)
	assert.Contains(t, out.UploadURL, out.StorageKey)
	assert.EqualValues(t, 900, out.ExpiresInSeconds)
	assert.Equal(t, defaultPresignExpires, p.expires)
}

func TestPresignValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing name", body: map[string]any{"contentType": "application/pdf", "sizeBytes": 10}},
		{name: "image", body: map[string]any{"fileName": "me.png", "contentType": "image/png", "sizeBytes": 10}},
		{name: "zero size", body: map[string]any{"fileName": "cv.pdf", "contentType": "application/pdf"}},
		{name: "too large", body: map[string]any{"fileName": "cv.pdf", "contentType": "application/pdf", "sizeBytes": 2 << 20}},
		{name: "traversal", body: map[string]any{"fileName": "../cv.pdf", "contentType": "application/pdf", "sizeBytes": 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePresigner{}
			resp := postPresign(t, setupRouter(p), tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Empty(t, p.key)
		})
	}
}

func TestPresignInfersTypeFromExtension(t *testing.T) {
	p := &fakePresigner{}
	resp := postPresign(t, setupRouter(p), map[string]any{
		"fileName":  "cv.docx",
		"sizeBytes": 10,
	})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestPresignFailure(t *testing.T) {
	p := &fakePresigner{err: errors.New("no credentials")}
	resp := postPresign(t, setupRouter(p), map[string]any{
		"fileName":    "cv.txt",
		"contentType": "text/plain",
		"sizeBytes":   10,
	})
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
