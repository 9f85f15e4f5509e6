package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"ats-backend/internal/shared/storage/object/local"
	"ats-backend/internal/shared/telemetry"
)

func TestExtractorCleansText(t *testing.T) {
	got := NewExtractor().Extract(context.Background(), []byte("Jane   Doe\n\nEngineer"), MimeText, "cv.txt")
	assert.Equal(t, "Jane Doe Engineer", got)
}

func TestExtractorRawWhenCleanDisabled(t *testing.T) {
	e := &Extractor{}
	got := e.Extract(context.Background(), []byte("Jane\nDoe"), MimeText, "cv.txt")
	assert.Equal(t, "Jane\nDoe", got)
}

func TestExtractorFailureLogsAndReturnsEmpty(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := telemetry.Logger()
	telemetry.SetLogger(zap.New(core))
	t.Cleanup(func() { telemetry.SetLogger(prev) })

	got := NewExtractor().Extract(context.Background(), []byte{0x89, 'P', 'N', 'G'}, "image/png", "photo.png")
	assert.Equal(t, "", got)

	entries := logs.FilterMessage("extract.failed").AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, "photo.png", entries[0].ContextMap()["file_name"])
}

func TestSaveExtracted(t *testing.T) {
	ctx := context.Background()
	store := local.New(t.TempDir())

	key, err := SaveExtracted(ctx, store, "analysis-1/cv.pdf", "jane doe")
	require.NoError(t, err)
	assert.Equal(t, "analysis-1/cv.pdf.extracted.txt", key)

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	buf := make([]byte, 16)
	n, _ := rc.Read(buf)
	assert.Equal(t, "jane doe", string(buf[:n]))
}
