package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/internal/shared/storage/object"
)

func TestSaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := New(dir)

	payload := []byte("%PDF-1.4 fake resume body")
	key, size, mimeType, err := store.Save(ctx, "analysis-1", "resume.pdf", bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "analysis-1/resume.pdf", key)
	assert.EqualValues(t, len(payload), size)
	assert.Equal(t, "application/pdf", mimeType)

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	require.NoError(t, store.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(dir, "analysis-1"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "expected empty namespace dir removed")

	_, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, object.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, key), object.ErrNotFound)
}

func TestSaveWithKeyKeepsSiblings(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	key, _, _, err := store.Save(ctx, "analysis-2", "cv.txt", strings.NewReader("Jane Doe"))
	require.NoError(t, err)

	n, err := store.SaveWithKey(ctx, object.ExtractedKey(key), "text/plain", strings.NewReader("jane doe"))
	require.NoError(t, err)
	assert.EqualValues(t, 8, n)

	require.NoError(t, store.Delete(ctx, key))

	rc, err := store.Open(ctx, "analysis-2/cv.txt.extracted.txt")
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jane doe", string(got))
}

func TestRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	_, _, _, err := store.Save(ctx, "..", "resume.pdf", strings.NewReader("x"))
	assert.Error(t, err)
	_, _, _, err = store.Save(ctx, "ns", "../resume.pdf", strings.NewReader("x"))
	assert.Error(t, err)
	_, err = store.Open(ctx, "../outside.txt")
	assert.ErrorIs(t, err, object.ErrInvalidKey)
	_, err = store.SaveWithKey(ctx, "/abs/path", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, object.ErrInvalidKey)
}
