package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Experience</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Developed</w:t></w:r><w:r><w:t xml:space="preserve"> Python services</w:t></w:r></w:p>` +
	`</w:body></w:document>`

func buildDocx(t *testing.T) []byte {
	t.Helper()
	return buildZip(t, map[string]string{
		"[Content_Types].xml": `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   documentXML,
	})
}

func TestExtractTextFromBytes_Docx(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), buildDocx(t), MimeDOCX, "cv.docx")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nExperience\nDeveloped Python services", text)
}

func TestExtractTextFromBytes_ZipDocxNormalizes(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), buildDocx(t), "application/zip", "test.docx")
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
}

func TestExtractTextFromBytes_RealZipRejected(t *testing.T) {
	data := buildZip(t, map[string]string{"notes.txt": "hello"})

	_, err := ExtractTextFromBytes(context.Background(), data, "application/zip", "notes.zip")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
	assert.Contains(t, err.Error(), "unsupported mime type: application/zip")
}

func TestExtractTextFromBytes_PlainText(t *testing.T) {
	data := []byte("\xef\xbb\xbfJane Doe\nSkills: Go, SQL")
	text, err := ExtractTextFromBytes(context.Background(), data, "text/plain; charset=utf-8", "cv.txt")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Go, SQL", text)
}

func TestExtractTextFromBytes_InvalidPDF(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("not a pdf"), MimePDF, "cv.pdf")
	assert.Error(t, err)
}

func TestExtractTextFromBytes_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ExtractTextFromBytes(ctx, []byte("text"), MimeText, "cv.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeMimeType(t *testing.T) {
	docx := buildDocx(t)
	tests := []struct {
		name     string
		mime     string
		fileName string
		data     []byte
		want     string
	}{
		{name: "params stripped", mime: "Application/PDF; foo=bar", fileName: "a.pdf", want: MimePDF},
		{name: "zip with docx body", mime: "application/zip", fileName: "a.bin", data: docx, want: MimeDOCX},
		{name: "octet stream by ext", mime: "application/octet-stream", fileName: "a.txt", want: MimeText},
		{name: "empty by ext", mime: "", fileName: "resume.PDF", want: MimePDF},
		{name: "msword holding docx", mime: "application/msword", fileName: "a.doc", data: docx, want: MimeDOCX},
		{name: "unknown stays", mime: "image/png", fileName: "a.png", want: "image/png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMimeType(tt.mime, tt.fileName, tt.data))
		})
	}
}

func TestDetectMimeType(t *testing.T) {
	assert.Equal(t, MimePDF, DetectMimeType([]byte("%PDF-1.7\n..."), "cv"))
	assert.Equal(t, MimeDOCX, DetectMimeType(buildDocx(t), "cv.bin"))
	assert.Equal(t, MimeText, DetectMimeType([]byte("Jane Doe\nEngineer"), "cv"))
	assert.Equal(t, MimeText, DetectMimeType([]byte{0x00, 0x01, 0x02}, "cv.txt"))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(MimePDF))
	assert.True(t, Supported(MimeDOCX))
	assert.True(t, Supported(MimeText))
	assert.False(t, Supported("application/zip"))
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "   \n\t ", want: ""},
		{in: "  Jane\n\n  Doe\t\tEngineer  ", want: "Jane Doe Engineer"},
		{in: "a\x00b\x07c", want: "abc"},
		{in: "• Led team of 5 (40% growth)", want: "• Led team of 5 (40% growth)"},
		{in: "email: jane@example.com", want: "email: jane@example.com"},
		{in: "x\u200by", want: "xy"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.in), "Clean(%q)", tt.in)
	}
	assert.False(t, strings.Contains(Clean("a \x00 b"), "  "))
}
