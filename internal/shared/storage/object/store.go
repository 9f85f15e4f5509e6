package object

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNotFound is returned by Open and Delete when the key does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrInvalidKey is returned for keys that escape the store root.
	ErrInvalidKey = errors.New("invalid storage key")
)

// ObjectStore defines the contract for saving and retrieving uploaded resumes
// and their derived artifacts.
type ObjectStore interface {
	// Save stores r as fileName under namespace and returns the generated key,
	// the number of bytes written and the sniffed content type.
	Save(ctx context.Context, namespace string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}

// ExtractedKey is the key of the plain-text copy kept next to an upload.
func ExtractedKey(storageKey string) string {
	return storageKey + ".extracted.txt"
}
