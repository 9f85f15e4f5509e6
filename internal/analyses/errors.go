package analyses

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnsupportedType = errors.New("only PDF, DOCX and plain text files are supported")
	ErrTooLarge        = errors.New("file too large")
	ErrNoText          = errors.New("could not extract text from document")
	ErrUploadNotFound  = errors.New("upload not found")
)

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeExtraction = "extraction_failed"
	ErrorCodeNotFound   = "not_found"
	ErrorCodeInternal   = "internal_error"
)
