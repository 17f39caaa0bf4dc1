package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDependency is returned when the parser for a format was not compiled in.
	ErrMissingDependency = errors.New("parser not available")
	// ErrUnsupportedFormat is returned for formats the extractor does not handle.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// DocumentError reports a failure to read or parse one document.
type DocumentError struct {
	Path   string
	Format Format
	Err    error
}

func (e *DocumentError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s document: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// Probe reports whether text can be extracted from format in this build.
// It never touches the filesystem, so callers can fail fast before opening a document.
func Probe(format Format) error {
	var available bool
	switch format {
	case FormatPDF:
		available = pdfAvailable
	case FormatDOCX:
		available = docxAvailable
	case FormatXLSX:
		available = xlsxAvailable
	case FormatPlain:
		available = true
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if !available {
		return fmt.Errorf("%w: %s support is not compiled in; rebuild without the \"no%s\" build tag (go build -tags '')",
			ErrMissingDependency, format, format)
	}
	return nil
}

func documentError(format Format, err error) error {
	if err == nil || errors.Is(err, ErrMissingDependency) {
		return err
	}
	var docErr *DocumentError
	if errors.As(err, &docErr) {
		return err
	}
	return &DocumentError{Format: format, Err: err}
}

func withPath(err error, path string) error {
	var docErr *DocumentError
	if errors.As(err, &docErr) && docErr.Path == "" {
		docErr.Path = path
	}
	return err
}
