// Package extract provides plain text extraction from PDF, DOCX and a few other document formats.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a supported document format.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatDOCX  Format = "docx"
	FormatXLSX  Format = "xlsx"
	FormatPlain Format = "plain"
)

// Formats returns every format the package knows about, whether or not its parser is compiled in.
func Formats() []Format {
	return []Format{FormatPDF, FormatDOCX, FormatXLSX, FormatPlain}
}

// FormatForPath returns the format for path based on its (case-insensitive) extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".txt", ".md", ".rst":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// PageLayout controls how PDF page texts are joined.
type PageLayout int

const (
	// PageLayoutConcat concatenates page texts with no separator.
	PageLayoutConcat PageLayout = iota
	// PageLayoutBlankLine drops empty pages and follows every other page with a blank line.
	PageLayoutBlankLine
)

// Option configures an Extractor.
type Option func(*Extractor)

// WithPageLayout sets how PDF pages are joined. Default is PageLayoutConcat.
func WithPageLayout(l PageLayout) Option {
	return func(e *Extractor) { e.pageLayout = l }
}

// Extractor extracts plain text from document files. It holds no per-document state
// and may be shared.
type Extractor struct {
	pageLayout PageLayout
}

// NewExtractor returns a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{pageLayout: PageLayoutConcat}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads the file at path and returns its text, choosing the parser from the extension.
func (e *Extractor) Extract(path string) (string, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return "", err
	}
	return e.ExtractFile(path, format)
}

// ExtractFile reads the file at path and parses it as format regardless of its extension.
// Read and parse failures are returned as *DocumentError carrying path.
func (e *Extractor) ExtractFile(path string, format Format) (string, error) {
	if err := Probe(format); err != nil {
		return "", err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &DocumentError{Path: path, Format: format, Err: fmt.Errorf("read file: %w", err)}
	}
	text, err := e.ExtractBytes(content, format)
	if err != nil {
		return "", withPath(err, path)
	}
	return text, nil
}

// ExtractBytes extracts text from content parsed as format.
func (e *Extractor) ExtractBytes(content []byte, format Format) (string, error) {
	switch format {
	case FormatPDF:
		pages, err := e.PDFPages(content)
		if err != nil {
			return "", err
		}
		if e.pageLayout == PageLayoutBlankLine {
			return JoinPagesBlankLine(pages), nil
		}
		return JoinPages(pages), nil
	case FormatDOCX:
		paragraphs, err := e.DOCXParagraphs(content)
		if err != nil {
			return "", err
		}
		return JoinParagraphs(paragraphs), nil
	case FormatXLSX:
		if err := Probe(format); err != nil {
			return "", err
		}
		text, err := extractXLSX(content)
		return text, documentError(format, err)
	case FormatPlain:
		return decodePlain(content), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// PDFPages returns the text of every page in page order. Pages with no content yield "".
func (e *Extractor) PDFPages(content []byte) ([]string, error) {
	if err := Probe(FormatPDF); err != nil {
		return nil, err
	}
	pages, err := pdfPages(content)
	if err != nil {
		return nil, documentError(FormatPDF, err)
	}
	return pages, nil
}

// DOCXParagraphs returns the text of every body paragraph in document order.
func (e *Extractor) DOCXParagraphs(content []byte) ([]string, error) {
	if err := Probe(FormatDOCX); err != nil {
		return nil, err
	}
	paragraphs, err := docxParagraphs(content)
	if err != nil {
		return nil, documentError(FormatDOCX, err)
	}
	return paragraphs, nil
}
