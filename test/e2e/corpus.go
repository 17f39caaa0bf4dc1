// Package e2e provides end-to-end tests that run the batch extractor and the HTTP service
// over a generated corpus of mixed, partly corrupt documents.
package e2e

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperjump/doctext/internal/extract"
	"github.com/hyperjump/doctext/internal/testutil"
)

// CorpusDocument is one generated file. Each page or paragraph carries a unique signature
// token so tests can assert the right text came back.
type CorpusDocument struct {
	Name    string
	Format  extract.Format
	Parts   []string
	Corrupt bool
}

// Bytes returns the file content.
func (d CorpusDocument) Bytes() []byte {
	if d.Corrupt {
		return []byte(fmt.Sprintf("%s is not a real %s file", d.Name, d.Format))
	}
	switch d.Format {
	case extract.FormatDOCX:
		return testutil.MinimalDOCX(d.Parts...)
	default:
		return testutil.MinimalPDF(d.Parts...)
	}
}

// Corpus holds the generated documents.
type Corpus struct {
	Documents []CorpusDocument
}

var topics = []string{
	"kubernetes", "postgres", "golang", "invoices", "payroll",
	"contracts", "roadmap", "security", "onboarding", "travel",
}

// BuildCorpus returns n documents. Every third document is a DOCX, the rest are PDFs,
// and every seventh is corrupt.
func BuildCorpus(n int) *Corpus {
	docs := make([]CorpusDocument, 0, n)
	for i := 0; i < n; i++ {
		topic := topics[i%len(topics)]
		d := CorpusDocument{
			Format:  extract.FormatPDF,
			Corrupt: i%7 == 6,
		}
		ext := ".pdf"
		if i%3 == 2 {
			d.Format = extract.FormatDOCX
			ext = ".docx"
		}
		d.Name = fmt.Sprintf("doc%03d-%s%s", i, topic, ext)
		parts := 1 + i%3
		for p := 0; p < parts; p++ {
			d.Parts = append(d.Parts, Signature(i, p))
		}
		docs = append(docs, d)
	}
	return &Corpus{Documents: docs}
}

// Signature is the token written into part p of document i.
func Signature(i, p int) string {
	return fmt.Sprintf("sig-%03d-%d-%s", i, p, topics[i%len(topics)])
}

// WriteTo writes every document into dir.
func (c *Corpus) WriteTo(dir string) error {
	for _, d := range c.Documents {
		if err := os.WriteFile(filepath.Join(dir, d.Name), d.Bytes(), 0644); err != nil {
			return err
		}
	}
	return nil
}

// Count returns how many documents have format and the given corruption state.
func (c *Corpus) Count(format extract.Format, corrupt bool) int {
	n := 0
	for _, d := range c.Documents {
		if d.Format == format && d.Corrupt == corrupt {
			n++
		}
	}
	return n
}
