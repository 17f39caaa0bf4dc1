//go:build !nodocx

package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const docxAvailable = true

// docxDocumentXMLPath is the default path to the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// contentTypesPath is the path to [Content_Types].xml in OOXML packages.
const contentTypesPath = "[Content_Types].xml"

// docxMainContentType is the content type for the main document in DOCX files.
const docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

// partNameRe extracts PartName from Override elements in [Content_Types].xml.
var partNameRe = regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"`)

// partNameRe2 handles the case where ContentType appears before PartName.
var partNameRe2 = regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"[^>]+PartName="([^"]+)"`)


// docxParagraphs returns the text of each body-level <w:p> of the main document part.
// Paragraphs nested in tables, text boxes or content controls are not body paragraphs.
func docxParagraphs(content []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("not a zip: %w", err)
	}

	docPath := findDocxMainDocumentPath(zr)
	if docPath == "" {
		docPath = docxDocumentXMLPath
	}
	docXML, err := readZipFile(zr, docPath)
	if err != nil {
		return nil, err
	}
	return parseDocxParagraphs(docXML)
}

// findDocxMainDocumentPath finds the main document path from [Content_Types].xml.
// Returns the path without leading slash, or empty string if not found.
func findDocxMainDocumentPath(zr *zip.Reader) string {
	content, err := readZipFile(zr, contentTypesPath)
	if err != nil {
		return ""
	}
	s := string(content)
	if matches := partNameRe.FindStringSubmatch(s); len(matches) > 1 {
		return strings.TrimPrefix(matches[1], "/")
	}
	if matches := partNameRe2.FindStringSubmatch(s); len(matches) > 1 {
		return strings.TrimPrefix(matches[1], "/")
	}
	return ""
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%s not found", name)
}

// parseDocxParagraphs walks the document XML and collects run text per body paragraph.
// Inside a run, <w:t> contributes its text, <w:tab> and <w:ptab> a tab, <w:cr> and line
// breaks a newline, <w:noBreakHyphen> a hyphen. Page and column breaks contribute nothing.
func parseDocxParagraphs(docXML []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(docXML))
	var (
		paragraphs []string
		stack      []string
		cur        strings.Builder
		paraDepth  int // len(stack) while inside a body paragraph, 0 otherwise
		textDepth  int // len(stack) while inside an accepted <w:t>, 0 otherwise
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document XML: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			switch {
			case paraDepth == 0 && name == "p" && len(stack) > 0 && stack[len(stack)-1] == "body":
				paraDepth = len(stack) + 1
				cur.Reset()
			case paraDepth > 0 && inRun(stack[paraDepth:]):
				switch name {
				case "t":
					textDepth = len(stack) + 1
				case "tab", "ptab":
					cur.WriteByte('\t')
				case "cr":
					cur.WriteByte('\n')
				case "br":
					if isLineBreak(t.Attr) {
						cur.WriteByte('\n')
					}
				case "noBreakHyphen":
					cur.WriteByte('-')
				}
			}
			stack = append(stack, name)
		case xml.CharData:
			if textDepth > 0 && len(stack) == textDepth {
				cur.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			if len(stack) == textDepth {
				textDepth = 0
			}
			if len(stack) == paraDepth {
				paragraphs = append(paragraphs, cur.String())
				paraDepth = 0
			}
			stack = stack[:len(stack)-1]
		}
	}
	return paragraphs, nil
}

// inRun reports whether rel, the element path below a body paragraph, ends in a run
// that belongs to the paragraph text: a direct r, or r inside a hyperlink.
// Runs in tracked insertions, smart tags and fields are not paragraph text.
func inRun(rel []string) bool {
	switch len(rel) {
	case 1:
		return rel[0] == "r"
	case 2:
		return rel[0] == "hyperlink" && rel[1] == "r"
	}
	return false
}

// isLineBreak reports whether a <w:br> is a text-wrapping break; page and column
// breaks carry a w:type and produce no text.
func isLineBreak(attrs []xml.Attr) bool {
	for _, a := range attrs {
		if a.Name.Local == "type" {
			return a.Value == "textWrapping"
		}
	}
	return true
}
