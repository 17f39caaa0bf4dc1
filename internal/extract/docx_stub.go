//go:build nodocx

package extract

const docxAvailable = false

func docxParagraphs(_ []byte) ([]string, error) {
	return nil, Probe(FormatDOCX)
}
