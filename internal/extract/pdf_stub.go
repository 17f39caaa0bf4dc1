//go:build nopdf

package extract

const pdfAvailable = false

func pdfPages(_ []byte) ([]string, error) {
	return nil, Probe(FormatPDF)
}
