//go:build noxlsx

package extract

const xlsxAvailable = false

func extractXLSX(_ []byte) (string, error) {
	return "", Probe(FormatXLSX)
}
