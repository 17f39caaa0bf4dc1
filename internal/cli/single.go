package cli

import (
	"fmt"
	"io"

	"github.com/hyperjump/doctext/internal/extract"
)

// SingleCommand describes a command that extracts one document and prints its text.
type SingleCommand struct {
	Program string
	Format  extract.Format
	// Probe checks that Format can be parsed before any file is touched. Defaults to extract.Probe.
	Probe func(extract.Format) error
	// Extractor defaults to extract.NewExtractor().
	Extractor *extract.Extractor
}

// RunSingle runs cmd with args (program name excluded) and returns the process exit code.
// Only extracted text goes to stdout; every message goes to stderr.
func RunSingle(args []string, stdout, stderr io.Writer, cmd SingleCommand) int {
	if len(args) < 1 {
		fmt.Fprintf(stderr, "Usage: %s <%s_path>\n", cmd.Program, cmd.Format)
		return 1
	}

	probe := cmd.Probe
	if probe == nil {
		probe = extract.Probe
	}
	if err := probe(cmd.Format); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ext := cmd.Extractor
	if ext == nil {
		ext = extract.NewExtractor()
	}
	text, err := ext.ExtractFile(args[0], cmd.Format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, text)
	return 0
}
