// Package main is the docxtext entry point: it prints the paragraphs of one DOCX to stdout.
package main

import (
	"os"

	"github.com/hyperjump/doctext/internal/cli"
	"github.com/hyperjump/doctext/internal/extract"
)

func main() {
	os.Exit(cli.RunSingle(os.Args[1:], os.Stdout, os.Stderr, cli.SingleCommand{
		Program: "docxtext",
		Format:  extract.FormatDOCX,
	}))
}
