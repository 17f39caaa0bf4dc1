// Package main is the pdftext entry point: it prints the text of one PDF to stdout.
package main

import (
	"os"

	"github.com/hyperjump/doctext/internal/cli"
	"github.com/hyperjump/doctext/internal/extract"
)

func main() {
	os.Exit(cli.RunSingle(os.Args[1:], os.Stdout, os.Stderr, cli.SingleCommand{
		Program: "pdftext",
		Format:  extract.FormatPDF,
	}))
}
