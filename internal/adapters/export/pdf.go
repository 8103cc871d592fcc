// Package export renders the consolidated workbook to PDF through a headless
// LibreOffice conversion. The whole capability is best effort: callers log a
// failure and keep going, because the workbook itself is the primary output.
package export

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// converterNames are probed in order on PATH when no explicit converter is
// configured.
var converterNames = []string{"soffice", "libreoffice"}

// Option applies a configuration option to the PDF exporter.
type Option func(*PDFExporter)

// WithConverter pins the converter binary instead of probing PATH.
func WithConverter(path string) Option {
	return func(e *PDFExporter) {
		if path != "" {
			e.converter = path
		}
	}
}

// PDFExporter converts workbooks to PDF via an external office suite.
type PDFExporter struct {
	converter string
}

// NewPDFExporter creates an exporter with configuration options.
func NewPDFExporter(opts ...Option) *PDFExporter {
	e := &PDFExporter{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Available reports whether a converter binary can be found.
func (e *PDFExporter) Available() bool {
	_, err := e.lookup()
	return err == nil
}

// Export converts workbookPath to a PDF at pdfPath. The converter names its
// output after the input file, so the result is moved when the requested path
// differs.
func (e *PDFExporter) Export(ctx context.Context, workbookPath, pdfPath string) error {
	converter, err := e.lookup()
	if err != nil {
		return err
	}

	outDir := filepath.Dir(pdfPath)
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("create output dir %s: %w", outDir, err)
	}

	cmd := exec.CommandContext(ctx, converter,
		"--headless", "--convert-to", "pdf", "--outdir", outDir, workbookPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %s: %w", converter, strings.TrimSpace(string(out)), err)
	}

	produced := filepath.Join(outDir, stem(workbookPath)+".pdf")
	if produced != pdfPath {
		if err := os.Rename(produced, pdfPath); err != nil {
			return fmt.Errorf("move %s to %s: %w", produced, pdfPath, err)
		}
	}
	return nil
}

func (e *PDFExporter) lookup() (string, error) {
	if e.converter != "" {
		return e.converter, nil
	}
	for _, name := range converterNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrConverterNotFound
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
