package minutes

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Extractor converts uploaded document files into plain text.
type Extractor struct {
	// PDFConverter is the external text-conversion binary used for PDFs,
	// looked up on PATH unless it contains a path separator. When absent the
	// format is unsupported; there is no in-process PDF parser.
	PDFConverter string
}

// NewExtractor returns an Extractor with the default pdftotext converter.
func NewExtractor() *Extractor {
	return &Extractor{PDFConverter: "pdftotext"}
}

// ExtractFile converts a document file into plain text, dispatching on the
// file extension.
func (e *Extractor) ExtractFile(ctx context.Context, path string) ExtractionResult {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return failuref("file not found or not readable: %s", path)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "txt", "text", "md", "markdown":
		return e.extractText(path)
	case "docx":
		return e.extractDocx(path)
	case "rtf":
		return e.extractRTF(path)
	case "pdf":
		return e.extractPDF(ctx, path)
	default:
		return failuref("unsupported file extension for extraction: %q", ext)
	}
}
