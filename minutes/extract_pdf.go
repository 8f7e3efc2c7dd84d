package minutes

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
)

// extractPDF delegates to the external converter. Its output file is read
// and then deleted regardless of outcome.
func (e *Extractor) extractPDF(ctx context.Context, path string) ExtractionResult {
	converter := e.PDFConverter
	if converter == "" {
		converter = "pdftotext"
	}
	bin, err := exec.LookPath(converter)
	if err != nil {
		return failuref("unsupported format: pdf (%s is not installed)", converter)
	}

	out, err := os.CreateTemp("", "minutes-pdf-*.txt")
	if err != nil {
		return failuref("create temp file: %v", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	cmd := exec.CommandContext(ctx, bin, "-layout", "-enc", "UTF-8", path, outPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return failuref("%s failed: %v: %s", converter, err, msg)
		}
		return failuref("%s failed: %v", converter, err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return failuref("read converter output: %v", err)
	}
	text := strings.TrimSpace(decodeToUTF8(data))
	if text == "" {
		return failure("no text extracted from document")
	}
	return success(text)
}
