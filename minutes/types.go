// Package minutes turns meeting-minutes documents (uploaded files, web
// links, or pasted content) into normalized minutes markdown.
//
// Supported file formats:
//   - .txt/.md: plain text (encoding detection, whitespace normalization)
//   - .docx: Microsoft Word (archive/zip, word/document.xml)
//   - .rtf: Rich Text Format (scanning tokenizer over control words)
//   - .pdf: via the external pdftotext converter when installed
//
// Extraction never panics and never returns a Go error across the package
// boundary: every failure becomes an ExtractionResult with OK=false and a
// human-readable reason meant for logs, not end users.
package minutes

import "fmt"

// SourceKind selects which Source variant is populated.
type SourceKind string

const (
	SourceFile  SourceKind = "file"
	SourceURL   SourceKind = "url"
	SourcePaste SourceKind = "paste"
	SourceNone  SourceKind = "none"
)

// Source describes where a meeting's minutes document lives. Exactly one of
// the payload fields is meaningful, selected by Kind.
type Source struct {
	Kind       SourceKind
	FilePath   string
	URL        string
	PastedText string
}

// ExtractionResult is the outcome of one extraction or fetch. A failed
// extraction is represented, never raised: OK=false plus a specific reason.
type ExtractionResult struct {
	Text   string
	OK     bool
	Reason string
}

func success(text string) ExtractionResult {
	return ExtractionResult{Text: text, OK: true}
}

func failure(reason string) ExtractionResult {
	return ExtractionResult{Reason: reason}
}

func failuref(format string, args ...any) ExtractionResult {
	return ExtractionResult{Reason: fmt.Sprintf(format, args...)}
}
