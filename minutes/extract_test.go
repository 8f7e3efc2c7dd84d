package minutes

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestExtractFileDispatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := NewExtractor()
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		res := e.ExtractFile(ctx, filepath.Join(dir, "nope.txt"))
		if res.OK {
			t.Fatal("want failure for missing file")
		}
		if !strings.Contains(res.Reason, "not found") {
			t.Fatalf("Reason=%q", res.Reason)
		}
	})

	t.Run("directory", func(t *testing.T) {
		res := e.ExtractFile(ctx, dir)
		if res.OK {
			t.Fatal("want failure for directory")
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, dir, "slides.pptx", []byte("x"))
		res := e.ExtractFile(ctx, path)
		if res.OK {
			t.Fatal("want failure for unsupported extension")
		}
		if !strings.Contains(res.Reason, `"pptx"`) {
			t.Fatalf("Reason=%q", res.Reason)
		}
	})
}

func TestExtractText(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := NewExtractor()
	dir := t.TempDir()

	t.Run("utf8", func(t *testing.T) {
		path := writeFile(t, dir, "m.txt", []byte("  Standup notes: café\n"))
		res := e.ExtractFile(ctx, path)
		if !res.OK {
			t.Fatalf("Reason=%q", res.Reason)
		}
		if res.Text != "Standup notes: café" {
			t.Fatalf("Text=%q", res.Text)
		}
	})

	t.Run("windows-1252", func(t *testing.T) {
		// 0x93/0x94 are curly quotes in CP1252 and C1 controls in Latin-1.
		path := writeFile(t, dir, "cp1252.txt", []byte{'s', 'a', 'i', 'd', ' ', 0x93, 'h', 'i', 0x94})
		res := e.ExtractFile(ctx, path)
		if !res.OK {
			t.Fatalf("Reason=%q", res.Reason)
		}
		if res.Text != "said “hi”" {
			t.Fatalf("Text=%q", res.Text)
		}
	})

	t.Run("latin-1", func(t *testing.T) {
		path := writeFile(t, dir, "latin1.txt", []byte{'c', 'a', 'f', 0xE9})
		res := e.ExtractFile(ctx, path)
		if !res.OK {
			t.Fatalf("Reason=%q", res.Reason)
		}
		if res.Text != "café" {
			t.Fatalf("Text=%q", res.Text)
		}
	})

	t.Run("empty", func(t *testing.T) {
		path := writeFile(t, dir, "empty.txt", []byte("   \n  "))
		res := e.ExtractFile(ctx, path)
		if res.OK {
			t.Fatal("want failure for whitespace-only file")
		}
	})
}

func writeDocx(t *testing.T, dir, name, documentXML string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	zw := zip.NewWriter(f)
	if documentXML != "" {
		w, err := zw.Create("word/document.xml")
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(documentXML)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return path
}

func TestExtractDocx(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := NewExtractor()
	dir := t.TempDir()

	const doc = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Agenda</w:t></w:r></w:p>
    <w:p><w:r><w:t>Budget &amp; hiring</w:t><w:br/><w:t>Q3 plan</w:t></w:r></w:p>
    <w:p><w:r><w:t>Col</w:t><w:tab/><w:t>umn</w:t></w:r></w:p>
  </w:body>
</w:document>`

	t.Run("paragraphs", func(t *testing.T) {
		path := writeDocx(t, dir, "m.docx", doc)
		res := e.ExtractFile(ctx, path)
		if !res.OK {
			t.Fatalf("Reason=%q", res.Reason)
		}
		want := "Agenda\nBudget & hiring\nQ3 plan\nCol umn"
		if res.Text != want {
			t.Fatalf("Text=%q, want %q", res.Text, want)
		}
	})

	t.Run("missing document.xml", func(t *testing.T) {
		path := writeDocx(t, dir, "hollow.docx", "")
		res := e.ExtractFile(ctx, path)
		if res.OK {
			t.Fatal("want failure for archive without word/document.xml")
		}
		if !strings.Contains(res.Reason, "word/document.xml") {
			t.Fatalf("Reason=%q", res.Reason)
		}
	})

	t.Run("not a zip", func(t *testing.T) {
		path := writeFile(t, dir, "broken.docx", []byte("not a zip"))
		res := e.ExtractFile(ctx, path)
		if res.OK {
			t.Fatal("want failure for non-zip file")
		}
	})
}

func TestStripRTF(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"par break", `{\rtf1 Hello\par World}`, "Hello\nWorld"},
		{"line break", `{\rtf1 a\line b}`, "a\nb"},
		{"negative param", `{\rtf1\ansi\deff0\fs-24 text}`, "text"},
		{"escaped braces", `\{x\} \\y`, "{x} \\y"},
		{"nested groups", `{\rtf1{\b bold}{\i italic}}`, "bolditalic"},
		{"raw newline is space", "one\ntwo", "one two"},
		{"trailing space consumed", `\b bold`, "bold"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := string(stripRTF([]byte(tc.in)))
			if got != tc.want {
				t.Fatalf("stripRTF(%q)=%q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractRTF(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := NewExtractor()
	dir := t.TempDir()

	path := writeFile(t, dir, "m.rtf", []byte(`{\rtf1\ansi Hello\par World\par}`))
	res := e.ExtractFile(ctx, path)
	if !res.OK {
		t.Fatalf("Reason=%q", res.Reason)
	}
	if res.Text != "Hello\nWorld" {
		t.Fatalf("Text=%q", res.Text)
	}
	if strings.ContainsAny(res.Text, `\{}`) {
		t.Fatalf("control characters leaked: %q", res.Text)
	}
}

func TestExtractPDF(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	pdf := writeFile(t, dir, "m.pdf", []byte("%PDF-1.4"))

	t.Run("converter missing", func(t *testing.T) {
		e := &Extractor{PDFConverter: "definitely-not-installed-converter"}
		res := e.ExtractFile(ctx, pdf)
		if res.OK {
			t.Fatal("want failure when converter is absent")
		}
		if !strings.Contains(res.Reason, "unsupported format: pdf") {
			t.Fatalf("Reason=%q", res.Reason)
		}
	})

	t.Run("converter output", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("shell script converter")
		}
		script := filepath.Join(dir, "fake-pdftotext")
		if err := os.WriteFile(script, []byte("#!/bin/sh\nprintf 'Decisions made' > \"$5\"\n"), 0o755); err != nil {
			t.Fatalf("write script: %v", err)
		}
		e := &Extractor{PDFConverter: script}
		res := e.ExtractFile(ctx, pdf)
		if !res.OK {
			t.Fatalf("Reason=%q", res.Reason)
		}
		if res.Text != "Decisions made" {
			t.Fatalf("Text=%q", res.Text)
		}
	})

	t.Run("converter failure", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("shell script converter")
		}
		script := filepath.Join(dir, "failing-pdftotext")
		if err := os.WriteFile(script, []byte("#!/bin/sh\necho 'damaged file' >&2\nexit 1\n"), 0o755); err != nil {
			t.Fatalf("write script: %v", err)
		}
		e := &Extractor{PDFConverter: script}
		res := e.ExtractFile(ctx, pdf)
		if res.OK {
			t.Fatal("want failure when converter exits non-zero")
		}
		if !strings.Contains(res.Reason, "damaged file") {
			t.Fatalf("Reason=%q", res.Reason)
		}
	})
}
