package minutes

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// extractDocx reads word/document.xml from the .docx zip container and walks
// its tokens, emitting a newline at every paragraph end so paragraph
// boundaries survive tag removal.
func (e *Extractor) extractDocx(path string) ExtractionResult {
	r, err := zip.OpenReader(path)
	if err != nil {
		return failuref("open docx container: %v", err)
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return failure("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return failuref("open document.xml: %v", err)
	}
	defer rc.Close()

	text, err := docxBodyText(rc)
	if err != nil {
		return failuref("parse document.xml: %v", err)
	}
	text = Normalize(collapseSpaces(text))
	if text == "" {
		return failure("no text extracted from document")
	}
	return success(text)
}

// docxBodyText walks the document XML token stream. Character data
// accumulates into the current paragraph; </w:p> ends a line, <w:br/> breaks
// one, <w:tab/> becomes a space. The decoder handles entity decoding.
func docxBodyText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			switch t.Name.Local {
			case "br":
				sb.WriteByte('\n')
			case "tab":
				sb.WriteByte(' ')
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String(), nil
}
