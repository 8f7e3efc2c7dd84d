package minutes

import (
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// extractText reads a plain text file and re-encodes it to UTF-8.
func (e *Extractor) extractText(path string) ExtractionResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return failuref("read file: %v", err)
	}
	text := strings.TrimSpace(decodeToUTF8(data))
	if text == "" {
		return failure("file contains no text")
	}
	return success(text)
}

// decodeToUTF8 detects the encoding among UTF-8, Windows-1252 and Latin-1
// and returns UTF-8 text. Bytes in 0x80–0x9F are the range where CP1252 and
// Latin-1 disagree; their presence selects CP1252.
func decodeToUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	cm := charmap.ISO8859_1
	for _, b := range data {
		if b >= 0x80 && b <= 0x9F {
			cm = charmap.Windows1252
			break
		}
	}
	out, err := cm.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}
