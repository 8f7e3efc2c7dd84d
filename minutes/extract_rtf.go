package minutes

import (
	"bytes"
	"os"
)

// extractRTF converts an RTF file to plain text with a scanning tokenizer,
// then normalizes encoding and whitespace like plain text.
func (e *Extractor) extractRTF(path string) ExtractionResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return failuref("read file: %v", err)
	}
	text := Normalize(collapseSpaces(decodeToUTF8(stripRTF(data))))
	if text == "" {
		return failure("no text extracted from document")
	}
	return success(text)
}

type rtfTokenKind int

const (
	rtfText    rtfTokenKind = iota // literal characters
	rtfBreak                       // \par or \line
	rtfGroup                       // { or } group delimiter, dropped
	rtfControl                     // any other control word, dropped
	rtfEOF
)

// rtfToken is one scanner event.
type rtfToken struct {
	kind rtfTokenKind
	text []byte
}

// rtfScanner tokenizes RTF control-word syntax byte-wise; non-ASCII bytes
// pass through as literal text for the encoding pass to sort out.
type rtfScanner struct {
	src []byte
	pos int
}

// stripRTF converts RTF source to plain text. Control words are discarded
// except \par and \line, which emit a newline; group braces are dropped;
// escaped \{ \} \\ pass through as literals; raw newlines in the source
// become a single space, since RTF line breaks are not semantic.
func stripRTF(src []byte) []byte {
	s := &rtfScanner{src: src}
	var out bytes.Buffer
	for {
		tok := s.next()
		switch tok.kind {
		case rtfEOF:
			return out.Bytes()
		case rtfText:
			out.Write(tok.text)
		case rtfBreak:
			out.WriteByte('\n')
		}
	}
}

func (s *rtfScanner) next() rtfToken {
	if s.pos >= len(s.src) {
		return rtfToken{kind: rtfEOF}
	}
	switch c := s.src[s.pos]; c {
	case '\\':
		return s.scanControl()
	case '{', '}':
		s.pos++
		return rtfToken{kind: rtfGroup}
	case '\r', '\n':
		s.pos++
		return rtfToken{kind: rtfText, text: []byte{' '}}
	default:
		start := s.pos
		for s.pos < len(s.src) {
			switch s.src[s.pos] {
			case '\\', '{', '}', '\r', '\n':
				return rtfToken{kind: rtfText, text: s.src[start:s.pos]}
			}
			s.pos++
		}
		return rtfToken{kind: rtfText, text: s.src[start:]}
	}
}

// scanControl consumes a backslash sequence: an escaped literal brace or
// backslash, or a control word with an optional signed numeric parameter and
// one consumed trailing space. A control symbol's character is left for the
// main loop, matching how readers skip unknown symbols.
func (s *rtfScanner) scanControl() rtfToken {
	s.pos++ // backslash
	if s.pos >= len(s.src) {
		return rtfToken{kind: rtfEOF}
	}
	if c := s.src[s.pos]; c == '\\' || c == '{' || c == '}' {
		s.pos++
		return rtfToken{kind: rtfText, text: []byte{c}}
	}

	start := s.pos
	for s.pos < len(s.src) && isASCIILetter(s.src[s.pos]) {
		s.pos++
	}
	word := string(s.src[start:s.pos])

	if s.pos < len(s.src) && (s.src[s.pos] == '-' || isASCIIDigit(s.src[s.pos])) {
		s.pos++
		for s.pos < len(s.src) && isASCIIDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	if s.pos < len(s.src) && s.src[s.pos] == ' ' {
		s.pos++
	}

	if word == "par" || word == "line" {
		return rtfToken{kind: rtfBreak}
	}
	return rtfToken{kind: rtfControl}
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
