package minutes

import (
	stdhtml "html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// htmlToText extracts the visible text of an HTML document: script, style
// and noscript subtrees are skipped, remaining text nodes are joined with
// single spaces.
func htmlToText(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return sb.String()
}

var (
	blockCloseRe = regexp.MustCompile(`(?i)</(p|div|tr|li|h[1-6])>`)
	lineBreakRe  = regexp.MustCompile(`(?i)<br\s*/?>`)
	pastePolicy  = bluemonday.StrictPolicy()
)

// PasteToMarkdown converts pasted (possibly HTML) markup into normalized
// minutes markdown. Block-level closers become newlines before the remaining
// tags are stripped, so paragraph structure is not lost.
func PasteToMarkdown(pasted string) string {
	text := blockCloseRe.ReplaceAllString(pasted, "\n")
	text = lineBreakRe.ReplaceAllString(text, "\n")
	text = pastePolicy.Sanitize(text)
	text = stdhtml.UnescapeString(text)
	return Normalize(collapseSpaces(text))
}
