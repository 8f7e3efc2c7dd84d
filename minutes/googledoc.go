package minutes

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// A Google Doc's normal view URL returns a JavaScript app; the export
// endpoint returns the actual text. The document must be shared "Anyone with
// the link can view" for export to work without sign-in.
var googleDocRe = regexp.MustCompile(`(?i)^https?://docs\.google\.com/document/d/([a-zA-Z0-9_-]+)`)

// GoogleDocID extracts the document id from a Google Docs document URL.
func GoogleDocID(url string) (string, bool) {
	m := googleDocRe.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

const reasonNeedsSharing = `document may require public sharing ("Anyone with the link can view")`

// looksLikeHTML reports whether a plain-text export response is actually an
// HTML page (JavaScript shell or sign-in interstitial).
func looksLikeHTML(body string) bool {
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype") {
		return true
	}
	if strings.Contains(lower, "javascript isn't enabled") {
		return true
	}
	return strings.Contains(body, "Sign in") && strings.Contains(lower, "docs.google.com")
}

// fetchGoogleDoc tries the plain-text export endpoint first and falls back
// to the HTML export when the response turns out to be an HTML page.
func (f *Fetcher) fetchGoogleDoc(ctx context.Context, docID string) ExtractionResult {
	txtURL := fmt.Sprintf("%s/%s/export?format=txt", f.cfg.GoogleExportBase, docID)
	body, status, err := f.get(ctx, txtURL)
	if err != nil {
		f.logger.Warn().Err(err).Str("doc_id", docID).Msg("google doc txt export failed")
		return failure(reasonNeedsSharing)
	}
	if status != http.StatusOK {
		f.logger.Warn().Int("status", status).Str("doc_id", docID).Msg("google doc txt export rejected")
		return failure(reasonNeedsSharing)
	}

	if !looksLikeHTML(string(body)) {
		text := Normalize(string(body))
		if text == "" {
			return failure(reasonNeedsSharing)
		}
		return success(text)
	}

	htmlURL := fmt.Sprintf("%s/%s/export?format=html", f.cfg.GoogleExportBase, docID)
	body, status, err = f.get(ctx, htmlURL)
	if err != nil {
		f.logger.Warn().Err(err).Str("doc_id", docID).Msg("google doc html export failed")
		return failure(reasonNeedsSharing)
	}
	if status != http.StatusOK {
		f.logger.Warn().Int("status", status).Str("doc_id", docID).Msg("google doc html export rejected")
		return failure(reasonNeedsSharing)
	}

	text := Normalize(collapseSpaces(htmlToText(string(body))))
	if text == "" {
		return failure(reasonNeedsSharing)
	}
	return success(text)
}
