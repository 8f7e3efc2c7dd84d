package minutes

import (
	"context"
	"regexp"

	"github.com/rs/zerolog"
)

var urlSchemeRe = regexp.MustCompile(`(?i)^https?://`)

// Resolver turns a meeting's document source into normalized minutes
// markdown.
type Resolver struct {
	Extractor  *Extractor
	Fetcher    *Fetcher
	UploadRoot string
	Logger     zerolog.Logger
}

// NewResolver creates a Resolver with the default extractor.
func NewResolver(uploadRoot string, fetcher *Fetcher, logger zerolog.Logger) *Resolver {
	return &Resolver{
		Extractor:  NewExtractor(),
		Fetcher:    fetcher,
		UploadRoot: uploadRoot,
		Logger:     logger,
	}
}

// Resolve dispatches on the populated source variant. Failures carry the
// specific reason for logging; callers must not retry automatically.
func (r *Resolver) Resolve(ctx context.Context, src Source) ExtractionResult {
	switch src.Kind {
	case SourceFile:
		path, err := ResolveUploadPath(r.UploadRoot, src.FilePath)
		if err != nil {
			return failuref("%v", err)
		}
		res := r.Extractor.ExtractFile(ctx, path)
		if res.OK {
			res.Text = Normalize(res.Text)
		}
		return res

	case SourceURL:
		if !urlSchemeRe.MatchString(src.URL) {
			return failuref("unsupported url scheme: %s", src.URL)
		}
		return r.Fetcher.FetchURL(ctx, src.URL)

	case SourcePaste:
		text := PasteToMarkdown(src.PastedText)
		if text == "" {
			return failure("pasted content is empty")
		}
		return success(text)

	default:
		return failuref("unknown or empty document source: %q", string(src.Kind))
	}
}
