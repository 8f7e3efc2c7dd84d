// Package summarize produces short AI summaries of meeting minutes.
//
// Two paths exist. The file-grounded path (Previewer) uploads a document and
// runs an assistant with file search over it, under a hard wall-clock
// deadline. The text path (Summarizer) sends already-extracted minutes
// markdown through the chat completions API.
package summarize

// Outcome is the result of a file-grounded preview. A timeout is reported as
// a distinct state so callers can tell "slow" apart from "broken".
type Outcome struct {
	Summary  string
	TimedOut bool
	Err      error
}
