package model

// Prompt is one outbound message: plain text, optionally with a closed set
// of quick-reply options shown as a single-use keyboard.
type Prompt struct {
	Text    string
	Options []string
}
