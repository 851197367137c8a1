package domain

// TextSegment is an inline run with uniform styling.
// Formatting markers are stripped from Text.
type TextSegment struct {
	// Text is the literal content of the run.
	Text string `json:"text"`

	// Bold is set for runs inside **strong** markers.
	Bold bool `json:"bold,omitempty"`

	// Italic is set for runs inside *emphasis* markers.
	Italic bool `json:"italic,omitempty"`

	// Link is the hyperlink target wrapping the run, if any.
	Link string `json:"link,omitempty"`

	// NewLink starts a separate hyperlink even when the previous segment
	// links to the same target.
	NewLink bool `json:"newLink,omitempty"`

	// Break is set when a line break follows the run.
	Break bool `json:"break,omitempty"`
}

// SameStyle reports whether two segments can be merged into one run.
// o cannot join s when it opens a new link.
func (s TextSegment) SameStyle(o TextSegment) bool {
	return s.Bold == o.Bold && s.Italic == o.Italic && s.Link == o.Link && !o.NewLink
}

// SameLink reports whether o continues the hyperlink of s.
func (s TextSegment) SameLink(o TextSegment) bool {
	return s.Link != "" && s.Link == o.Link && !o.NewLink
}

// PlainText concatenates segment texts, rendering breaks as newlines.
func PlainText(segments []TextSegment) string {
	n := 0
	for _, s := range segments {
		n += len(s.Text) + 1
	}
	buf := make([]byte, 0, n)
	for _, s := range segments {
		buf = append(buf, s.Text...)
		if s.Break {
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}
