package gridsheet

import "cmp"

// HyperlinkValue is cell data for a linked cell. The cell displays its text;
// the xlsx bridge also carries the URL.
type HyperlinkValue struct {
	URL  string
	Text string // shown instead of URL when set
}

func (h HyperlinkValue) String() string { return cmp.Or(h.Text, h.URL) }

// Hyperlink returns a link to url labelled text.
func Hyperlink(url, text string) HyperlinkValue {
	return HyperlinkValue{URL: url, Text: text}
}
