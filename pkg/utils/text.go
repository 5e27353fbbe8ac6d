package utils

import "strings"

// CleanText strips non-ASCII characters so replies and prompt material stay
// within the plain-English character set the registry data is expected to use.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// TruncateChars cuts text to at most max characters, trimming back to the
// last word boundary and appending an ellipsis when something was dropped.
func TruncateChars(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	cut := text[:max]
	if idx := strings.LastIndexByte(cut, ' '); idx > max/2 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "..."
}

// Excerpt picks the best short grounding text for a document: the abstract
// when present, otherwise the head of the full text.
func Excerpt(abstract, fullText string, max int) string {
	source := abstract
	if strings.TrimSpace(source) == "" {
		source = fullText
	}
	return TruncateChars(CleanText(source), max)
}
