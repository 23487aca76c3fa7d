package render

import (
	"fmt"
	"regexp"
	"strings"
)

// headlinePattern matches "- <title> (<source>) <url>".
var headlinePattern = regexp.MustCompile(`- (.+?) \((.+?)\)\s*(https?://.+)`)

// Headline is one parsed line of a summary's headline text.
type Headline struct {
	Title  string
	Source string
	URL    string
	Text   string // set instead of the fields above when the line did not match
}

// Linked reports whether the line parsed into a title/source/url triple.
func (h Headline) Linked() bool {
	return h.URL != ""
}

// ParseHeadlines splits text into non-blank lines and parses each.
func ParseHeadlines(text string) []Headline {
	var out []Headline
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := headlinePattern.FindStringSubmatch(line); m != nil {
			out = append(out, Headline{Title: m[1], Source: m[2], URL: strings.TrimSpace(m[3])})
			continue
		}
		out = append(out, Headline{Text: strings.TrimPrefix(line, "- ")})
	}
	return out
}

// Headlines renders each headline line as a link block or a plain text block.
func Headlines(text string) string {
	var b strings.Builder
	for _, h := range ParseHeadlines(text) {
		if h.Linked() {
			fmt.Fprintf(&b, `<div class="headline"><a href="%s" target="_blank" rel="noopener noreferrer">📰 %s <span class="headline-source">(%s)</span></a></div>`,
				SafeURL(h.URL), Escape(h.Title), Escape(h.Source))
			continue
		}
		fmt.Fprintf(&b, `<div class="headline">%s</div>`, Escape(h.Text))
	}
	return b.String()
}
