package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// markdownRule is one substitution step of the summary transform.
// When expand is set it builds the replacement from the submatches instead of template.
type markdownRule struct {
	name     string
	pattern  *regexp.Regexp
	template string
	expand   func(groups []string) string
}

func (r markdownRule) apply(text string) string {
	if r.expand == nil {
		return r.pattern.ReplaceAllString(text, r.template)
	}
	return r.pattern.ReplaceAllStringFunc(text, func(match string) string {
		return r.expand(r.pattern.FindStringSubmatch(match))
	})
}

// markdownRules run in order; later rules see the output of earlier ones.
// This is a line-oriented best-effort transform, not a Markdown parser.
var markdownRules = []markdownRule{
	{name: "h3", pattern: regexp.MustCompile(`(?m)^### (.+)$`), template: `<h3>${1}</h3>`},
	{name: "h2", pattern: regexp.MustCompile(`(?m)^## (.+)$`), template: `<h2>${1}</h2>`},
	{name: "h1", pattern: regexp.MustCompile(`(?m)^# (.+)$`), template: `<h1>${1}</h1>`},
	{name: "bold", pattern: regexp.MustCompile(`\*\*([^*]+)\*\*`), template: `<strong>${1}</strong>`},
	{name: "list-item", pattern: regexp.MustCompile(`(?m)^- (.+)$`), template: `<li>${1}</li>`},
	{name: "link", pattern: regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`), expand: markdownLink},
	{name: "paragraph-break", pattern: regexp.MustCompile(`\n\n`), template: `</p><p>`},
	{name: "line-break", pattern: regexp.MustCompile(`\n`), template: `<br>`},
	{name: "paragraph", pattern: regexp.MustCompile(`(?m)^(.+)`), template: `<p>${1}</p>`},
	{name: "list-open", pattern: regexp.MustCompile(`<p><li>`), template: `<ul><li>`},
	{name: "list-close", pattern: regexp.MustCompile(`</li></p>`), template: `</li></ul>`},
}

// markdownLink receives already-escaped text, so the URL is unescaped only to check its scheme.
func markdownLink(groups []string) string {
	href := SafeURL(html.UnescapeString(groups[2]))
	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, href, groups[1])
}

// Markdown converts summary text to HTML. The text is escaped before any rule runs,
// so only markup produced by the rules reaches the output unescaped.
func Markdown(text string) string {
	if text == "" {
		return ""
	}

	out := Escape(strings.ReplaceAll(text, "\r\n", "\n"))
	for _, rule := range markdownRules {
		out = rule.apply(out)
	}
	return out
}
