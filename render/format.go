package render

import (
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/coreybb/newsdash/filtering"
)

// Escape HTML-escapes free text before it is placed into markup.
func Escape(s string) string {
	return html.EscapeString(s)
}

// FormatDate formats t for display in loc. The zero time renders as a placeholder.
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return labelNoData
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(dateLayout)
}

// TimeAgo labels the distance between t and now. Whole days are used once a full day
// has elapsed, whole hours once a full hour has; both counts round up.
func TimeAgo(now, t time.Time) string {
	elapsed := now.Sub(t)
	if elapsed < 0 {
		elapsed = -elapsed
	}

	switch {
	case elapsed >= 24*time.Hour:
		return fmt.Sprintf(labelDaysAgoFormat, filtering.CeilDiv(elapsed, 24*time.Hour))
	case elapsed >= time.Hour:
		return fmt.Sprintf(labelHoursAgoFormat, filtering.CeilDiv(elapsed, time.Hour))
	default:
		return labelWithinHour
	}
}

// SafeURL returns an attribute-safe href. Only web, mail and relative links survive.
func SafeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "#"
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return html.EscapeString(raw)
	default:
		return "#"
	}
}
