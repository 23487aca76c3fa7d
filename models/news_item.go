package models

// NewsItem is one collected article. Items are immutable once loaded.
type NewsItem struct {
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	Content   *string   `json:"content,omitempty"`
	URL       string    `json:"url"`
	Published Timestamp `json:"published"`
}

// ContentOr returns the item content, or fallback when the item has none.
func (n NewsItem) ContentOr(fallback string) string {
	if n.Content == nil || *n.Content == "" {
		return fallback
	}
	return *n.Content
}

// SearchText is the text the keyword filter matches against.
func (n NewsItem) SearchText() string {
	return n.Title + " " + n.ContentOr("")
}
