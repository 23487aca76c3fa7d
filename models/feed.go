package models

import "time"

// Feed is the aggregated document the dashboard loads.
type Feed struct {
	NewsItems []NewsItem `json:"news_items"`
	Summaries []Summary  `json:"summaries"`
}

// Normalize replaces absent collections with empty ones and anchors zone-less
// timestamps in loc.
func (f *Feed) Normalize(loc *time.Location) {
	if f.NewsItems == nil {
		f.NewsItems = []NewsItem{}
	}
	if f.Summaries == nil {
		f.Summaries = []Summary{}
	}
	for i := range f.NewsItems {
		f.NewsItems[i].Published = f.NewsItems[i].Published.Anchor(loc)
	}
	for i := range f.Summaries {
		f.Summaries[i].Timestamp = f.Summaries[i].Timestamp.Anchor(loc)
	}
}
