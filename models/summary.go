package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Summary is one rolling digest produced by the collector.
type Summary struct {
	Timestamp Timestamp `json:"timestamp"`
	NewsCount int       `json:"news_count"`
	Headlines Headlines `json:"headlines,omitempty"`
	Summary   string    `json:"summary"`
}

// Headlines holds the line-delimited headline text of a summary.
// The collector has emitted it both as a single string and as a list of lines.
type Headlines string

func (h *Headlines) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*h = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*h = Headlines(s)
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("headlines must be a string or a list of strings: %w", err)
	}
	*h = Headlines(strings.Join(lines, "\n"))
	return nil
}
