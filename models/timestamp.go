package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// collectorLayout is the compact form the news collector writes for summary timestamps.
const collectorLayout = "20060102_150405"

// offsetCheckZone is an offset no real zone uses; parsing under it reveals whether raw names its own zone.
var offsetCheckZone = time.FixedZone("check", 5*3600+17*60)

// Timestamp is a time.Time that tolerates the loose formats found in the aggregated feed.
// Values written without a zone offset are decoded as UTC wall clock and stay floating
// until Anchor places them in a location.
type Timestamp struct {
	time.Time
	floating bool
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses raw, reading zone-less values as wall clock in loc.
// An empty string yields the zero Timestamp.
func ParseTimestamp(raw string, loc *time.Location) (Timestamp, error) {
	if loc == nil {
		loc = time.Local
	}
	ts, err := parseFloating(raw)
	if err != nil {
		return Timestamp{}, err
	}
	return ts.Anchor(loc), nil
}

func parseFloating(raw string) (Timestamp, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Timestamp{}, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return Timestamp{Time: t}, nil
	}
	if t, err := time.ParseInLocation(collectorLayout, raw, time.UTC); err == nil {
		return Timestamp{Time: t, floating: true}, nil
	}

	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return Timestamp{}, fmt.Errorf("unrecognised timestamp %q: %w", raw, err)
	}
	rechecked, err := dateparse.ParseIn(raw, offsetCheckZone)
	if err != nil {
		return Timestamp{}, fmt.Errorf("unrecognised timestamp %q: %w", raw, err)
	}
	return Timestamp{Time: t, floating: !t.Equal(rechecked)}, nil
}

// Floating reports whether the value was written without a zone and is not yet anchored.
func (ts Timestamp) Floating() bool {
	return ts.floating
}

// Anchor places a floating value's wall clock in loc. Zoned values are returned unchanged.
func (ts Timestamp) Anchor(loc *time.Location) Timestamp {
	if !ts.floating || loc == nil {
		return ts
	}
	t := ts.Time
	return Timestamp{Time: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)}
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	parsed, err := parseFloating(raw)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Format(time.RFC3339Nano))
}
