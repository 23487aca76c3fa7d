package models

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", "2025-06-01T12:30:00Z", time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)},
		{"iso without zone", "2025-06-01T12:30:00", time.Date(2025, 6, 1, 12, 30, 0, 0, tokyo)},
		{"collector form", "20250601_123000", time.Date(2025, 6, 1, 12, 30, 0, 0, tokyo)},
		{"rfc1123z", "Sun, 01 Jun 2025 12:30:00 +0000", time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.raw, tokyo)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %v, want %v", got.Time, tt.want)
		})
	}
}

func TestParseTimestampEmpty(t *testing.T) {
	ts, err := ParseTimestamp("  ", time.UTC)
	require.NoError(t, err)
	assert.True(t, ts.IsZero())
}

func TestParseTimestampInvalid(t *testing.T) {
	_, err := ParseTimestamp("not a date", time.UTC)
	assert.Error(t, err)
}

func TestTimestampJSON(t *testing.T) {
	var item NewsItem
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","published":"2025-06-01T12:30:00Z"}`), &item))
	assert.Equal(t, 2025, item.Published.Year())
	assert.Nil(t, item.Content)

	out, err := json.Marshal(item.Published)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-06-01T12:30:00Z"`, string(out))

	var missing NewsItem
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","published":null}`), &missing))
	assert.True(t, missing.Published.IsZero())

	out, err = json.Marshal(missing.Published)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestHeadlinesAcceptsStringOrList(t *testing.T) {
	var fromString Summary
	require.NoError(t, json.Unmarshal([]byte(`{"headlines":"- a\n- b"}`), &fromString))
	assert.Equal(t, Headlines("- a\n- b"), fromString.Headlines)

	var fromList Summary
	require.NoError(t, json.Unmarshal([]byte(`{"headlines":["- a","- b"]}`), &fromList))
	assert.Equal(t, Headlines("- a\n- b"), fromList.Headlines)

	var bad Summary
	assert.Error(t, json.Unmarshal([]byte(`{"headlines":42}`), &bad))
}

func TestFeedNormalize(t *testing.T) {
	var f Feed
	require.NoError(t, json.Unmarshal([]byte(`{}`), &f))
	f.Normalize(time.UTC)
	assert.NotNil(t, f.NewsItems)
	assert.NotNil(t, f.Summaries)
	assert.Empty(t, f.NewsItems)
}

func TestFeedNormalizeAnchorsZonelessTimestamps(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	var f Feed
	require.NoError(t, json.Unmarshal([]byte(`{
		"news_items": [
			{"title": "zoneless", "published": "2025-06-01T12:30:00.250000"},
			{"title": "zoned", "published": "2025-06-01T12:30:00Z"}
		],
		"summaries": [{"timestamp": "20250601_090000"}]
	}`), &f))
	assert.True(t, f.NewsItems[0].Published.Floating())
	assert.False(t, f.NewsItems[1].Published.Floating())

	f.Normalize(tokyo)

	assert.True(t, time.Date(2025, 6, 1, 12, 30, 0, 250000000, tokyo).Equal(f.NewsItems[0].Published.Time))
	assert.False(t, f.NewsItems[0].Published.Floating())
	assert.True(t, time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC).Equal(f.NewsItems[1].Published.Time))
	assert.True(t, time.Date(2025, 6, 1, 9, 0, 0, 0, tokyo).Equal(f.Summaries[0].Timestamp.Time))
}

func TestTimestampMarshalKeepsFractionalSeconds(t *testing.T) {
	ts := NewTimestamp(time.Date(2025, 6, 1, 12, 30, 0, 123456000, time.UTC))
	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-06-01T12:30:00.123456Z"`, string(out))

	var back Timestamp
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, ts.Equal(back.Time))
}

func TestParseDateRange(t *testing.T) {
	assert.Equal(t, DateRangeToday, ParseDateRange("today"))
	assert.Equal(t, DateRangeMonth, ParseDateRange("month"))
	assert.Equal(t, DateRangeAll, ParseDateRange("yesterday"))
	assert.Equal(t, -1, DateRangeAll.MaxDays())
	assert.Equal(t, 7, DateRangeWeek.MaxDays())
}

func TestNewsItemContentOr(t *testing.T) {
	empty := ""
	body := "body"
	assert.Equal(t, "fallback", NewsItem{}.ContentOr("fallback"))
	assert.Equal(t, "fallback", NewsItem{Content: &empty}.ContentOr("fallback"))
	assert.Equal(t, "body", NewsItem{Content: &body}.ContentOr("fallback"))
	assert.Equal(t, "Title body", NewsItem{Title: "Title", Content: &body}.SearchText())
}
