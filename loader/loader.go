package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/coreybb/newsdash/models"
)

// DefaultSource is the relative path the collector publishes the aggregated feed to.
const DefaultSource = "data/aggregated_news.json"

const maxFeedBytes = 32 << 20

// Loader fetches the aggregated feed.
type Loader interface {
	Load(ctx context.Context) (*models.Feed, error)
}

// Option configures a loader.
type Option func(*decodeOptions)

type decodeOptions struct {
	location *time.Location
}

// WithLocation sets the zone that timestamps written without an offset are read in.
// The default is the local zone.
func WithLocation(loc *time.Location) Option {
	return func(o *decodeOptions) {
		if loc != nil {
			o.location = loc
		}
	}
}

func newDecodeOptions(opts []Option) decodeOptions {
	o := decodeOptions{location: time.Local}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New picks an HTTP loader for http(s) sources and a file loader otherwise.
func New(source string, timeout time.Duration, opts ...Option) Loader {
	if source == "" {
		source = DefaultSource
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewHTTPLoader(source, &http.Client{Timeout: timeout}, opts...)
	}
	return NewFileLoader(strings.TrimPrefix(source, "file://"), opts...)
}

// HTTPLoader performs a single GET of a fixed URL.
type HTTPLoader struct {
	url    string
	client *http.Client
	opts   decodeOptions
}

func NewHTTPLoader(url string, client *http.Client, opts ...Option) *HTTPLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPLoader{url: url, client: client, opts: newDecodeOptions(opts)}
}

func (l *HTTPLoader) Load(ctx context.Context) (*models.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, newLoadError("fetch", l.url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, newLoadError("fetch", l.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newLoadError("status", l.url, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, newLoadError("read", l.url, err)
	}
	return decode(l.url, body, l.opts)
}

// FileLoader reads the feed from the local file system.
type FileLoader struct {
	path string
	opts decodeOptions
}

func NewFileLoader(path string, opts ...Option) *FileLoader {
	return &FileLoader{path: path, opts: newDecodeOptions(opts)}
}

// Path returns the file the loader reads.
func (l *FileLoader) Path() string {
	return l.path
}

func (l *FileLoader) Load(ctx context.Context) (*models.Feed, error) {
	if err := ctx.Err(); err != nil {
		return nil, newLoadError("fetch", l.path, err)
	}
	body, err := os.ReadFile(l.path)
	if err != nil {
		return nil, newLoadError("read", l.path, err)
	}
	return decode(l.path, body, l.opts)
}

func decode(source string, body []byte, opts decodeOptions) (*models.Feed, error) {
	var feed models.Feed
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&feed); err != nil {
		return nil, newLoadError("decode", source, err)
	}
	feed.Normalize(opts.location)

	log.Printf("INFO (Loader): Loaded %d news items and %d summaries from %s",
		len(feed.NewsItems), len(feed.Summaries), source)
	return &feed, nil
}
