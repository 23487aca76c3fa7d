// Package dashboard owns the filter state and orchestrates filter, stats and render passes.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"time"

	"github.com/coreybb/newsdash/filtering"
	"github.com/coreybb/newsdash/loader"
	"github.com/coreybb/newsdash/models"
	"github.com/coreybb/newsdash/render"
	"github.com/coreybb/newsdash/stats"
)

// ErrUnknownControl is returned by Dispatch for ids with no registered handler.
var ErrUnknownControl = errors.New("unknown control")

// Mutation changes exactly one field of the filter state.
type Mutation func(state *models.FilterState, value string)

// Controller is a single dashboard view. It is not safe for concurrent use;
// each viewer gets its own controller over a shared loader.
type Controller struct {
	loader   loader.Loader
	renderer *render.Renderer
	now      func() time.Time

	state        models.FilterState
	keywordInput string
	items        []models.NewsItem
	summaries    []models.Summary
	sources      []string
	loadErr      error

	view  []models.NewsItem
	stats stats.Stats
	page  render.Page

	handlers map[string]Mutation
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source used for date buckets and labels.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func New(l loader.Loader, renderer *render.Renderer, opts ...Option) *Controller {
	c := &Controller{
		loader:    l,
		renderer:  renderer,
		now:       time.Now,
		state:     models.DefaultFilterState(),
		items:     []models.NewsItem{},
		summaries: []models.Summary{},
		sources:   []string{},
		handlers:  make(map[string]Mutation),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.registerHandlers()
	return c
}

// registerHandlers binds one mutation to each filter control.
func (c *Controller) registerHandlers() {
	c.Register(ControlDate, func(s *models.FilterState, v string) { s.Date = models.ParseDateRange(v) })
	c.Register(ControlSource, func(s *models.FilterState, v string) { s.Source = orAll(v) })
	c.Register(ControlCompany, func(s *models.FilterState, v string) { s.Company = orAll(v) })
	c.Register(ControlKeyword, func(s *models.FilterState, v string) {
		c.keywordInput = v
		s.Keyword = models.NormalizeKeyword(v)
	})
}

func orAll(v string) string {
	if v == "" {
		return models.FilterAll
	}
	return v
}

// Register binds mutation to control, replacing any earlier binding.
func (c *Controller) Register(control string, mutation Mutation) {
	c.handlers[control] = mutation
}

// Init loads the feed, derives the source options and performs the first pass.
// A load failure is kept and rendered as an inline error; it is also returned.
func (c *Controller) Init(ctx context.Context) error {
	feed, err := c.loader.Load(ctx)
	if err != nil {
		log.Printf("ERROR (Dashboard): Error loading data: %v", err)
		c.loadErr = err
		c.Recompute()
		return err
	}

	c.items = feed.NewsItems
	c.summaries = feed.Summaries
	c.sources = filtering.Sources(c.items)
	c.Recompute()
	return nil
}

// Mutate applies the handler bound to control without recomputing.
func (c *Controller) Mutate(control, value string) error {
	if control == ControlClear {
		c.state = models.DefaultFilterState()
		c.keywordInput = ""
		return nil
	}
	mutation, ok := c.handlers[control]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownControl, control)
	}
	mutation(&c.state, value)
	return nil
}

// Dispatch handles one control event: mutate, then recompute the whole view.
func (c *Controller) Dispatch(control, value string) error {
	if err := c.Mutate(control, value); err != nil {
		return err
	}
	c.Recompute()
	return nil
}

// Clear resets every filter to its default and recomputes.
func (c *Controller) Clear() {
	_ = c.Dispatch(ControlClear, "")
}

// ApplyQuery dispatches each filter parameter present in q.
func (c *Controller) ApplyQuery(q url.Values) {
	for _, p := range QueryParams {
		if !q.Has(p.Param) {
			continue
		}
		_ = c.Dispatch(p.Control, q.Get(p.Param))
	}
}

// Recompute rebuilds the filtered view from the full collection, then the stats
// and every display region.
func (c *Controller) Recompute() {
	now := c.now()
	c.view = filtering.Apply(c.items, c.state, now)
	c.stats = stats.Compute(c.view, now)
	c.page = c.buildPage(now)
}

func (c *Controller) buildPage(now time.Time) render.Page {
	page := render.Page{
		State:          c.state,
		KeywordInput:   c.keywordInput,
		DateOptions:    render.DateOptions,
		SourceOptions:  render.SelectOptions(c.sources),
		CompanyOptions: render.SelectOptions(stats.KnownCompanies),
	}
	page.TotalNews, page.RecentUpdates, page.UniqueCompanies, page.LastUpdate = c.renderer.StatFields(c.stats)

	if c.loadErr != nil {
		page.NewsTimeline = template.HTML(render.Error(render.LoadFailedMessage))
	} else {
		page.NewsTimeline = template.HTML(c.renderer.News(c.view, now))
	}
	page.SummaryContainer = template.HTML(c.renderer.Summaries(c.summaries))
	return page
}

// State returns a copy of the current filter state.
func (c *Controller) State() models.FilterState {
	return c.state
}

// View returns the current filtered view.
func (c *Controller) View() []models.NewsItem {
	return c.view
}

// Stats returns the counters of the current filtered view.
func (c *Controller) Stats() stats.Stats {
	return c.stats
}

// Summaries returns the loaded summaries in load order.
func (c *Controller) Summaries() []models.Summary {
	return c.summaries
}

// Sources returns the distinct sources of the loaded items, first-seen order.
func (c *Controller) Sources() []string {
	return c.sources
}

// LoadErr returns the error of the initial load, if any.
func (c *Controller) LoadErr() error {
	return c.loadErr
}

// Page returns the rendered page as of the last recompute.
func (c *Controller) Page() render.Page {
	return c.page
}

// Now returns the controller's current time.
func (c *Controller) Now() time.Time {
	return c.now()
}

// Regions returns the content of each named display region.
func (c *Controller) Regions() map[string]string {
	return map[string]string{
		RegionNewsTimeline:    string(c.page.NewsTimeline),
		RegionSummaries:       string(c.page.SummaryContainer),
		RegionTotalNews:       c.page.TotalNews,
		RegionRecentUpdates:   c.page.RecentUpdates,
		RegionUniqueCompanies: c.page.UniqueCompanies,
		RegionLastUpdate:      c.page.LastUpdate,
	}
}

// ControlValues returns the value each filter control currently displays.
// The keyword control shows the text as typed; the filter state holds it lowercased.
func (c *Controller) ControlValues() map[string]string {
	return map[string]string{
		ControlDate:    string(c.state.Date),
		ControlSource:  c.state.Source,
		ControlCompany: c.state.Company,
		ControlKeyword: c.keywordInput,
	}
}
