package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/coreybb/newsdash/models"
	"github.com/coreybb/newsdash/stats"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// Option is one entry of a select control.
type Option struct {
	Value string
	Label string
}

// DateOptions are the choices of the date control, in display order.
var DateOptions = []Option{
	{Value: string(models.DateRangeAll), Label: "すべて"},
	{Value: string(models.DateRangeToday), Label: "今日"},
	{Value: string(models.DateRangeWeek), Label: "今週"},
	{Value: string(models.DateRangeMonth), Label: "今月"},
}

// AllLabel is the label of the "all" option of the source and company controls.
const AllLabel = "すべて"

// Page is every display region and control value of the dashboard document.
type Page struct {
	NewsTimeline     template.HTML
	SummaryContainer template.HTML
	TotalNews        string
	RecentUpdates    string
	UniqueCompanies  string
	LastUpdate       string

	State          models.FilterState
	KeywordInput   string
	DateOptions    []Option
	SourceOptions  []Option
	CompanyOptions []Option
}

// StatFields formats the four stat regions.
func (r *Renderer) StatFields(s stats.Stats) (total, recent, companies, lastUpdate string) {
	lastUpdate = labelNoData
	if s.HasLastUpdate {
		lastUpdate = r.FormatDate(s.LastUpdate.Time)
	}
	return fmt.Sprint(s.Total), fmt.Sprint(s.Recent), fmt.Sprint(s.UniqueCompanies), lastUpdate
}

// SelectOptions prepends the "all" option to values.
func SelectOptions(values []string) []Option {
	opts := make([]Option, 0, len(values)+1)
	opts = append(opts, Option{Value: models.FilterAll, Label: AllLabel})
	for _, v := range values {
		opts = append(opts, Option{Value: v, Label: v})
	}
	return opts
}

// WritePage renders the full dashboard document.
func WritePage(w io.Writer, page Page) error {
	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to execute dashboard template: %w", err)
	}
	return nil
}
