package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/coreybb/newsdash/dashboard"
	"github.com/coreybb/newsdash/delivery"
	"github.com/coreybb/newsdash/ebook"
	"github.com/coreybb/newsdash/render"
	"github.com/coreybb/newsdash/scheduler"
	"github.com/coreybb/newsdash/storage"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const commandTimeout = 2 * time.Minute

// filterFlags mirror the dashboard filter controls.
type filterFlags struct {
	date    string
	source  string
	company string
	keyword string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "all", "date bucket: all, today, week or month")
	cmd.Flags().StringVar(&f.source, "source", "all", "exact source name")
	cmd.Flags().StringVar(&f.company, "company", "all", "company name contained in the title")
	cmd.Flags().StringVar(&f.keyword, "keyword", "", "keyword contained in title or content")
}

func (f *filterFlags) query() url.Values {
	return url.Values{
		"date":    {f.date},
		"source":  {f.source},
		"company": {f.company},
		"keyword": {f.keyword},
	}
}

var (
	renderFilters filterFlags
	renderOut     string

	listFilters filterFlags

	exportFilters filterFlags
	exportDir     string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the dashboard to a static HTML file",
	RunE:  runRender,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the filtered news items as a table",
	RunE:  runList,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered view and summaries as an EPUB edition",
	RunE:  runExport,
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Send the news digest to the configured recipients",
	RunE:  runDigest,
}

func init() {
	renderFilters.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")
	listFilters.register(listCmd)
	exportFilters.register(exportCmd)
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "output directory (default _output)")
}

func openView(a *app, q url.Values) (*dashboard.Controller, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	return a.views.Open(ctx, q)
}

func runRender(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	// A failed load still produces a page carrying the inline error.
	c, loadErr := openView(a, renderFilters.query())

	var w io.Writer = cmd.OutOrStdout()
	if renderOut != "" {
		f, err := os.Create(renderOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", renderOut, err)
		}
		defer f.Close()
		w = f
	}

	if err := render.WritePage(w, c.Page()); err != nil {
		return err
	}
	return loadErr
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	c, err := openView(a, listFilters.query())
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Published", "Source", "Title"})
	table.SetAutoWrapText(false)
	for _, item := range render.SortNews(c.View()) {
		table.Append([]string{a.renderer.FormatDate(item.Published.Time), item.Source, item.Title})
	}
	total, recent, companies, lastUpdate := a.renderer.StatFields(c.Stats())
	table.SetFooter([]string{"total " + total, "recent " + recent, "companies " + companies + " / " + lastUpdate})
	table.Render()
	return nil
}

func runDigest(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	service := a.digestService()
	if service == nil {
		return fmt.Errorf("digest delivery is not configured (set SMTP_SERVER and EMAIL_ADDRESS)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	result, err := scheduler.SendDigest(ctx, a.views, delivery.NewComposer(a.renderer), service)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "digest sent to %d recipients, %d failed\n", len(result.Sent), len(result.Failed))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	c, err := openView(a, exportFilters.query())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	edition, err := ebook.NewEditionGenerator(a.renderer).GenerateEdition(ctx, ebook.Metadata{}, c.View(), c.Summaries(), c.Now())
	if err != nil {
		return err
	}

	storer := storage.NewLocalFileStorer(exportDir)
	path, err := storer.Store("editions", edition.FileName, edition.Body)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "edition %s written to %s\n", edition.ID, filepath.Join(storer.BasePath(), path))
	return nil
}
