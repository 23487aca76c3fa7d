package ebook

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/coreybb/newsdash/models"
	"github.com/coreybb/newsdash/render"
	epub "github.com/go-shiori/go-epub"
	"github.com/google/uuid"
)

// Metadata describes the generated edition.
type Metadata struct {
	Title    string
	Author   string
	Language string // ISO639 code
}

// Edition is a generated EPUB held in memory.
type Edition struct {
	ID       string
	FileName string
	Body     []byte
}

// EditionGenerator packages the filtered view and the summaries as an EPUB.
type EditionGenerator struct {
	renderer *render.Renderer
}

func NewEditionGenerator(renderer *render.Renderer) *EditionGenerator {
	log.Println("INFO (EditionGenerator): Using go-epub for EPUB generation")
	return &EditionGenerator{renderer: renderer}
}

// GenerateEdition builds one section for the news timeline and one per summary.
func (eg *EditionGenerator) GenerateEdition(
	ctx context.Context,
	metadata Metadata,
	view []models.NewsItem,
	summaries []models.Summary,
	now time.Time,
) (*Edition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	startTime := time.Now()

	title := metadata.Title
	if title == "" {
		title = "AI News " + now.In(eg.renderer.Location()).Format("2006-01-02")
	}
	author := metadata.Author
	if author == "" {
		author = "newsdash"
	}
	lang := metadata.Language
	if lang == "" {
		lang = "ja"
	}

	e, err := epub.NewEpub(title)
	if err != nil {
		return nil, fmt.Errorf("failed to create epub: %w", err)
	}
	editionID := uuid.NewString()
	e.SetAuthor(author)
	e.SetLang(lang)
	e.SetIdentifier("urn:uuid:" + editionID)
	e.SetDescription(fmt.Sprintf("%d news items, %d summaries", len(view), len(summaries)))

	if _, err := e.AddSection(toXHTML(eg.renderer.News(view, now)), "ニュースタイムライン", "news.xhtml", ""); err != nil {
		return nil, fmt.Errorf("failed to add news section to epub: %w", err)
	}

	for i, s := range render.SortSummaries(summaries) {
		sectionTitle := eg.renderer.FormatDate(s.Timestamp.Time)
		fileName := fmt.Sprintf("summary-%03d.xhtml", i+1)
		if _, err := e.AddSection(toXHTML(eg.renderer.Summary(s)), sectionTitle, fileName, ""); err != nil {
			return nil, fmt.Errorf("failed to add summary section %d to epub: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if _, err := e.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write epub: %w", err)
	}

	log.Printf("INFO (EditionGenerator): Generated EPUB edition %s (Size: %d bytes, Took: %s)",
		editionID, buf.Len(), time.Since(startTime))

	return &Edition{
		ID:       editionID,
		FileName: "ai-news-" + now.In(eg.renderer.Location()).Format("20060102") + ".epub",
		Body:     buf.Bytes(),
	}, nil
}

// toXHTML closes the void elements the renderer emits so sections parse as XHTML.
func toXHTML(html string) string {
	return strings.ReplaceAll(html, "<br>", "<br />")
}
