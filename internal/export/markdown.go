package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/bendaniels95/firelanding/internal/content"
	"github.com/bendaniels95/firelanding/internal/navigation"
	"github.com/bendaniels95/firelanding/internal/ui/components"
	"github.com/bendaniels95/firelanding/internal/ui/features/landing"
)

// documents writes <id>.md for every legal document, for pasting into store
// listings and support replies.
func (w *writer) documents(ctx context.Context, opts landing.Options) error {
	date := opts.PageData(navigation.NewState()).DocumentDate()
	for _, doc := range opts.Site.Documents {
		md, err := Markdown(ctx, doc, date)
		if err != nil {
			return err
		}
		if err := w.write(doc.ID+".md", []byte(md)); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders doc the way the page shows it and converts the HTML to
// Markdown.
func Markdown(ctx context.Context, doc content.Document, lastUpdated time.Time) (string, error) {
	var buf bytes.Buffer
	if err := components.LegalSection(doc, lastUpdated, false).Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", doc.ID, err)
	}
	md, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil {
		return "", fmt.Errorf("failed to convert %s to markdown: %w", doc.ID, err)
	}
	return strings.TrimSpace(md) + "\n", nil
}
