package content

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Span is a run of inline text. At most one of Bold and Href applies.
type Span struct {
	Text string
	Bold bool
	Href string
}

// External reports whether the span links off-site (not mailto).
func (s Span) External() bool {
	return strings.HasPrefix(s.Href, "http")
}

func (s Span) plain() bool {
	return !s.Bold && s.Href == ""
}

// inlineParser knows paragraphs, links and emphasis only. Lists, headings,
// code and raw HTML stay literal text.
var inlineParser = parser.NewParser(
	parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
	parser.WithInlineParsers(
		util.Prioritized(parser.NewLinkParser(), 200),
		util.Prioritized(parser.NewEmphasisParser(), 500),
	),
)

// Inline splits s into spans on **bold** and [text](url) markup. Anything
// else, including unbalanced markers, is plain text. Single emphasis is
// flattened to plain text.
func Inline(s string) []Span {
	src := []byte(s)
	doc := inlineParser.Parse(text.NewReader(src))

	var spans []Span
	add := func(sp Span) {
		if sp.Text == "" {
			return
		}
		if n := len(spans); n > 0 && sp.plain() && spans[n-1].plain() {
			spans[n-1].Text += sp.Text
			return
		}
		spans = append(spans, sp)
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Paragraph:
			if n.PreviousSibling() != nil {
				add(Span{Text: " "})
			}
		case *ast.Emphasis:
			add(Span{Text: textOf(n, src), Bold: n.Level == 2})
			return ast.WalkSkipChildren, nil
		case *ast.Link:
			add(Span{Text: textOf(n, src), Href: string(n.Destination)})
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			add(Span{Text: segmentText(n, src)})
		}
		return ast.WalkContinue, nil
	})
	return spans
}

// textOf flattens the text under n.
func textOf(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.WriteString(segmentText(t, src))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func segmentText(t *ast.Text, src []byte) string {
	s := string(t.Segment.Value(src))
	if t.SoftLineBreak() || t.HardLineBreak() {
		s += " "
	}
	return s
}
