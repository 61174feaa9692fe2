package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parse reads an HTML document into a Fragment rooted at the document node.
func Parse(r io.Reader) (Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("markup: parse document: %w", err)
	}
	return selection{doc.Selection}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (Fragment, error) {
	return Parse(strings.NewReader(s))
}

type selection struct {
	sel *goquery.Selection
}

func (q Query) selector() string {
	var b strings.Builder
	b.WriteString(q.Tag)
	if q.Class != "" {
		b.WriteString("." + q.Class)
	}
	if q.NotClass != "" {
		b.WriteString(":not(." + q.NotClass + ")")
	}
	if b.Len() == 0 {
		return "*"
	}
	return b.String()
}

func (s selection) Find(q Query) (Fragment, bool) {
	found := s.sel.Find(q.selector()).First()
	if found.Length() == 0 {
		return nil, false
	}
	return selection{found}, true
}

func (s selection) FindAll(q Query) []Fragment {
	return wrap(s.sel.Find(q.selector()))
}

func (s selection) FindWithin(outer, inner Query) []Fragment {
	// Find on a multi-node selection already deduplicates and keeps document order.
	return wrap(s.sel.Find(outer.selector()).Find(inner.selector()))
}

func (s selection) Text() string {
	return s.sel.Text()
}

func (s selection) TextRuns() []string {
	var runs []string
	for _, n := range s.sel.Nodes {
		collectText(n, &runs)
	}
	return runs
}

func collectText(n *html.Node, runs *[]string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if t := strings.TrimSpace(c.Data); t != "" {
				*runs = append(*runs, t)
			}
		case html.ElementNode, html.DocumentNode:
			collectText(c, runs)
		}
	}
}

func (s selection) TextAfter(tag string) []string {
	var out []string
	s.sel.Find(tag).Each(func(_ int, el *goquery.Selection) {
		next := el.Nodes[0].NextSibling
		if next == nil || next.Type != html.TextNode {
			out = append(out, "")
			return
		}
		out = append(out, strings.TrimSpace(next.Data))
	})
	return out
}

func wrap(sel *goquery.Selection) []Fragment {
	out := make([]Fragment, 0, sel.Length())
	sel.Each(func(_ int, el *goquery.Selection) {
		out = append(out, selection{el})
	})
	return out
}
