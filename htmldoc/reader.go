// Package htmldoc extracts tables from HTML documents.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/romanch203/DataConverterPro/model"
)

// Reader provides access to the tables of one HTML document.
type Reader struct {
	doc *html.Node
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader. The parser is tolerant;
// malformed markup yields a best-effort tree rather than an error.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Reader{doc: doc}, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	return nil
}

// Tables returns every <table> in document order as a grid of cell text.
// Both <td> and <th> cells contribute; colspan attributes expand by
// repeating the cell text. Rows inside <thead>, <tbody>, and <tfoot> are
// flattened in document order. Nested tables are emitted separately and
// their text does not leak into the enclosing cell.
func (r *Reader) Tables() []model.Grid {
	var grids []model.Grid
	walk(r.doc, "table", func(tbl *html.Node) {
		grid := parseTable(tbl)
		if !grid.IsEmpty() {
			grids = append(grids, grid)
		}
	})
	return grids
}

// walk calls fn for every element named tag in document order, nested
// occurrences included.
func walk(n *html.Node, tag string, fn func(*html.Node)) {
	if n.Type == html.ElementNode && n.Data == tag {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, tag, fn)
	}
}

// parseTable collects the direct rows of one table element.
func parseTable(tbl *html.Node) model.Grid {
	grid := model.Grid{Source: model.SourceNative}

	var collectRows func(n *html.Node)
	collectRows = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "tr":
				cells := parseRow(c)
				if !blankRow(cells) {
					grid.Rows = append(grid.Rows, cells)
				}
			case "thead", "tbody", "tfoot":
				collectRows(c)
			}
		}
	}
	collectRows(tbl)

	grid.Rectangularize()
	return grid
}

// parseRow flattens one <tr>, expanding colspan by repetition.
func parseRow(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		text := nodeText(c)
		span := 1
		if v := attr(c, "colspan"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 1 {
				span = n
			}
		}
		for i := 0; i < span; i++ {
			cells = append(cells, text)
		}
	}
	return cells
}

// nodeText returns the whitespace-normalized text of a node, excluding any
// nested table content.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "table":
				return
			case "br":
				sb.WriteString(" ")
			case "script", "style":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		visit(c)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
