package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Table-walking helpers shared by the site extractors. Display boards are
// plain HTML tables with three recurring complications: the table has to be
// found first (by selector, XPath, or a header marker), cells carry
// colspan/rowspan that shift positional decoding, and header labels move
// between deployments.

// TableBySelector returns the first table matching a CSS selector, nil if
// absent.
func TableBySelector(doc *goquery.Document, selector string) *goquery.Selection {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel
}

// TableByXPath locates a table with an XPath expression and re-roots a
// goquery selection on it. Returns nil when the expression matches nothing
// or is invalid.
func TableByXPath(doc *goquery.Document, expr string) *goquery.Selection {
	if doc == nil || len(doc.Nodes) == 0 {
		return nil
	}
	node, err := htmlquery.Query(doc.Nodes[0], expr)
	if err != nil || node == nil {
		return nil
	}
	return goquery.NewDocumentFromNode(node).Selection
}

// TableByMarker scans every table on the page for one whose header row
// contains the marker string (e.g. "CH No."). Returns nil when no table
// qualifies.
func TableByMarker(doc *goquery.Document, marker string) *goquery.Selection {
	tables := TablesByMarker(doc, marker)
	if len(tables) == 0 {
		return nil
	}
	return tables[0]
}

// TablesByMarker returns every table whose header row contains the marker, in
// document order. Boards that stack one table per bench on a single page need
// the full list to pick theirs by position.
func TablesByMarker(doc *goquery.Document, marker string) []*goquery.Selection {
	var found []*goquery.Selection
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		header := table.Find("tr").First()
		cells := header.Find("th")
		if cells.Length() == 0 {
			cells = header.Find("td")
		}
		match := false
		cells.Each(func(_ int, cell *goquery.Selection) {
			if strings.Contains(CellText(cell), marker) {
				match = true
			}
		})
		if match {
			found = append(found, table)
		}
	})
	return found
}

// Rows returns the data rows of a table: tbody rows when a tbody exists,
// all rows otherwise.
func Rows(table *goquery.Selection) []*goquery.Selection {
	scope := table.Find("tbody").First()
	if scope.Length() == 0 {
		scope = table
	}
	var rows []*goquery.Selection
	scope.Find("tr").Each(func(_ int, row *goquery.Selection) {
		rows = append(rows, row)
	})
	return rows
}

// Cells returns a row's td cells, falling back to th for boards that mark
// data cells as headers (Kerala does).
func Cells(row *goquery.Selection) []*goquery.Selection {
	var cells []*goquery.Selection
	row.Find("td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, cell)
	})
	if len(cells) == 0 {
		row.Find("th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cell)
		})
	}
	return cells
}

// CellText extracts a cell's visible text with nested markup flattened and
// whitespace collapsed.
func CellText(cell *goquery.Selection) string {
	if cell == nil {
		return ""
	}
	return CleanText(cell.Text())
}

// CellHTML returns a cell's inner HTML, "" when the selection is empty.
// Extractors use it to spot onclick handlers and embedded links that the
// visible text does not carry.
func CellHTML(cell *goquery.Selection) string {
	if cell == nil {
		return ""
	}
	h, err := cell.Html()
	if err != nil {
		return ""
	}
	return h
}

// CellValueOrText prefers the value of an embedded <input> over the cell's
// text. Flip-card boards render the live case number as a button value.
func CellValueOrText(cell *goquery.Selection) string {
	if cell == nil {
		return ""
	}
	if v, ok := cell.Find("input").First().Attr("value"); ok && strings.TrimSpace(v) != "" {
		return CleanText(v)
	}
	return CellText(cell)
}

// SpanAttr reads an integer span attribute (colspan/rowspan) off a cell's
// underlying node, defaulting to 1 when absent or malformed.
func SpanAttr(cell *goquery.Selection, name string) int {
	if cell == nil || len(cell.Nodes) == 0 {
		return 1
	}
	for _, attr := range cell.Nodes[0].Attr {
		if attr.Key == name {
			if n, err := strconv.Atoi(strings.TrimSpace(attr.Val)); err == nil && n > 0 {
				return n
			}
			return 1
		}
	}
	return 1
}

// HasAttr reports whether the cell's node carries the named attribute at all.
func HasAttr(cell *goquery.Selection, name string) bool {
	if cell == nil || len(cell.Nodes) == 0 {
		return false
	}
	for _, attr := range cell.Nodes[0].Attr {
		if attr.Key == name {
			return true
		}
	}
	return false
}

// HeaderIndex maps a table's header labels to their column positions, so
// extraction follows labels instead of trusting fixed indices.
func HeaderIndex(table *goquery.Selection) map[string]int {
	index := make(map[string]int)
	header := table.Find("thead tr").First()
	if header.Length() == 0 {
		header = table.Find("tr").First()
	}
	cells := header.Find("th")
	if cells.Length() == 0 {
		cells = header.Find("td")
	}
	cells.Each(func(i int, cell *goquery.Selection) {
		if label := CellText(cell); label != "" {
			index[label] = i
		}
	})
	return index
}

// ColumnOr returns the mapped index for a header label, or the fallback when
// the label is missing from the header row.
func ColumnOr(index map[string]int, label string, fallback int) int {
	if i, ok := index[label]; ok {
		return i
	}
	return fallback
}

// NodeText collects the text content of an html.Node subtree. Used where a
// raw htmlquery node has not been wrapped in a goquery selection.
func NodeText(n *html.Node) string {
	return CleanText(htmlquery.InnerText(n))
}
