package source

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/altinukshini/truelies-tui/internal/model"
)

// CSS classes of the rendered report.
const (
	classResultRow  = "result-row"
	classDetailsRow = "details-row"
	classTestName   = "test-name-cell"
	classStatus     = "status-cell"
	classScore      = "score-cell"
	classDate       = "date-cell"
	classFacts      = "facts-cell"
	classDetail     = "detail-item"
	classLabel      = "detail-label"
	classValue      = "detail-value"
)

func loadHTMLFile(path string) ([]model.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadHTML(f)
}

// LoadHTML extracts rows from a rendered report. Each tr.result-row gives a
// row; a tr.details-row directly after it gives that row's details.
func LoadHTML(r io.Reader) ([]model.Row, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}

	var rows []model.Row
	var walkErr error
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if walkErr != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr && hasClass(n, classResultRow) {
			row, err := rowFromNode(n)
			if err != nil {
				walkErr = fmt.Errorf("row %d: %w", len(rows)+1, err)
				return
			}
			if d := nextElement(n); d != nil && d.DataAtom == atom.Tr && hasClass(d, classDetailsRow) {
				row.Details = detailsFromNode(d)
			}
			rows = append(rows, row)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if walkErr != nil {
		return nil, walkErr
	}
	return rows, nil
}

func rowFromNode(tr *html.Node) (model.Row, error) {
	cells := map[string]string{}
	for td := tr.FirstChild; td != nil; td = td.NextSibling {
		if td.Type != html.ElementNode {
			continue
		}
		for _, cls := range []string{classTestName, classStatus, classScore, classDate, classFacts} {
			if hasClass(td, cls) {
				cells[cls] = collapse(textOf(td))
			}
		}
	}
	scoreText := cells[classScore]
	score, err := strconv.ParseFloat(scoreText, 64)
	if err != nil {
		return model.Row{}, fmt.Errorf("score %q: %w", scoreText, err)
	}
	return model.Row{
		TestName:  cells[classTestName],
		Status:    cells[classStatus],
		Score:     score,
		ScoreText: scoreText,
		Date:      cells[classDate],
		Facts:     cells[classFacts],
	}, nil
}

func detailsFromNode(n *html.Node) []model.Detail {
	var out []model.Detail
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, classDetail) {
			out = append(out, detailFromNode(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func detailFromNode(n *html.Node) model.Detail {
	var d model.Detail
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case hasClass(c, classLabel):
			d.Key = strings.TrimSuffix(collapse(textOf(c)), ":")
		case hasClass(c, classValue):
			d.Value = collapse(textOf(c))
		}
	}
	if d.Key == "" && d.Value == "" {
		k, v, _ := strings.Cut(collapse(textOf(n)), ":")
		d = model.Detail{Key: strings.TrimSpace(k), Value: strings.TrimSpace(v)}
	}
	return d
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func nextElement(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
