package spineitem

import (
	"bytes"
	"fmt"
	"math"
	"path"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"leaf/css"
	"leaf/geometry"
)

// Metrics are typographic assumptions of EstimatingRenderer.
type Metrics struct {
	CharWidth  float64
	LineHeight float64
}

// DefaultMetrics roughly match 16px serif text.
var DefaultMetrics = Metrics{CharWidth: 9, LineHeight: 24}

// StyleSource returns content of stylesheet referenced from the item.
type StyleSource func(href string) ([]byte, error)

type contentKind int

const (
	kindNone contentKind = iota
	kindMarkup
	kindImage
)

// run is text node placed into the cell grid.
type run struct {
	node   *html.Node
	start  int
	length int
}

// EstimatingRenderer lays content out on a fixed character grid instead of
// real typesetting. Results are deterministic, which is all page arithmetic
// needs when no layout engine is around.
type EstimatingRenderer struct {
	href    string
	styles  StyleSource
	parser  *css.Parser
	metrics Metrics
	log     *zap.Logger

	mu       sync.RWMutex
	kind     contentKind
	doc      *html.Node
	vertical bool

	// grid of the last layout pass
	params       LayoutParams
	cellsPerLine int
	linesPerPage int
	pages        int
	runs         []run
	elements     map[*html.Node]int
}

func NewEstimatingRenderer(href string, styles StyleSource, parser *css.Parser, m Metrics, log *zap.Logger) *EstimatingRenderer {
	if m.CharWidth <= 0 || m.LineHeight <= 0 {
		m = DefaultMetrics
	}
	return &EstimatingRenderer{
		href:    href,
		styles:  styles,
		parser:  parser,
		metrics: m,
		log:     log.Named("estimate"),
	}
}

func (r *EstimatingRenderer) Load(mediaType string, data []byte) error {
	var (
		kind     contentKind
		doc      *html.Node
		vertical bool
	)
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		kind = kindImage
	case strings.Contains(mediaType, "html") || strings.HasSuffix(mediaType, "+xml"):
		var err error
		if doc, err = html.Parse(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("unable to parse %s: %w", r.href, err)
		}
		kind = kindMarkup
		vertical = r.detectVerticalWriting(doc)
	default:
		return fmt.Errorf("unsupported media type %q for %s", mediaType, r.href)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.kind, r.doc, r.vertical = kind, doc, vertical
	r.runs, r.elements = nil, nil
	return nil
}

func (r *EstimatingRenderer) Unload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kind, r.doc, r.vertical = kindNone, nil, false
	r.runs, r.elements, r.pages = nil, nil, 0
}

func (r *EstimatingRenderer) IsUsingVerticalWriting() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.vertical
}

func (r *EstimatingRenderer) Document() *html.Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.doc
}

// detectVerticalWriting looks at root and body styles: inline, embedded and
// linked.
func (r *EstimatingRenderer) detectVerticalWriting(doc *html.Node) bool {
	var (
		vertical bool
		visit    func(n *html.Node)
	)
	fromProps := func(props map[string]string) {
		for _, name := range []string{"writing-mode", "-epub-writing-mode", "-webkit-writing-mode"} {
			if v, ok := props[name]; ok {
				vertical = css.IsVerticalWritingMode(v)
			}
		}
	}
	fromSheet := func(sheet *css.Stylesheet) {
		for _, rule := range sheet.Rules {
			for _, sel := range rule.Selectors {
				if sel == "html" || sel == "body" || sel == ":root" {
					fromProps(rule.Properties)
				}
			}
		}
	}
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Style:
				if n.FirstChild != nil {
					fromSheet(r.parser.Parse([]byte(n.FirstChild.Data)))
				}
			case atom.Link:
				if strings.EqualFold(attr(n, "rel"), "stylesheet") && r.styles != nil {
					href := path.Join(path.Dir(r.href), attr(n, "href"))
					if data, err := r.styles(href); err == nil {
						fromSheet(r.parser.Parse(data))
					} else {
						r.log.Debug("Unable to read stylesheet", zap.String("href", href), zap.Error(err))
					}
				}
			case atom.Html, atom.Body:
				if style := attr(n, "style"); style != "" {
					fromProps(r.parser.ParseInline(style))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	return vertical
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.Body, atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Li, atom.Ul, atom.Ol, atom.Blockquote, atom.Section, atom.Article, atom.Aside,
		atom.Br, atom.Img, atom.Svg, atom.Tr, atom.Table, atom.Pre, atom.Hr, atom.Figure,
		atom.Header, atom.Footer, atom.Nav, atom.Dl, atom.Dt, atom.Dd:
		return true
	}
	return false
}

// Layout flows text of the document through the grid defined by page size
// and metrics.
func (r *EstimatingRenderer) Layout(p LayoutParams) geometry.Size {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.params = p
	page := p.PageSize
	switch r.kind {
	case kindNone:
		r.pages = 0
		return geometry.Size{}
	case kindImage:
		r.pages = 1
		return page
	}

	lineExtent, pageExtent := page.Width, page.Height
	if r.vertical {
		lineExtent, pageExtent = page.Height, page.Width
	}
	r.cellsPerLine = max(1, int(lineExtent/r.metrics.CharWidth))
	r.linesPerPage = max(1, int(pageExtent/r.metrics.LineHeight))
	r.runs = r.runs[:0]
	r.elements = make(map[*html.Node]int)

	cell := 0
	newLine := func() {
		if rem := cell % r.cellsPerLine; rem != 0 {
			cell += r.cellsPerLine - rem
		}
	}
	var flow func(n *html.Node)
	flow = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Head, atom.Script, atom.Style:
				return
			}
			block := isBlock(n.DataAtom)
			if block {
				newLine()
			}
			r.elements[n] = cell
			if n.DataAtom == atom.Img || n.DataAtom == atom.Svg || n.DataAtom == atom.Hr || n.DataAtom == atom.Br {
				cell += r.cellsPerLine
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				flow(c)
			}
			if block {
				newLine()
			}
		case html.TextNode:
			length := 0
			if strings.TrimSpace(n.Data) != "" {
				length = utf8.RuneCountInString(n.Data)
			}
			r.runs = append(r.runs, run{node: n, start: cell, length: length})
			cell += length
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				flow(c)
			}
		}
	}
	flow(r.doc)
	newLine()

	lines := cell / r.cellsPerLine
	if p.Scrollable || p.VerticalDirection {
		// single continuous column
		r.pages = 1
		if r.vertical {
			return geometry.Size{Width: page.Width, Height: float64(r.cellsPerLine) * r.metrics.CharWidth}
		}
		return geometry.Size{Width: page.Width, Height: float64(lines) * r.metrics.LineHeight}
	}
	r.pages = max(1, int(math.Ceil(float64(lines)/float64(r.linesPerPage))))
	if r.vertical {
		return geometry.Size{Width: page.Width, Height: float64(r.pages) * page.Height}
	}
	return geometry.Size{Width: float64(r.pages) * page.Width, Height: page.Height}
}

// cellRect returns content relative box of grid cell.
func (r *EstimatingRenderer) cellRect(cell int) geometry.Rect {
	m, page := r.metrics, r.params.PageSize
	line, col := cell/r.cellsPerLine, cell%r.cellsPerLine

	if r.params.Scrollable || r.params.VerticalDirection {
		if r.vertical {
			return geometry.NewRect(float64(line)*m.LineHeight, float64(col)*m.CharWidth, m.LineHeight, m.CharWidth)
		}
		return geometry.NewRect(float64(col)*m.CharWidth, float64(line)*m.LineHeight, m.CharWidth, m.LineHeight)
	}

	pageIndex, lineInPage := line/r.linesPerPage, line%r.linesPerPage
	if r.vertical {
		// lines run top to bottom and progress right to left within page
		x := page.Width - float64(lineInPage+1)*m.LineHeight
		return geometry.NewRect(max(0, x), float64(pageIndex)*page.Height+float64(col)*m.CharWidth, m.LineHeight, m.CharWidth)
	}
	if r.params.RTL {
		pageIndex = r.pages - 1 - pageIndex
	}
	return geometry.NewRect(float64(pageIndex)*page.Width+float64(col)*m.CharWidth, float64(lineInPage)*m.LineHeight, m.CharWidth, m.LineHeight)
}

func (r *EstimatingRenderer) NodeRect(node *html.Node, offset int) (geometry.Rect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.kind != kindMarkup || r.pages == 0 {
		return geometry.Rect{}, false
	}
	if node.Type == html.TextNode {
		for _, rn := range r.runs {
			if rn.node == node {
				return r.cellRect(rn.start + min(max(offset, 0), max(rn.length-1, 0))), true
			}
		}
		return geometry.Rect{}, false
	}
	cell, ok := r.elements[node]
	if !ok {
		return geometry.Rect{}, false
	}
	return r.cellRect(cell), true
}

func (r *EstimatingRenderer) NodeAt(area geometry.Rect) (*html.Node, int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.kind != kindMarkup || r.pages == 0 {
		return nil, 0, false
	}
	inside := func(c geometry.Rect) bool {
		return c.Left >= area.Left && c.Left < area.Right && c.Top >= area.Top && c.Top < area.Bottom
	}
	for _, rn := range r.runs {
		for i := range rn.length {
			if inside(r.cellRect(rn.start + i)) {
				return rn.node, i, true
			}
		}
	}
	return nil, 0, false
}
