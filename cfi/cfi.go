// Package cfi parses, generates and resolves EPUB canonical fragment
// identifiers of the form epubcfi(/6/N[id]!/4/2[anchor]/1:offset). Only
// single location paths with an optional character offset are supported.
package cfi

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var ErrInvalid = errors.New("invalid cfi")

const (
	prefix = "epubcfi("
	// step of the spine element in the package document
	spineStep = 6
)

// Step is single path step with optional id assertion.
type Step struct {
	Index int
	ID    string
}

// CFI is parsed location.
type CFI struct {
	// Item is step of the itemref within spine, even and 1 based.
	Item      Step
	Path      []Step
	Offset    int
	HasOffset bool
}

// SpineIndex returns 0 based index of referenced spine item.
func (c CFI) SpineIndex() int {
	return c.Item.Index/2 - 1
}

// IsRoot reports whether location points to the item as a whole.
func (c CFI) IsRoot() bool {
	return len(c.Path) == 0 && !c.HasOffset
}

func (c CFI) String() string {
	var sb strings.Builder
	sb.WriteString(prefix)
	fmt.Fprintf(&sb, "/%d", spineStep)
	writeStep(&sb, c.Item)
	sb.WriteByte('!')
	for _, s := range c.Path {
		writeStep(&sb, s)
	}
	if c.HasOffset {
		fmt.Fprintf(&sb, ":%d", c.Offset)
	}
	sb.WriteByte(')')
	return sb.String()
}

func writeStep(sb *strings.Builder, s Step) {
	fmt.Fprintf(sb, "/%d", s.Index)
	if s.ID != "" {
		sb.WriteByte('[')
		sb.WriteString(escape(s.ID))
		sb.WriteByte(']')
	}
}

const special = "^[](),;="

func escape(s string) string {
	if !strings.ContainsAny(s, special) {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(special, r) {
			sb.WriteByte('^')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Root returns location of spine item as a whole.
func Root(index int, id string) string {
	return CFI{Item: Step{Index: 2 * (index + 1), ID: id}}.String()
}

// IsRoot reports whether s is valid root location.
func IsRoot(s string) bool {
	c, err := Parse(s)
	return err == nil && c.IsRoot()
}

// Parse parses location string.
func Parse(s string) (CFI, error) {
	var c CFI

	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, ")") {
		return c, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	p := &scanner{in: s[len(prefix) : len(s)-1]}

	first, err := p.step()
	if err != nil {
		return c, fmt.Errorf("%w: %q: %w", ErrInvalid, s, err)
	}
	if first.Index != spineStep {
		return c, fmt.Errorf("%w: %q: package step %d is not spine", ErrInvalid, s, first.Index)
	}
	if c.Item, err = p.step(); err != nil {
		return c, fmt.Errorf("%w: %q: %w", ErrInvalid, s, err)
	}
	if c.Item.Index < 2 || c.Item.Index%2 != 0 {
		return c, fmt.Errorf("%w: %q: bad itemref step %d", ErrInvalid, s, c.Item.Index)
	}
	if !p.consume('!') {
		if p.done() {
			// indirection is optional for root locations
			return c, nil
		}
		return c, fmt.Errorf("%w: %q: missing indirection", ErrInvalid, s)
	}

	for p.peek() == '/' {
		st, err := p.step()
		if err != nil {
			return c, fmt.Errorf("%w: %q: %w", ErrInvalid, s, err)
		}
		if st.Index < 1 {
			return c, fmt.Errorf("%w: %q: bad step %d", ErrInvalid, s, st.Index)
		}
		c.Path = append(c.Path, st)
	}
	if p.consume(':') {
		if c.Offset, err = p.number(); err != nil {
			return c, fmt.Errorf("%w: %q: %w", ErrInvalid, s, err)
		}
		c.HasOffset = true
		// text location assertions are accepted and ignored
		if p.peek() == '[' {
			if _, err := p.assertion(); err != nil {
				return c, fmt.Errorf("%w: %q: %w", ErrInvalid, s, err)
			}
		}
	}
	if !p.done() {
		return c, fmt.Errorf("%w: %q: unexpected %q", ErrInvalid, s, p.in[p.pos:])
	}
	return c, nil
}

type scanner struct {
	in  string
	pos int
}

func (p *scanner) done() bool {
	return p.pos >= len(p.in)
}

func (p *scanner) peek() byte {
	if p.done() {
		return 0
	}
	return p.in[p.pos]
}

func (p *scanner) consume(b byte) bool {
	if p.peek() == b {
		p.pos++
		return true
	}
	return false
}

func (p *scanner) number() (int, error) {
	start := p.pos
	for !p.done() && p.in[p.pos] >= '0' && p.in[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, errors.New("number expected")
	}
	return strconv.Atoi(p.in[start:p.pos])
}

func (p *scanner) step() (Step, error) {
	var s Step
	if !p.consume('/') {
		return s, errors.New("step expected")
	}
	n, err := p.number()
	if err != nil {
		return s, err
	}
	s.Index = n
	if p.peek() == '[' {
		if s.ID, err = p.assertion(); err != nil {
			return s, err
		}
	}
	return s, nil
}

func (p *scanner) assertion() (string, error) {
	p.consume('[')
	var sb strings.Builder
	for !p.done() {
		b := p.in[p.pos]
		switch b {
		case '^':
			p.pos++
			if p.done() {
				return "", errors.New("dangling escape")
			}
			sb.WriteByte(p.in[p.pos])
		case ']':
			p.pos++
			return sb.String(), nil
		default:
			sb.WriteByte(b)
		}
		p.pos++
	}
	return "", errors.New("unterminated assertion")
}

func docElement(doc *html.Node) *html.Node {
	if doc == nil || doc.Type == html.ElementNode {
		return doc
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// Resolve walks path of c from the document element. Odd steps address
// text between element children, for them offset is counted over all text
// of that gap. Id assertion of the last element step wins over its index
// when they disagree.
func Resolve(doc *html.Node, c CFI) (*html.Node, int, bool) {
	cur := docElement(doc)
	if cur == nil {
		return nil, 0, false
	}
	if len(c.Path) > 0 && c.Path[len(c.Path)-1].ID != "" {
		if el := findByID(cur, c.Path[len(c.Path)-1].ID); el != nil {
			return el, max(c.Offset, 0), true
		}
	}

	steps := c.Path
	for i, st := range steps {
		if st.Index%2 == 0 {
			el := nthElement(cur, st.Index/2)
			if el == nil {
				return nil, 0, false
			}
			cur = el
			continue
		}
		if i != len(steps)-1 {
			return nil, 0, false
		}
		return textInGap(cur, st.Index/2, c.Offset)
	}
	return cur, max(c.Offset, 0), true
}

func nthElement(parent *html.Node, n int) *html.Node {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if n--; n == 0 {
			return c
		}
	}
	return nil
}

// textInGap finds text node with the character at offset within text placed
// after gap-th element child.
func textInGap(parent *html.Node, gap, offset int) (*html.Node, int, bool) {
	var last *html.Node
	seen := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if seen++; seen > gap {
				break
			}
			continue
		}
		if c.Type != html.TextNode || seen != gap {
			continue
		}
		length := runeLen(c.Data)
		if offset <= length {
			return c, max(offset, 0), true
		}
		offset -= length
		last = c
	}
	if last != nil {
		return last, runeLen(last.Data), true
	}
	// no text there, element following the gap is the best guess
	if el := nthElement(parent, gap+1); el != nil {
		return el, 0, true
	}
	return parent, 0, true
}

func runeLen(s string) int {
	return len([]rune(s))
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Generate builds location of node and character offset within spine item
// index with id. Offset is used for text nodes only. Node must belong to a
// parsed document.
func Generate(node *html.Node, offset, index int, id string) (string, error) {
	c := CFI{Item: Step{Index: 2 * (index + 1), ID: id}}

	n := node
	if n.Type == html.TextNode {
		parent := n.Parent
		if parent == nil {
			return "", fmt.Errorf("%w: detached text node", ErrInvalid)
		}
		gap, before := 0, 0
		for s := parent.FirstChild; s != nil && s != n; s = s.NextSibling {
			switch s.Type {
			case html.ElementNode:
				gap++
				before = 0
			case html.TextNode:
				before += runeLen(s.Data)
			}
		}
		c.Path = append(c.Path, Step{Index: 2*gap + 1})
		c.Offset, c.HasOffset = before+max(offset, 0), true
		n = parent
	}

	var rev []Step
	for ; n != nil && n.Type == html.ElementNode; n = n.Parent {
		if n.Parent == nil || n.Parent.Type == html.DocumentNode {
			break
		}
		idx := 0
		for s := n.Parent.FirstChild; s != nil; s = s.NextSibling {
			if s.Type == html.ElementNode {
				idx++
			}
			if s == n {
				break
			}
		}
		rev = append(rev, Step{Index: 2 * idx, ID: attrID(n)})
	}
	if n == nil || n.Type != html.ElementNode || n.Parent == nil {
		return "", fmt.Errorf("%w: node is not part of a document", ErrInvalid)
	}
	slices.Reverse(rev)
	c.Path = append(rev, c.Path...)
	return c.String(), nil
}

func attrID(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "id" {
			return a.Val
		}
	}
	return ""
}
