package cfi

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"leaf/spine"
	"leaf/spineitem"
)

// Resolved is location within loaded spine. Node is nil when item content
// is not available, the item start is the best position then.
type Resolved struct {
	Item   *spineitem.Item
	Node   *html.Node
	Offset int
}

// Locator resolves and generates locations against spine items.
type Locator struct {
	reg *spine.Registry
	log *zap.Logger
}

func NewLocator(reg *spine.Registry, log *zap.Logger) *Locator {
	return &Locator{reg: reg, log: log.Named("cfi")}
}

// Resolve finds item and node location s points to. Item id assertion is
// preferred over its index.
func (l *Locator) Resolve(s string) (Resolved, bool) {
	c, err := Parse(s)
	if err != nil {
		l.log.Debug("Unable to parse location", zap.Error(err))
		return Resolved{}, false
	}

	it, ok := l.reg.GetByID(c.Item.ID)
	if !ok {
		if it, ok = l.reg.Get(c.SpineIndex()); !ok {
			l.log.Debug("Location points outside of spine", zap.String("cfi", s), zap.Int("index", c.SpineIndex()))
			return Resolved{}, false
		}
	}

	res := Resolved{Item: it}
	if doc := it.Document(); doc != nil && !c.IsRoot() {
		if node, offset, found := Resolve(doc, c); found {
			res.Node, res.Offset = node, offset
		}
	}
	return res, true
}

// Generate returns location of node within item. Root location of the item
// is returned when node cannot be addressed.
func (l *Locator) Generate(node *html.Node, offset int, it *spineitem.Item) string {
	if node == nil {
		return l.Root(it)
	}
	s, err := Generate(node, offset, it.Index(), it.ID())
	if err != nil {
		l.log.Debug("Unable to generate location", zap.Stringer("item", it), zap.Error(err))
		return l.Root(it)
	}
	return s
}

func (l *Locator) Root(it *spineitem.Item) string {
	return Root(it.Index(), it.ID())
}

func (l *Locator) IsRoot(s string) bool {
	return IsRoot(s)
}

// ForPage returns location of the first node on page of the item.
func (l *Locator) ForPage(pageIndex int, it *spineitem.Item, items *spineitem.Locator) string {
	node, offset, ok := items.FirstNodeAtPage(pageIndex, it)
	if !ok {
		return l.Root(it)
	}
	return l.Generate(node, offset, it)
}
