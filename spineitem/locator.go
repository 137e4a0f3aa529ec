package spineitem

import (
	"golang.org/x/net/html"

	"leaf/geometry"
)

// Locator does page arithmetic within single item. Positions it takes and
// returns are item local.
type Locator struct {
	ctx *geometry.Context
}

func NewLocator(ctx *geometry.Context) *Locator {
	return &Locator{ctx: ctx}
}

// SafePosition clamps position into item bounds.
func (l *Locator) SafePosition(pos geometry.UnsafeSpineItemPosition, it *Item) geometry.SpineItemPosition {
	size := it.Size()
	return geometry.SpineItemPosition{
		X: min(size.Width, max(0, pos.X)),
		Y: min(size.Height, max(0, pos.Y)),
	}
}

// NumberOfPages counts pages along item primary axis: height for vertical
// writing or vertical page turning, width otherwise. Scrolled item is a
// single page.
func (l *Locator) NumberOfPages(it *Item) int {
	if !l.ctx.IsControlled() {
		return 1
	}
	size, page := it.Size(), l.ctx.PageSize()
	if l.usesVerticalAxis(it) {
		return geometry.NumberOfPages(size.Height, page.Height)
	}
	return geometry.NumberOfPages(size.Width, page.Width)
}

func (l *Locator) usesVerticalAxis(it *Item) bool {
	return it.IsUsingVerticalWriting() || l.ctx.IsVertical()
}

// PositionFromPageIndex returns start of the page. For right to left books
// pages are counted from item right edge.
func (l *Locator) PositionFromPageIndex(pageIndex int, it *Item) geometry.SpineItemPosition {
	size, page := it.Size(), l.ctx.PageSize()
	if l.usesVerticalAxis(it) {
		return geometry.SpineItemPosition{Y: geometry.OffsetFromPageIndex(pageIndex, page.Height, size.Height)}
	}
	offset := geometry.OffsetFromPageIndex(pageIndex, page.Width, size.Width)
	if l.ctx.IsRTL() {
		return geometry.SpineItemPosition{X: max(0, size.Width-offset-page.Width)}
	}
	return geometry.SpineItemPosition{X: offset}
}

// PageIndexFromPosition is reverse of PositionFromPageIndex. Blank page
// before content counts as a page.
func (l *Locator) PageIndexFromPosition(pos geometry.UnsafeSpineItemPosition, it *Item) int {
	size, page := it.Size(), l.ctx.PageSize()
	safe := l.SafePosition(pos, it)
	if l.usesVerticalAxis(it) {
		return pageFromOffset(safe.Y, page.Height, l.NumberOfPages(it))
	}
	offset := safe.X
	if l.ctx.IsRTL() {
		offset = size.Width - safe.X - page.Width
	}
	return pageFromOffset(offset, page.Width, l.NumberOfPages(it))
}

func pageFromOffset(offset, pageExtent float64, pages int) int {
	if offset <= 0 || pageExtent <= 0 {
		return 0
	}
	if offset >= float64(pages)*pageExtent {
		return pages - 1
	}
	for i := range pages {
		if offset < float64(i)*pageExtent+pageExtent {
			return i
		}
	}
	return 0
}

// PositionFromNode returns start of the page node is laid out on. Returns
// false when node has no layout yet.
func (l *Locator) PositionFromNode(node *html.Node, offset int, it *Item) (geometry.SpineItemPosition, bool) {
	r, ok := it.NodeRect(node, offset)
	if !ok {
		return geometry.SpineItemPosition{}, false
	}
	size, page := it.Size(), l.ctx.PageSize()
	if l.usesVerticalAxis(it) {
		return geometry.SpineItemPosition{Y: geometry.ClosestValidOffset(r.Top, page.Height, size.Height)}, true
	}
	return geometry.SpineItemPosition{X: geometry.ClosestValidOffset(r.Left, page.Width, size.Width)}, true
}

func (l *Locator) PageIndexFromNode(node *html.Node, offset int, it *Item) (int, bool) {
	pos, ok := l.PositionFromNode(node, offset, it)
	if !ok {
		return 0, false
	}
	return l.PageIndexFromPosition(geometry.UnsafeSpineItemPosition(pos), it), true
}

// ClosestSafePosition snaps position to the start of page containing it on
// both axes.
func (l *Locator) ClosestSafePosition(pos geometry.UnsafeSpineItemPosition, it *Item) geometry.SpineItemPosition {
	size, page := it.Size(), l.ctx.PageSize()
	return geometry.SpineItemPosition{
		X: geometry.ClosestValidOffset(pos.X, page.Width, size.Width),
		Y: geometry.ClosestValidOffset(pos.Y, page.Height, size.Height),
	}
}

// FirstNodeAtPage returns first node laid out on the page.
func (l *Locator) FirstNodeAtPage(pageIndex int, it *Item) (*html.Node, int, bool) {
	if it.Document() == nil {
		return nil, 0, false
	}
	pos, page := l.PositionFromPageIndex(pageIndex, it), l.ctx.PageSize()
	return it.NodeAt(geometry.NewRect(pos.X, pos.Y, page.Width, page.Height))
}

// IsPageVisible reports whether page at pagePos is covered by viewport at
// viewportPos by at least threshold share on both axes.
func (l *Locator) IsPageVisible(pagePos geometry.SpineItemPosition, viewportPos geometry.UnsafeSpineItemPosition, threshold float64) bool {
	page, visible := l.ctx.PageSize(), l.ctx.VisibleAreaRect()
	if page.IsZero() {
		return false
	}

	right, bottom := pagePos.X+page.Width-1, pagePos.Y+page.Height-1
	vpRight, vpBottom := viewportPos.X+visible.Width-1, viewportPos.Y+visible.Height-1

	visibleWidth := min(right, vpRight) - max(pagePos.X, viewportPos.X)
	visibleHeight := min(bottom, vpBottom) - max(pagePos.Y, viewportPos.Y)

	return visibleWidth/page.Width >= threshold && visibleHeight/page.Height >= threshold
}
