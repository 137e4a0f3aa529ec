package spine

import (
	"leaf/geometry"
	"leaf/spineitem"
)

// Locator maps document wide positions to items and back.
type Locator struct {
	ctx   *geometry.Context
	reg   *Registry
	items *spineitem.Locator
}

func NewLocator(ctx *geometry.Context, reg *Registry, items *spineitem.Locator) *Locator {
	return &Locator{ctx: ctx, reg: reg, items: items}
}

// Items gives access to per item locator.
func (l *Locator) Items() *spineitem.Locator {
	return l.items
}

func (l *Locator) box(it *spineitem.Item) geometry.Rect {
	r, _ := l.reg.AbsolutePositionOf(it.Index())
	return r
}

// ToLocal converts viewport position to item position. Viewport position
// before the item start (item on the right page of spread) is treated as
// item start.
func (l *Locator) ToLocal(pos geometry.ViewportPosition, it *spineitem.Item) geometry.UnsafeSpineItemPosition {
	b := l.box(it)
	return geometry.UnsafeSpineItemPosition{
		X: max(pos.X-b.Left, 0),
		Y: max(pos.Y-b.Top, 0),
	}
}

// ToGlobal converts item position to viewport position. In spread result
// may point to the right page and has to be adjusted by caller.
func (l *Locator) ToGlobal(pos geometry.SpineItemPosition, it *spineitem.Item) geometry.ViewportPosition {
	b := l.box(it)
	return geometry.ViewportPosition{X: b.Left + pos.X, Y: b.Top + pos.Y}
}

// ItemAtPosition returns first item containing position. In horizontal mode
// only x is checked. Position at origin falls back to the first item so that
// empty layout still resolves.
func (l *Locator) ItemAtPosition(pos geometry.ViewportPosition) (*spineitem.Item, bool) {
	vertical := l.ctx.IsVertical()
	for _, it := range l.reg.All() {
		b := l.box(it)
		withinX := pos.X >= b.Left && pos.X < b.Right
		if !vertical && withinX || vertical && withinX && pos.Y >= b.Top && pos.Y < b.Bottom {
			return it, true
		}
	}
	if pos.X == 0 {
		return l.reg.Get(0)
	}
	return nil, false
}

// isItemVisible is true when visible part of the item covers threshold of
// the screen or, unless restricted to screen, threshold of the item itself.
// The latter catches small items fully on screen.
func (l *Locator) isItemVisible(it *spineitem.Item, pos geometry.ViewportPosition, threshold float64, restrictToScreen bool) bool {
	b, visible := l.box(it), l.ctx.VisibleAreaRect()

	vpRight := pos.X + visible.Width - 1
	vpBottom := pos.Y + visible.Height - 1

	visibleWidth := min(b.Right, vpRight) - max(b.Left, pos.X)
	visibleHeight := min(b.Bottom, vpBottom) - max(b.Top, pos.Y)
	if visibleWidth <= 0 || visibleHeight <= 0 {
		return false
	}

	onScreen := visibleWidth/visible.Width >= threshold && visibleHeight/visible.Height >= threshold
	if restrictToScreen {
		return onScreen
	}
	itself := visibleWidth/b.Width >= threshold && visibleHeight/b.Height >= threshold
	return itself || onScreen
}

// VisibleItemRange returns indexes of first and last visible item for
// viewport at pos. When nothing qualifies the item at position (or first
// item) is both begin and end.
func (l *Locator) VisibleItemRange(pos geometry.ViewportPosition, threshold float64, restrictToScreen bool) (begin, end int, ok bool) {
	begin, end = -1, -1
	for _, it := range l.reg.All() {
		if l.isItemVisible(it, pos, threshold, restrictToScreen) {
			if begin < 0 {
				begin = it.Index()
			}
			end = it.Index()
		}
	}
	if begin >= 0 {
		return begin, end, true
	}

	fallback, found := l.ItemAtPosition(pos)
	if !found {
		if fallback, found = l.reg.Get(0); !found {
			return 0, 0, false
		}
	}
	return fallback.Index(), fallback.Index(), true
}

// VisiblePageRange returns first and last page of the item visible for
// viewport at pos.
func (l *Locator) VisiblePageRange(it *spineitem.Item, pos geometry.ViewportPosition, threshold float64) (begin, end int, ok bool) {
	local := l.ToLocal(pos, it)
	begin, end = -1, -1
	for page := range l.items.NumberOfPages(it) {
		if l.items.IsPageVisible(l.items.PositionFromPageIndex(page, it), local, threshold) {
			if begin < 0 {
				begin = page
			}
			end = page
		}
	}
	return begin, end, begin >= 0
}

// IsPositionWithinItem checks item box, edges included.
func (l *Locator) IsPositionWithinItem(pos geometry.ViewportPosition, it *spineitem.Item) bool {
	b := l.box(it)
	return pos.X >= b.Left && pos.X <= b.Right && pos.Y >= b.Top && pos.Y <= b.Bottom
}

// SafeItemPosition clamps position into absolute box dimensions.
func (l *Locator) SafeItemPosition(pos geometry.UnsafeSpineItemPosition, it *spineitem.Item) geometry.SpineItemPosition {
	b := l.box(it)
	return geometry.SpineItemPosition{
		X: min(max(0, pos.X), b.Width),
		Y: min(max(0, pos.Y), b.Height),
	}
}
