package navigation

import (
	"math"

	"go.uber.org/zap"

	"leaf/cfi"
	"leaf/geometry"
	"leaf/manifest"
	"leaf/spine"
	"leaf/spineitem"
)

// Resolver translates navigation targets into viewport positions. All
// results are clamped or snapped to page boundaries, unresolvable targets
// produce origin.
type Resolver struct {
	ctx  *geometry.Context
	reg  *spine.Registry
	loc  *spine.Locator
	cfis *cfi.Locator
	log  *zap.Logger
}

func NewResolver(ctx *geometry.Context, reg *spine.Registry, loc *spine.Locator, cfis *cfi.Locator, log *zap.Logger) *Resolver {
	return &Resolver{ctx: ctx, reg: reg, loc: loc, cfis: cfis, log: log.Named("resolver")}
}

func (r *Resolver) items() *spineitem.Locator {
	return r.loc.Items()
}

// ForCfi returns position of the page containing location s and the item
// it belongs to. Location within content which is not laid out resolves to
// the item start.
func (r *Resolver) ForCfi(s string) (geometry.ViewportPosition, *spineitem.Item, bool) {
	res, ok := r.cfis.Resolve(s)
	if !ok {
		return geometry.ViewportPosition{}, nil, false
	}
	var local geometry.SpineItemPosition
	if res.Node != nil {
		if pos, found := r.items().PositionFromNode(res.Node, res.Offset, res.Item); found {
			local = pos
		}
	}
	return r.AdjustForSpread(r.loc.ToGlobal(local, res.Item)), res.Item, true
}

// ForURL returns position of the item (and anchor within it) u refers to.
func (r *Resolver) ForURL(u string) (geometry.ViewportPosition, *spineitem.Item, bool) {
	m := r.reg.Manifest()
	if m == nil {
		return geometry.ViewportPosition{}, nil, false
	}
	index, ok := m.ItemByURL(u)
	if !ok {
		r.log.Debug("No reading item for url", zap.String("url", u))
		return geometry.ViewportPosition{}, nil, false
	}
	it, ok := r.reg.Get(index)
	if !ok {
		return geometry.ViewportPosition{}, nil, false
	}

	var local geometry.SpineItemPosition
	if anchor := manifest.Fragment(u); anchor != "" {
		if rect, found := it.AnchorRect(anchor); found {
			size, page := it.Size(), r.ctx.PageSize()
			if r.ctx.IsVertical() || it.IsUsingVerticalWriting() {
				local.Y = geometry.ClosestValidOffset(rect.Top, page.Height, size.Height)
			} else {
				local.X = geometry.ClosestValidOffset(rect.Left, page.Width, size.Width)
			}
		}
	}
	return r.AdjustForSpread(r.loc.ToGlobal(local, it)), it, true
}

// ForSpineIndexOrID returns position of the first page of referenced item,
// origin when there is no such item. Index is clamped into spine.
func (r *Resolver) ForSpineIndexOrID(ref ItemRef) geometry.ViewportPosition {
	it, ok := r.lookup(ref)
	if !ok {
		return geometry.ViewportPosition{}
	}
	return r.ForPage(0, it)
}

// lookup finds referenced item. Id references have to match exactly while
// indexes are clamped into spine.
func (r *Resolver) lookup(ref ItemRef) (*spineitem.Item, bool) {
	if ref.ID != "" {
		return r.reg.GetByID(ref.ID)
	}
	n := r.reg.Len()
	if n == 0 {
		return nil, false
	}
	return r.reg.Get(min(max(ref.Index, 0), n-1))
}

// ForLastPage returns position of the last page of the item.
func (r *Resolver) ForLastPage(it *spineitem.Item) geometry.ViewportPosition {
	return r.ForPage(r.items().NumberOfPages(it)-1, it)
}

// ForPage returns position of page of the item.
func (r *Resolver) ForPage(pageIndex int, it *spineitem.Item) geometry.ViewportPosition {
	local := r.items().PositionFromPageIndex(pageIndex, it)
	return r.AdjustForSpread(r.loc.ToGlobal(local, it))
}

// ForPosition snaps arbitrary position to the closest page start of item
// under it.
func (r *Resolver) ForPosition(pos geometry.ViewportPosition) geometry.ViewportPosition {
	it, ok := r.loc.ItemAtPosition(pos)
	if !ok {
		return geometry.ViewportPosition{}
	}
	local := r.items().ClosestSafePosition(r.loc.ToLocal(pos, it), it)
	return r.AdjustForSpread(r.loc.ToGlobal(local, it))
}

// FromSpineItemPosition converts item position into viewport position of
// the page holding it.
func (r *Resolver) FromSpineItemPosition(pos geometry.UnsafeSpineItemPosition, it *spineitem.Item) geometry.ViewportPosition {
	local := r.items().ClosestSafePosition(pos, it)
	return r.AdjustForSpread(r.loc.ToGlobal(local, it))
}

// anchorFromLocal converts item position into anchor stored with navigation.
// Right to left horizontal content grows leftward, so its anchor is the
// distance from the item right edge to the right edge of the page. Zero
// anchor is item start in both directions.
func (r *Resolver) anchorFromLocal(local geometry.UnsafeSpineItemPosition, it *spineitem.Item) geometry.UnsafeSpineItemPosition {
	return r.mirrorX(local, it)
}

// localFromAnchor converts anchor back into item position against current
// item box.
func (r *Resolver) localFromAnchor(anchor geometry.UnsafeSpineItemPosition, it *spineitem.Item) geometry.UnsafeSpineItemPosition {
	return r.mirrorX(anchor, it)
}

func (r *Resolver) mirrorX(pos geometry.UnsafeSpineItemPosition, it *spineitem.Item) geometry.UnsafeSpineItemPosition {
	if !r.ctx.IsRTL() || r.ctx.IsVertical() {
		return pos
	}
	box, _ := r.reg.AbsolutePositionOf(it.Index())
	pos.X = box.Width - r.ctx.PageSize().Width - pos.X
	return pos
}

// AdjustForSpread moves position landing on the right half of a spread to
// the spread start.
func (r *Resolver) AdjustForSpread(pos geometry.ViewportPosition) geometry.ViewportPosition {
	if !r.ctx.IsUsingSpread() {
		return pos
	}
	screen, page := r.ctx.VisibleAreaRect().Width, r.ctx.PageSize().Width
	if screen <= 0 || math.Mod(pos.X, screen) == 0 {
		return pos
	}
	return geometry.ViewportPosition{X: pos.X - page, Y: pos.Y}
}

// WrapWithSafeEdge clamps position so that the viewport never goes before
// the first page or after the last one.
func (r *Resolver) WrapWithSafeEdge(pos geometry.ViewportPosition) geometry.ViewportPosition {
	var last geometry.Rect
	if n := r.reg.Len(); n > 0 {
		last, _ = r.reg.AbsolutePositionOf(n - 1)
	}
	page := r.ctx.PageSize()

	x := pos.X
	if r.ctx.IsRTL() {
		x = max(min(0, x), last.Left)
	} else {
		x = min(max(0, x), max(0, last.Right-page.Width))
	}
	y := min(max(0, pos.Y), max(0, last.Bottom-page.Height))
	return geometry.ViewportPosition{X: x, Y: y}
}

// MostPredominantNavigationForPosition returns page start of content which
// dominates viewport at pos. Probe point is TriggerPercentage into the
// viewport along reading axis.
func (r *Resolver) MostPredominantNavigationForPosition(pos geometry.ViewportPosition) geometry.ViewportPosition {
	visible, trigger := r.ctx.VisibleAreaRect(), r.ctx.Settings().TriggerPercentage
	var probe geometry.ViewportPosition
	if r.ctx.IsVertical() {
		probe.Y = pos.Y + visible.Height*trigger
	} else {
		probe.X = pos.X + visible.Width*trigger
	}
	return r.ForPosition(r.WrapWithSafeEdge(probe))
}

// IsNavigationGoingForwardFrom reports whether to is further in reading
// order than from along the reading axis.
func (r *Resolver) IsNavigationGoingForwardFrom(to, from geometry.ViewportPosition) bool {
	if r.ctx.IsVertical() {
		return to.Y > from.Y
	}
	if r.ctx.IsRTL() {
		return to.X < from.X
	}
	return to.X > from.X
}

// ArePositionsDifferent compares positions on both axes.
func (r *Resolver) ArePositionsDifferent(a, b geometry.ViewportPosition) bool {
	return a.X != b.X || a.Y != b.Y
}
