package navigation

import (
	"leaf/common"
	"leaf/geometry"
)

// RestorePosition re-resolves position of the navigation against current
// layout so that the reader stays on the same content. Url is always
// re-resolved. Otherwise position is kept when its item did not move,
// re-anchored inside the item when it did, and moved to the item start when
// position left the item altogether.
//
// Item which grew or shrank while user was moving backward keeps user on
// its end: the anchor moves by the size difference. Anchors of right to left
// content are measured from the item right edge, see anchorFromLocal.
func RestorePosition(r *Resolver, nav Entry) geometry.ViewportPosition {
	it, ok := r.reg.Get(nav.SpineItem)
	if !ok {
		return geometry.ViewportPosition{}
	}
	if nav.URL != "" {
		if pos, _, found := r.ForURL(nav.URL); found {
			return pos
		}
	}
	if !r.ctx.IsControlled() {
		return restoreScrollable(r, nav)
	}

	box, _ := r.reg.AbsolutePositionOf(it.Index())
	anchor := geometry.UnsafeSpineItemPosition{}
	if nav.PositionInSpineItem != nil {
		anchor = *nav.PositionInSpineItem
	}

	if !r.loc.IsPositionWithinItem(nav.Position, it) {
		return r.ForPage(0, it)
	}

	if snap := nav.Snapshot; snap != nil && nav.DirectionFromLastNavigation == common.NavigationDirectionBackward &&
		(snap.Width != box.Width || snap.Height != box.Height) {
		anchor.X += box.Width - snap.Width
		anchor.Y += box.Height - snap.Height
		return r.FromSpineItemPosition(r.localFromAnchor(anchor, it), it)
	}
	if nav.Snapshot == nil || nav.Snapshot.Left != box.Left || nav.Snapshot.Top != box.Top {
		return r.FromSpineItemPosition(r.localFromAnchor(anchor, it), it)
	}
	return r.ForPosition(nav.Position)
}

// restoreScrollable keeps browser owned position unless the item moved
// under it.
func restoreScrollable(r *Resolver, nav Entry) geometry.ViewportPosition {
	it, _ := r.reg.Get(nav.SpineItem)
	box, _ := r.reg.AbsolutePositionOf(nav.SpineItem)
	if nav.Snapshot == nil || nav.PositionInSpineItem == nil {
		return nav.Position
	}
	if nav.Snapshot.Left == box.Left && nav.Snapshot.Top == box.Top {
		return nav.Position
	}
	local := r.loc.SafeItemPosition(r.localFromAnchor(*nav.PositionInSpineItem, it), it)
	return r.loc.ToGlobal(local, it)
}
