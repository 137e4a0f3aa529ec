package reader

import (
	"go.uber.org/zap"

	"leaf/common"
	"leaf/geometry"
	"leaf/navigation"
	"leaf/spineitem"
)

// TurnLeft, TurnRight, TurnTop and TurnBottom move viewport by a screen
// towards the edge. Turns across the reading axis are ignored, so are turns
// past the first or the last page.
func (r *Reader) TurnLeft() bool {
	return r.turn(common.EdgeDirectionLeft)
}

func (r *Reader) TurnRight() bool {
	return r.turn(common.EdgeDirectionRight)
}

func (r *Reader) TurnTop() bool {
	return r.turn(common.EdgeDirectionTop)
}

func (r *Reader) TurnBottom() bool {
	return r.turn(common.EdgeDirectionBottom)
}

// TurnForward and TurnBackward turn in reading order whatever axis and
// direction the book uses.
func (r *Reader) TurnForward() bool {
	return r.turn(r.edgeFor(common.NavigationDirectionForward))
}

func (r *Reader) TurnBackward() bool {
	return r.turn(r.edgeFor(common.NavigationDirectionBackward))
}

func (r *Reader) edgeFor(dir common.NavigationDirection) common.EdgeDirection {
	forward := dir.IsForward()
	switch {
	case r.ctx.IsVertical() && forward:
		return common.EdgeDirectionBottom
	case r.ctx.IsVertical():
		return common.EdgeDirectionTop
	case forward != r.ctx.IsRTL():
		return common.EdgeDirectionRight
	default:
		return common.EdgeDirectionLeft
	}
}

func (r *Reader) turn(edge common.EdgeDirection) bool {
	if edge.IsVertical() != r.ctx.IsVertical() {
		r.log.Warn("Page turn across reading axis ignored", zap.Stringer("edge", edge))
		return false
	}
	current := r.res.WrapWithSafeEdge(r.nav.Navigation().Position)

	target := r.step(current, edge)
	// in spread one screen holds two pages
	if r.ctx.IsUsingSpread() {
		target = r.step(target, edge)
	}
	target = r.res.AdjustForSpread(target)
	if !r.res.ArePositionsDifferent(target, current) {
		return false
	}
	r.nav.Navigate(navigation.Intent{
		Position:  &target,
		Direction: edge,
		Animation: common.AnimationTurn,
	})
	return true
}

// step moves position by a single page.
func (r *Reader) step(pos geometry.ViewportPosition, edge common.EdgeDirection) geometry.ViewportPosition {
	page := r.ctx.PageSize()
	switch edge {
	case common.EdgeDirectionLeft:
		pos.X -= page.Width
	case common.EdgeDirectionRight:
		pos.X += page.Width
	case common.EdgeDirectionTop:
		pos.Y -= page.Height
	case common.EdgeDirectionBottom:
		pos.Y += page.Height
	}
	return r.res.WrapWithSafeEdge(pos)
}

// GoToSpineItem navigates to the first page of the item. Missing item is
// reported and ignored.
func (r *Reader) GoToSpineItem(ref *navigation.ItemRef) bool {
	if ref == nil {
		return false
	}
	if _, ok := r.item(ref); !ok {
		r.log.Warn("Navigation to missing item ignored", zap.Int("index", ref.Index), zap.String("id", ref.ID))
		return false
	}
	r.nav.Navigate(navigation.Intent{SpineItem: ref})
	return true
}

// GoToNextSpineItem and GoToPreviousSpineItem move to the item next to
// visible ones.
func (r *Reader) GoToNextSpineItem() bool {
	_, end, ok := r.loc.VisibleItemRange(r.nav.Navigation().Position, r.ctx.Settings().VisibilityThreshold, false)
	if !ok || end+1 >= r.reg.Len() {
		return false
	}
	return r.GoToSpineItem(navigation.ByIndex(end + 1))
}

func (r *Reader) GoToPreviousSpineItem() bool {
	begin, _, ok := r.loc.VisibleItemRange(r.nav.Navigation().Position, r.ctx.Settings().VisibilityThreshold, false)
	if !ok || begin == 0 {
		return false
	}
	return r.GoToSpineItem(navigation.ByIndex(begin - 1))
}

// GoToCfi navigates to location, animated unless asked otherwise.
func (r *Reader) GoToCfi(s string, animate bool) {
	anim := common.AnimationTurn
	if !animate {
		anim = common.AnimationNone
	}
	r.nav.Navigate(navigation.Intent{CFI: s, Animation: anim})
}

// GoToURL navigates to document (and anchor) the url points to. Url which
// does not belong to the book is ignored.
func (r *Reader) GoToURL(u string) bool {
	if _, _, ok := r.res.ForURL(u); !ok {
		r.log.Warn("Navigation to unknown url ignored", zap.String("url", u))
		return false
	}
	r.nav.Navigate(navigation.Intent{URL: u})
	return true
}

// GoToPageOfSpineItem navigates to page of the item, nil ref means
// current item.
func (r *Reader) GoToPageOfSpineItem(pageIndex int, ref *navigation.ItemRef) bool {
	if ref == nil {
		ref = navigation.ByIndex(max(r.nav.Navigation().SpineItem, 0))
	}
	it, ok := r.item(ref)
	if !ok {
		r.log.Warn("Navigation to missing item ignored", zap.Int("index", ref.Index), zap.String("id", ref.ID))
		return false
	}
	pos := r.res.ForPage(pageIndex, it)
	r.nav.Navigate(navigation.Intent{Position: &pos})
	return true
}

// ScrollTo reports position viewport was scrolled to by the user. Viewport
// already shows it, so nothing is applied back.
func (r *Reader) ScrollTo(pos geometry.ViewportPosition) {
	r.nav.Navigate(navigation.Intent{
		Position:  &pos,
		Type:      common.NavigationTypeScroll,
		Animation: common.AnimationNone,
	})
}

// MoveTo follows pan gesture, delta is the distance viewport moved since the
// gesture started. The first move locks navigation, intermediate moves are
// reported as scroll and the final one settles on the page which dominates
// the viewport, the snap is applied once the lock is released.
func (r *Reader) MoveTo(delta geometry.ViewportPosition, start, final bool) {
	r.panMu.Lock()
	if start && r.panUnlock == nil {
		r.panUnlock = r.nav.Lock()
		r.panFrom = r.res.WrapWithSafeEdge(r.nav.Navigation().Position)
	}
	if r.panUnlock == nil {
		r.panMu.Unlock()
		r.log.Debug("Move outside of pan gesture ignored", zap.Stringer("delta", delta))
		return
	}
	pos := r.res.WrapWithSafeEdge(geometry.ViewportPosition{X: r.panFrom.X + delta.X, Y: r.panFrom.Y + delta.Y})
	if !final {
		r.panMu.Unlock()
		r.nav.Navigate(navigation.Intent{
			Position:  &pos,
			Type:      common.NavigationTypeScroll,
			Animation: common.AnimationNone,
		})
		return
	}
	unlock := r.panUnlock
	r.panUnlock = nil
	r.panMu.Unlock()

	target := r.res.MostPredominantNavigationForPosition(pos)
	r.nav.Navigate(navigation.Intent{Position: &target, Animation: common.AnimationSnap})
	unlock()
}

func (r *Reader) item(ref *navigation.ItemRef) (*spineitem.Item, bool) {
	if ref == nil {
		return nil, false
	}
	if ref.ID != "" {
		return r.reg.GetByID(ref.ID)
	}
	return r.reg.Get(ref.Index)
}
