package navigation

import (
	"go.uber.org/zap"

	"leaf/common"
	"leaf/geometry"
	"leaf/spineitem"
)

// pending is navigation being consolidated. Every stage takes and returns it
// by value and never fails, unresolved parts fall back to safe defaults.
type pending struct {
	nav      Entry
	previous Entry

	// position was requested or derived from url or cfi
	hasPosition bool
	// explicit reference to an item
	ref *ItemRef
	// item derived from url or cfi
	target *spineitem.Item

	item      *spineitem.Item
	direction common.NavigationDirection

	trackDirection bool
	// skip restoration (viewport is busy or scrolling)
	noRestore bool
	// referenced item does not exist, navigation has to be dropped
	dropped bool
}

type pipeline struct {
	r   *Resolver
	log *zap.Logger
}

// mapUserNavigation converts intent into pending user navigation.
func mapUserNavigation(in Intent, previous Entry) pending {
	p := pending{
		previous: previous,
		nav: Entry{
			TriggeredBy: common.TriggeredByUser,
			Type:        in.Type,
			Animation:   in.Animation,
			Direction:   in.Direction,
			URL:         in.URL,
			CFI:         in.CFI,
			SpineItem:   NoItem,
		},
		ref:            in.SpineItem,
		trackDirection: true,
	}
	if in.Position != nil {
		p.nav.Position, p.hasPosition = *in.Position, true
	}
	return p
}

// run consolidates user navigation. Restoration is only applied to
// controlled, free viewport and navigations without url or cfi.
func (pl *pipeline) run(p pending, busy bool) pending {
	p = pl.withURL(p)
	p = pl.withCfi(p)
	p = pl.withDirection(p)
	p = pl.withSpineItem(p)
	if p.dropped {
		return p
	}
	p = pl.withPosition(p)
	p = pl.withItemDimensions(p)
	p = pl.withSafeFallback(p)

	p.noRestore = busy || !pl.r.ctx.IsControlled() || p.nav.Type == common.NavigationTypeScroll
	if !p.noRestore && p.nav.URL == "" && p.nav.CFI == "" {
		p = pl.withRestoredPosition(p)
	}
	return p
}

func (pl *pipeline) withURL(p pending) pending {
	if p.nav.URL == "" {
		return p
	}
	pos, it, ok := pl.r.ForURL(p.nav.URL)
	if !ok {
		return p
	}
	p.target = it
	if !p.hasPosition {
		p.nav.Position, p.hasPosition = pos, true
	}
	return p
}

func (pl *pipeline) withCfi(p pending) pending {
	if p.nav.CFI == "" || p.target != nil {
		return p
	}
	pos, it, ok := pl.r.ForCfi(p.nav.CFI)
	if !ok {
		pl.log.Debug("Unable to resolve cfi", zap.String("cfi", p.nav.CFI))
		return p
	}
	p.target = it
	if !p.hasPosition {
		p.nav.Position, p.hasPosition = pos, true
	}
	return p
}

// withDirection guesses direction of travel relative to previous
// navigation.
func (pl *pipeline) withDirection(p pending) pending {
	p.direction = pl.guessDirection(p)
	return p
}

func (pl *pipeline) guessDirection(p pending) common.NavigationDirection {
	switch p.nav.Direction {
	case common.EdgeDirectionLeft:
		if pl.r.ctx.IsRTL() {
			return common.NavigationDirectionForward
		}
		return common.NavigationDirectionBackward
	case common.EdgeDirectionRight:
		if pl.r.ctx.IsRTL() {
			return common.NavigationDirectionBackward
		}
		return common.NavigationDirectionForward
	case common.EdgeDirectionTop:
		return common.NavigationDirectionBackward
	case common.EdgeDirectionBottom:
		return common.NavigationDirectionForward
	}
	if p.nav.URL != "" || p.nav.CFI != "" {
		return common.NavigationDirectionAnchor
	}
	if !p.previous.HasItem() || p.ref != nil || !p.hasPosition {
		return common.NavigationDirectionForward
	}

	from, to := p.previous.Position, p.nav.Position
	switch {
	case pl.r.IsNavigationGoingForwardFrom(to, from):
		return common.NavigationDirectionForward
	case pl.r.IsNavigationGoingForwardFrom(from, to):
		return common.NavigationDirectionBackward
	}
	// keep going backward on ties so that repeated navigation does not flip
	// anchoring edge
	if p.previous.DirectionFromLastNavigation == common.NavigationDirectionBackward {
		return common.NavigationDirectionBackward
	}
	return common.NavigationDirectionForward
}

// withSpineItem picks target item: explicit reference, then url or cfi
// target, then item visible at position.
func (pl *pipeline) withSpineItem(p pending) pending {
	switch {
	case p.ref != nil:
		it, ok := pl.r.lookup(*p.ref)
		if !ok && p.ref.ID != "" {
			pl.log.Warn("Navigation to item ignored, item does not exist", zap.String("id", p.ref.ID))
			p.dropped = true
			return p
		}
		p.item = it
	case p.target != nil:
		p.item = p.target
	case p.hasPosition && pl.r.ctx.IsControlled():
		begin, end, ok := pl.r.loc.VisibleItemRange(p.nav.Position, pl.r.ctx.Settings().NavigationSnapThreshold, true)
		if !ok {
			break
		}
		index := end
		if p.direction == common.NavigationDirectionBackward {
			index = begin
		}
		p.item, _ = pl.r.reg.Get(index)
	case p.hasPosition:
		p.item, _ = pl.r.loc.ItemAtPosition(p.nav.Position)
	default:
		p.item, _ = pl.r.reg.Get(0)
	}
	return p
}

// withPosition keeps explicit position within safe edges or navigates to
// the first page of the picked item.
func (pl *pipeline) withPosition(p pending) pending {
	switch {
	case p.hasPosition:
		p.nav.Position = pl.r.WrapWithSafeEdge(p.nav.Position)
	case p.item != nil:
		p.nav.Position, p.hasPosition = pl.r.ForPage(0, p.item), true
	}
	return p
}

// withItemDimensions snapshots item box the position was resolved against.
func (pl *pipeline) withItemDimensions(p pending) pending {
	if p.item == nil {
		p.nav.Snapshot = nil
		return p
	}
	if box, ok := pl.r.reg.AbsolutePositionOf(p.item.Index()); ok {
		p.nav.Snapshot = &box
	}
	return p
}

func (pl *pipeline) withSafeFallback(p pending) pending {
	if !p.hasPosition {
		p.nav.Position, p.hasPosition = pl.r.WrapWithSafeEdge(geometry.ViewportPosition{}), true
	}
	return p
}

func (pl *pipeline) withRestoredPosition(p pending) pending {
	if p.item == nil {
		return p
	}
	nav := p.nav
	nav.SpineItem = p.item.Index()
	nav.DirectionFromLastNavigation = p.direction
	p.nav.Position = RestorePosition(pl.r, nav)
	return p
}

// consolidate produces canonical entry with fresh id.
func (pl *pipeline) consolidate(p pending) Entry {
	nav := p.nav
	nav.ID = newID()
	nav.Position = pl.r.WrapWithSafeEdge(nav.Position)
	if p.trackDirection {
		nav.DirectionFromLastNavigation = p.direction
	}

	if p.item == nil {
		nav.SpineItem, nav.Snapshot, nav.PositionInSpineItem = NoItem, nil, nil
		return nav
	}
	nav.SpineItem = p.item.Index()
	if nav.PositionInSpineItem == nil {
		anchor := geometry.UnsafeSpineItemPosition{}
		box, _ := pl.r.reg.AbsolutePositionOf(nav.SpineItem)
		if nav.Snapshot == nil || nav.Snapshot.Size().IsZero() || nav.Snapshot.Size() == box.Size() {
			anchor = pl.r.anchorFromLocal(pl.r.loc.ToLocal(nav.Position, p.item), p.item)
		}
		nav.PositionInSpineItem = &anchor
	}
	return nav
}
