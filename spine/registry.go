// Package spine keeps reading items in reading order, lays them out into
// absolute boxes and maps document wide positions to items.
package spine

import (
	"math"
	"slices"
	"sync"

	"go.uber.org/zap"

	"leaf/common"
	"leaf/geometry"
	"leaf/manifest"
	"leaf/spineitem"
	"leaf/utils/observe"
)

// RendererFactory creates renderer for manifest item.
type RendererFactory func(index int, mi manifest.Item) spineitem.Renderer

// Registry owns reading items and their absolute boxes. Boxes are written
// only by layout pass.
type Registry struct {
	ctx *geometry.Context
	log *zap.Logger

	// serializes layout passes
	layoutMu sync.Mutex

	mu       sync.RWMutex
	manifest *manifest.Manifest
	items    []*spineitem.Item
	boxes    []geometry.Rect
	cancels  []func()

	layouts observe.Subject[bool]
}

func NewRegistry(ctx *geometry.Context, log *zap.Logger) *Registry {
	return &Registry{ctx: ctx, log: log.Named("spine")}
}

// Load replaces all items with ones created from manifest and lays them out.
func (r *Registry) Load(m *manifest.Manifest, factory RendererFactory) {
	items := make([]*spineitem.Item, 0, len(m.Items))
	for i, mi := range m.Items {
		items = append(items, spineitem.New(i, mi, factory(i, mi), r.log))
	}

	r.mu.Lock()
	old := r.cancels
	r.manifest = m
	r.items = items
	r.boxes = make([]geometry.Rect, len(items))
	r.cancels = make([]func(), 0, len(items))
	for _, it := range items {
		r.cancels = append(r.cancels, it.OnContentChange(func(int) { r.Layout() }))
	}
	r.mu.Unlock()

	for _, cancel := range old {
		cancel()
	}
	r.log.Debug("Spine loaded", zap.Int("items", len(items)))
	r.Layout()
}

// Manifest returns package the items were created from, nil before Load.
func (r *Registry) Manifest() *manifest.Manifest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.manifest
}

// Close detaches registry from items.
func (r *Registry) Close() {
	r.mu.Lock()
	cancels := r.cancels
	r.cancels = nil
	r.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *Registry) Get(index int) (*spineitem.Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.items) {
		return nil, false
	}
	return r.items[index], true
}

func (r *Registry) GetByID(id string) (*spineitem.Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, it := range r.items {
		if it.ID() == id {
			return it, true
		}
	}
	return nil, false
}

// All returns items in reading order.
func (r *Registry) All() []*spineitem.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items)
}

// AbsolutePositionOf returns box computed by the last layout pass.
func (r *Registry) AbsolutePositionOf(index int) (geometry.Rect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.boxes) {
		return geometry.Rect{}, false
	}
	return r.boxes[index], true
}

// OnLayout registers function called after every layout pass with flag
// telling whether any box changed.
func (r *Registry) OnLayout(fn func(changed bool)) func() {
	return r.layouts.Subscribe(fn)
}

// Layout measures items in reading order and positions them. Horizontal
// left to right books grow to the right from 0, right to left books grow to
// the left so that the first item is at 0 and the rest have negative
// offsets. Vertical books grow down. In spread every item starts on a screen
// boundary unless its page-spread hint asks for the other side.
func (r *Registry) Layout() bool {
	r.layoutMu.Lock()

	items := r.All()
	page, visible := r.ctx.PageSize(), r.ctx.VisibleAreaRect()
	spread, rtl, vertical := r.ctx.IsUsingSpread(), r.ctx.IsRTL(), r.ctx.IsVertical()

	params := spineitem.LayoutParams{
		PageSize:          page,
		MinimumWidth:      page.Width,
		VerticalDirection: vertical,
		Scrollable:        !r.ctx.IsControlled(),
		RTL:               rtl,
	}
	if spread {
		params.MinimumWidth = visible.Width
	}

	boxes := make([]geometry.Rect, len(items))
	var offset float64
	for i, it := range items {
		blank := spread && needsBlankPage(it, offset, visible.Width, rtl)
		size := it.Layout(params, blank)
		switch {
		case vertical:
			boxes[i] = geometry.NewRect(0, offset, size.Width, size.Height)
			offset += size.Height
		case rtl:
			boxes[i] = geometry.NewRect(visible.Width-offset-size.Width, 0, size.Width, size.Height)
			offset += size.Width
		default:
			boxes[i] = geometry.NewRect(offset, 0, size.Width, size.Height)
			offset += size.Width
		}
	}

	r.mu.Lock()
	changed := !slices.Equal(r.boxes, boxes)
	r.boxes = boxes
	r.mu.Unlock()
	r.layoutMu.Unlock()

	if changed {
		r.log.Debug("Layout changed", zap.Int("items", len(boxes)), zap.Float64("extent", offset))
	}
	r.layouts.Publish(changed)
	return changed
}

// needsBlankPage decides whether empty page goes before item so that it
// lands on the proper side of the spread.
func needsBlankPage(it *spineitem.Item, offset, screen float64, rtl bool) bool {
	if screen <= 0 {
		return false
	}
	onBoundary := math.Mod(offset, screen) == 0
	if it.IsReflowable() {
		return !onBoundary
	}

	// first side of the spread is left for ltr and right for rtl books
	first, second := common.PageSpreadLeft, common.PageSpreadRight
	if rtl {
		first, second = second, first
	}
	switch it.Manifest().PageSpread {
	case second:
		return onBoundary
	case first:
		return !onBoundary
	}
	return false
}
