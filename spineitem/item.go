// Package spineitem implements reading items (one per spine entry), the
// contract of renderers measuring their content and locator doing per item
// page arithmetic.
package spineitem

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"leaf/common"
	"leaf/geometry"
	"leaf/manifest"
	"leaf/utils/observe"
)

// Item is a reading item. Its box within the book is owned by the layout
// registry, the item only knows its own size.
type Item struct {
	index    int
	manifest manifest.Item
	renderer Renderer
	log      *zap.Logger

	mu            sync.RWMutex
	loaded        bool
	ready         bool
	size          geometry.Size
	contentOffset float64

	readiness observe.Subject[bool]
	contents  observe.Subject[int]
}

func New(index int, mi manifest.Item, r Renderer, log *zap.Logger) *Item {
	return &Item{
		index:    index,
		manifest: mi,
		renderer: r,
		log:      log.Named("item").With(zap.Int("index", index), zap.String("id", mi.ID)),
	}
}

func (it *Item) Index() int {
	return it.index
}

func (it *Item) ID() string {
	return it.manifest.ID
}

func (it *Item) Href() string {
	return it.manifest.Href
}

func (it *Item) Manifest() manifest.Item {
	return it.manifest
}

func (it *Item) IsReflowable() bool {
	return it.manifest.RenditionLayout == common.RenditionLayoutReflowable
}

func (it *Item) String() string {
	return fmt.Sprintf("%d:%s", it.index, it.manifest.ID)
}

// Load hands fetched content to the renderer. Item becomes ready after the
// next layout pass measures it.
func (it *Item) Load(mediaType string, data []byte) error {
	if err := it.renderer.Load(mediaType, data); err != nil {
		return fmt.Errorf("unable to load item %s: %w", it, err)
	}
	it.mu.Lock()
	it.loaded = true
	it.mu.Unlock()

	it.log.Debug("Content loaded", zap.String("media-type", mediaType), zap.Int("bytes", len(data)))
	it.contents.Publish(it.index)
	return nil
}

func (it *Item) Unload() {
	it.mu.Lock()
	if !it.loaded {
		it.mu.Unlock()
		return
	}
	wasReady := it.ready
	it.loaded, it.ready = false, false
	it.mu.Unlock()

	it.renderer.Unload()
	it.log.Debug("Content unloaded")
	if wasReady {
		it.readiness.Publish(false)
	}
	it.contents.Publish(it.index)
}

func (it *Item) IsLoaded() bool {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.loaded
}

// IsReady reports whether content is loaded and measured.
func (it *Item) IsReady() bool {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.ready
}

// OnReady registers function called on readiness transitions.
func (it *Item) OnReady(fn func(ready bool)) func() {
	return it.readiness.Subscribe(fn)
}

// OnContentChange registers function called whenever content was loaded or
// unloaded and item needs to be measured again.
func (it *Item) OnContentChange(fn func(index int)) func() {
	return it.contents.Subscribe(fn)
}

// Layout measures item for p. When blankBefore is set an empty page
// precedes content so that it starts on the expected side of a spread.
func (it *Item) Layout(p LayoutParams, blankBefore bool) geometry.Size {
	content := it.renderer.Layout(p)
	page := p.PageSize

	var size geometry.Size
	switch {
	case !it.IsReflowable():
		size = page
	case p.VerticalDirection || p.Scrollable:
		size = geometry.Size{Width: page.Width, Height: content.Height}
		switch {
		case content.Height <= 0:
			// not measured yet, holds a single page
			size.Height = page.Height
		case !p.Scrollable:
			size.Height = roundUp(content.Height, page.Height)
		}
	case it.renderer.IsUsingVerticalWriting():
		size = geometry.Size{Width: max(p.MinimumWidth, page.Width), Height: max(roundUp(content.Height, page.Height), page.Height)}
	default:
		size = geometry.Size{Width: max(roundUp(content.Width, page.Width), page.Width), Height: page.Height}
		if size.Width > 0 && p.MinimumWidth > 0 && math.Mod(size.Width, p.MinimumWidth) != 0 {
			// item does not fill the whole screen, no other item may start on it
			size.Width += page.Width
		}
	}

	var offset float64
	if blankBefore && !p.VerticalDirection {
		offset = page.Width
		size.Width += page.Width
	}
	if p.RTL && it.IsReflowable() && !p.VerticalDirection && !p.Scrollable && !it.renderer.IsUsingVerticalWriting() {
		// content is aligned to the right edge, after the blank page
		offset = size.Width - offset - roundUp(content.Width, page.Width)
	}

	it.mu.Lock()
	it.size = size
	it.contentOffset = offset
	becameReady := it.loaded && !it.ready
	if becameReady {
		it.ready = true
	}
	it.mu.Unlock()

	if becameReady {
		it.log.Debug("Content ready", zap.Float64("width", size.Width), zap.Float64("height", size.Height))
		it.readiness.Publish(true)
	}
	return size
}

func roundUp(v, step float64) float64 {
	if v <= 0 || step <= 0 {
		return max(v, 0)
	}
	return math.Ceil(v/step) * step
}

// Size returns dimensions measured by the last layout pass.
func (it *Item) Size() geometry.Size {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.size
}

func (it *Item) IsUsingVerticalWriting() bool {
	return it.renderer.IsUsingVerticalWriting()
}

func (it *Item) Document() *html.Node {
	return it.renderer.Document()
}

func (it *Item) offset() float64 {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.contentOffset
}

// NodeRect returns item local box of node.
func (it *Item) NodeRect(node *html.Node, offset int) (geometry.Rect, bool) {
	if node == nil {
		return geometry.Rect{}, false
	}
	r, ok := it.renderer.NodeRect(node, offset)
	if !ok {
		return geometry.Rect{}, false
	}
	return geometry.NewRect(r.Left+it.offset(), r.Top, r.Width, r.Height), true
}

// AnchorRect returns item local box of the element with given id.
func (it *Item) AnchorRect(anchor string) (geometry.Rect, bool) {
	anchor = strings.TrimPrefix(anchor, "#")
	if anchor == "" {
		return geometry.Rect{}, false
	}
	el := FindByID(it.renderer.Document(), anchor)
	if el == nil {
		return geometry.Rect{}, false
	}
	return it.NodeRect(el, 0)
}

// NodeAt returns first node laid out inside item local area.
func (it *Item) NodeAt(area geometry.Rect) (*html.Node, int, bool) {
	off := it.offset()
	return it.renderer.NodeAt(geometry.NewRect(area.Left-off, area.Top, area.Width, area.Height))
}

// FindByID walks document looking for element with id.
func FindByID(n *html.Node, id string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
