package spineitem

import (
	"sync"

	"golang.org/x/net/html"

	"leaf/geometry"
)

// FixedRenderer reports preset content size. It stands for content whose
// dimensions are known up front (images with declared size) and drives
// layout in tests.
type FixedRenderer struct {
	mu       sync.RWMutex
	size     geometry.Size
	vertical bool
	loaded   bool
}

func NewFixedRenderer(width, height float64) *FixedRenderer {
	return &FixedRenderer{size: geometry.Size{Width: width, Height: height}}
}

// Resize changes reported size. Caller has to trigger layout.
func (r *FixedRenderer) Resize(width, height float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.size = geometry.Size{Width: width, Height: height}
}

func (r *FixedRenderer) SetVerticalWriting(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vertical = v
}

func (r *FixedRenderer) Load(string, []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = true
	return nil
}

func (r *FixedRenderer) Unload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = false
}

func (r *FixedRenderer) Layout(LayoutParams) geometry.Size {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}

func (r *FixedRenderer) IsUsingVerticalWriting() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.vertical
}

func (r *FixedRenderer) Document() *html.Node {
	return nil
}

func (r *FixedRenderer) NodeRect(*html.Node, int) (geometry.Rect, bool) {
	return geometry.Rect{}, false
}

func (r *FixedRenderer) NodeAt(geometry.Rect) (*html.Node, int, bool) {
	return nil, 0, false
}
