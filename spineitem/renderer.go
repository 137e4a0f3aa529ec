package spineitem

import (
	"golang.org/x/net/html"

	"leaf/geometry"
)

// LayoutParams describe space available to the item content.
type LayoutParams struct {
	PageSize geometry.Size
	// Reflowable content is widened to a multiple of this, in spread it is
	// the whole screen so that no other item starts on the same screen.
	MinimumWidth float64
	// Pages follow each other vertically.
	VerticalDirection bool
	Scrollable        bool
	RTL               bool
}

// Renderer measures content of one reading item. Geometry it reports is
// relative to the content box, blank pages the layout inserts are not its
// concern. Implementations must tolerate calls before Load and after Unload.
type Renderer interface {
	Load(mediaType string, data []byte) error
	Unload()
	// Layout returns size of the content for the given parameters.
	Layout(p LayoutParams) geometry.Size
	IsUsingVerticalWriting() bool
	// Document returns parsed content, nil when not loaded or not markup.
	Document() *html.Node
	// NodeRect returns box of node (character at offset for text nodes).
	NodeRect(node *html.Node, offset int) (geometry.Rect, bool)
	// NodeAt returns first node with its character offset laid out inside
	// area.
	NodeAt(area geometry.Rect) (*html.Node, int, bool)
}
