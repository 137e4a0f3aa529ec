package geometry

import (
	"sync"

	"leaf/common"
	"leaf/utils/observe"
)

// Settings are user preferences affecting geometry and navigation.
type Settings struct {
	PageTurnMode      common.PageTurnMode
	PageTurnDirection common.PageTurnDirection
	Spread            common.SpreadMode
	// Minimal covered share of an item or the screen for the item to be
	// picked as navigation target.
	NavigationSnapThreshold float64
	// Minimal covered share of a page for pagination.
	VisibilityThreshold float64
	// Probe offset into viewport used to find predominant page.
	TriggerPercentage float64
}

// DefaultSettings are used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		PageTurnMode:            common.PageTurnModeControlled,
		PageTurnDirection:       common.PageTurnDirectionHorizontal,
		Spread:                  common.SpreadModeAuto,
		NavigationSnapThreshold: 0.3,
		VisibilityThreshold:     0.5,
		TriggerPercentage:       0.5,
	}
}

// Context keeps current viewport, book direction and settings. It is
// written by the reader facade and read by every locator.
type Context struct {
	mu               sync.RWMutex
	visible          Size
	readingDirection common.ReadingDirection
	manifestSpread   common.SpreadMode
	settings         Settings

	changes observe.Subject[struct{}]
}

func NewContext(settings Settings) *Context {
	return &Context{
		settings:       settings,
		manifestSpread: common.SpreadModeAuto,
	}
}

// OnChange registers function called after any context change.
func (c *Context) OnChange(fn func()) func() {
	return c.changes.Subscribe(func(struct{}) { fn() })
}

func (c *Context) update(fn func()) {
	c.mu.Lock()
	fn()
	c.mu.Unlock()
	c.changes.Publish(struct{}{})
}

func (c *Context) SetVisibleArea(width, height float64) {
	c.update(func() { c.visible = Size{Width: width, Height: height} })
}

// SetBook applies book level properties coming from the manifest.
func (c *Context) SetBook(direction common.ReadingDirection, spread common.SpreadMode) {
	c.update(func() {
		c.readingDirection = direction
		c.manifestSpread = spread
	})
}

func (c *Context) SetSettings(s Settings) {
	c.update(func() { c.settings = s })
}

func (c *Context) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// VisibleAreaRect is the viewport rectangle at origin.
func (c *Context) VisibleAreaRect() Rect {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return NewRect(0, 0, c.visible.Width, c.visible.Height)
}

func (c *Context) ReadingDirection() common.ReadingDirection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.readingDirection
}

func (c *Context) IsRTL() bool {
	return c.ReadingDirection() == common.ReadingDirectionRtl
}

// IsUsingSpread reports whether two pages are shown at once. Spread is
// possible only for controlled horizontal page turning. User preference
// "auto" defers to the book, and book "auto" means landscape viewport.
func (c *Context) IsUsingSpread() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isUsingSpread()
}

func (c *Context) isUsingSpread() bool {
	if c.settings.PageTurnMode != common.PageTurnModeControlled ||
		c.settings.PageTurnDirection != common.PageTurnDirectionHorizontal {
		return false
	}
	mode := c.settings.Spread
	if mode == common.SpreadModeAuto {
		mode = c.manifestSpread
	}
	switch mode {
	case common.SpreadModeBoth:
		return true
	case common.SpreadModeAuto:
		return c.visible.Width > c.visible.Height
	default:
		return false
	}
}

// PageSize is the size of a single page, half of visible area in spread.
func (c *Context) PageSize() Size {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.isUsingSpread() {
		return Size{Width: c.visible.Width / 2, Height: c.visible.Height}
	}
	return c.visible
}

func (c *Context) IsControlled() bool {
	return c.Settings().PageTurnMode == common.PageTurnModeControlled
}

// IsVertical reports whether items follow each other vertically. Scrollable
// mode always scrolls vertically.
func (c *Context) IsVertical() bool {
	s := c.Settings()
	return s.PageTurnMode == common.PageTurnModeScrollable || s.PageTurnDirection == common.PageTurnDirectionVertical
}
