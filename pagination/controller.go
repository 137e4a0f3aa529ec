package pagination

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"leaf/cfi"
	"leaf/common"
	"leaf/geometry"
	"leaf/spine"
	"leaf/utils/observe"
)

// DefaultDelay is how long viewport has to stay free before precise
// locations are computed.
const DefaultDelay = 500 * time.Millisecond

// Controller recomputes pagination after every navigation. Root locations
// are published right away, precise ones once viewport stayed free for the
// configured delay. Zero delay computes everything synchronously.
type Controller struct {
	ctx   *geometry.Context
	reg   *spine.Registry
	loc   *spine.Locator
	cfis  *cfi.Locator
	delay time.Duration
	send  func(Feedback)
	log   *zap.Logger

	mu      sync.Mutex
	info    Info
	busy    bool
	waiting *navigation
	timer   *time.Timer
	// invalidates scheduled precise computation
	gen uint64

	updates observe.Subject[Info]
}

type navigation struct {
	id  uuid.UUID
	pos geometry.ViewportPosition
}

func NewController(ctx *geometry.Context, reg *spine.Registry, loc *spine.Locator, cfis *cfi.Locator, delay time.Duration, send func(Feedback), log *zap.Logger) *Controller {
	return &Controller{
		ctx:   ctx,
		reg:   reg,
		loc:   loc,
		cfis:  cfis,
		delay: delay,
		send:  send,
		log:   log.Named("pagination"),
	}
}

// Info returns last computed pagination.
func (c *Controller) Info() Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info
}

// Subscribe registers fn called with every pagination update.
func (c *Controller) Subscribe(fn func(Info)) func() {
	return c.updates.Subscribe(fn)
}

// Navigated is called for every committed navigation. While viewport is busy
// only the latest one is remembered.
func (c *Controller) Navigated(id uuid.UUID, pos geometry.ViewportPosition) {
	c.mu.Lock()
	if c.busy {
		c.waiting = &navigation{id: id, pos: pos}
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.update(navigation{id: id, pos: pos})
}

// SetViewportState postpones work while viewport is busy.
func (c *Controller) SetViewportState(state common.ViewportState) {
	c.mu.Lock()
	if state == common.ViewportStateBusy {
		c.busy = true
		c.cancelLocked()
		c.mu.Unlock()
		return
	}
	c.busy = false
	waiting := c.waiting
	c.waiting = nil
	reschedule := waiting == nil && !c.info.Precise && c.info.NavigationID != uuid.Nil
	c.mu.Unlock()

	switch {
	case waiting != nil:
		c.update(*waiting)
	case reschedule:
		c.schedule()
	}
}

// Close stops pending computation.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

func (c *Controller) cancelLocked() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) update(nav navigation) {
	threshold := c.ctx.Settings().VisibilityThreshold
	info := Info{NavigationID: nav.id, Position: nav.pos}

	begin, end, ok := c.loc.VisibleItemRange(nav.pos, threshold, false)
	if ok {
		bi, _ := c.reg.Get(begin)
		ei, _ := c.reg.Get(end)
		items := c.loc.Items()

		info.BeginItem, info.EndItem = begin, end
		if first, _, found := c.loc.VisiblePageRange(bi, nav.pos, threshold); found {
			info.BeginPage = first
		}
		if _, last, found := c.loc.VisiblePageRange(ei, nav.pos, threshold); found {
			info.EndPage = last
		}
		info.BeginNumberOfPages = items.NumberOfPages(bi)
		info.EndNumberOfPages = items.NumberOfPages(ei)

		c.mu.Lock()
		prev := c.info
		c.mu.Unlock()
		info.BeginCFI = prev.BeginCFI
		if prev.BeginItem != begin || prev.BeginCFI == "" || cfi.IsRoot(prev.BeginCFI) {
			info.BeginCFI = c.cfis.Root(bi)
		}
		info.EndCFI = prev.EndCFI
		if prev.EndItem != end || prev.EndCFI == "" || cfi.IsRoot(prev.EndCFI) {
			info.EndCFI = c.cfis.Root(ei)
		}
	}

	c.mu.Lock()
	c.cancelLocked()
	c.info = info
	c.mu.Unlock()

	c.log.Debug("Pagination", zap.Stringer("info", info))
	c.updates.Publish(info)
	if ok {
		c.schedule()
	}
}

func (c *Controller) schedule() {
	c.mu.Lock()
	c.cancelLocked()
	gen := c.gen
	if c.delay > 0 {
		c.timer = time.AfterFunc(c.delay, func() { c.precise(gen) })
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.precise(gen)
}

// precise replaces root locations with locations of first nodes of begin
// and end pages.
func (c *Controller) precise(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.busy {
		c.mu.Unlock()
		return
	}
	info := c.info
	c.mu.Unlock()

	bi, okBegin := c.reg.Get(info.BeginItem)
	ei, okEnd := c.reg.Get(info.EndItem)
	if !okBegin || !okEnd {
		return
	}
	info.BeginCFI = c.cfis.ForPage(info.BeginPage, bi, c.loc.Items())
	info.EndCFI = c.cfis.ForPage(info.EndPage, ei, c.loc.Items())
	info.Precise = true

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.info = info
	c.timer = nil
	c.mu.Unlock()

	c.updates.Publish(info)
	if c.send != nil {
		c.send(Feedback{
			NavigationID: info.NavigationID,
			BeginItem:    info.BeginItem,
			BeginCFI:     info.BeginCFI,
			EndItem:      info.EndItem,
			EndCFI:       info.EndCFI,
		})
	}
}
