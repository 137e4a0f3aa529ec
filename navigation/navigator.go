package navigation

import (
	"sync"

	"go.uber.org/zap"

	"leaf/common"
	"leaf/pagination"
	"leaf/utils/observe"
)

// ViewportRenderer moves viewport to committed navigation.
type ViewportRenderer interface {
	Apply(Entry)
}

// Navigator owns canonical navigation. Events may come from any goroutine,
// they are processed one at a time in arrival order. Event raised while
// another is being processed (from a subscriber for example) is queued and
// processed before the outermost call returns.
type Navigator struct {
	pl       pipeline
	renderer ViewportRenderer
	log      *zap.Logger

	qmu     sync.Mutex
	queue   []func()
	running bool

	// fields below are written only by events
	mu        sync.RWMutex
	current   Entry
	locks     int
	animating bool
	// bumped by every commit, layout restoration waiting for free viewport
	// is abandoned when it moves
	gen          uint64
	restoreGen   uint64
	restoreQueue bool
	deferred     *Entry
	feedback     *pagination.Feedback

	navigations observe.Subject[Entry]
	states      observe.Subject[common.ViewportState]
}

func NewNavigator(r *Resolver, renderer ViewportRenderer, log *zap.Logger) *Navigator {
	log = log.Named("navigator")
	return &Navigator{
		pl:       pipeline{r: r, log: log},
		renderer: renderer,
		log:      log,
		current:  Initial(),
	}
}

// dispatch runs event handler serialized with all others.
func (n *Navigator) dispatch(fn func()) {
	n.qmu.Lock()
	n.queue = append(n.queue, fn)
	if n.running {
		n.qmu.Unlock()
		return
	}
	n.running = true
	for len(n.queue) > 0 {
		next := n.queue[0]
		n.queue = n.queue[1:]
		n.qmu.Unlock()
		next()
		n.qmu.Lock()
	}
	n.running = false
	n.qmu.Unlock()
}

// Navigation returns canonical navigation.
func (n *Navigator) Navigation() Entry {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

// ViewportState reports whether automatic adjustments are allowed now.
func (n *Navigator) ViewportState() common.ViewportState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state()
}

func (n *Navigator) state() common.ViewportState {
	if n.locks > 0 || n.animating {
		return common.ViewportStateBusy
	}
	return common.ViewportStateFree
}

// Subscribe registers fn called with every committed navigation, including
// pagination updates of the current one.
func (n *Navigator) Subscribe(fn func(Entry)) func() {
	return n.navigations.Subscribe(fn)
}

// SubscribeViewportState registers fn called on busy/free transitions.
func (n *Navigator) SubscribeViewportState(fn func(common.ViewportState)) func() {
	return n.states.Subscribe(fn)
}

// Navigate consolidates user navigation. Navigation requested while locked
// is applied on unlock, unless newer one replaces it.
func (n *Navigator) Navigate(in Intent) {
	n.dispatch(func() {
		n.mu.Lock()
		previous, busy, locked := n.current, n.state() == common.ViewportStateBusy, n.locks > 0
		n.restoreQueue, n.deferred = false, nil
		n.mu.Unlock()

		p := n.pl.run(mapUserNavigation(in, previous), busy)
		if p.dropped {
			return
		}
		entry := n.pl.consolidate(p)
		if locked {
			n.log.Debug("Navigation deferred until unlock", zap.Stringer("navigation", entry))
			n.mu.Lock()
			n.deferred = &entry
			n.gen++
			n.mu.Unlock()
			return
		}
		n.commit(entry, previous)
	})
}

// LayoutChanged restores current navigation against new layout, right away
// when viewport is free, otherwise once it becomes free.
func (n *Navigator) LayoutChanged() {
	n.dispatch(func() {
		n.mu.Lock()
		if n.state() == common.ViewportStateBusy {
			n.restoreQueue, n.restoreGen = true, n.gen
			n.mu.Unlock()
			return
		}
		n.mu.Unlock()
		n.restore(n.Navigation(), common.AnimationNone)
	})
}

// Lock engages user lock. Returned function releases it, calling it more
// than once has no effect.
func (n *Navigator) Lock() func() {
	n.dispatch(func() {
		n.mu.Lock()
		n.locks++
		became := n.locks == 1 && !n.animating
		n.mu.Unlock()
		if became {
			n.states.Publish(common.ViewportStateBusy)
		}
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			n.dispatch(n.unlock)
		})
	}
}

func (n *Navigator) unlock() {
	n.mu.Lock()
	n.locks--
	if n.locks > 0 {
		n.mu.Unlock()
		return
	}
	deferred := n.deferred
	n.deferred, n.restoreQueue = nil, false
	free := !n.animating
	n.mu.Unlock()

	if free {
		n.states.Publish(common.ViewportStateFree)
	}
	base := n.Navigation()
	if deferred != nil {
		base = *deferred
	}
	n.restore(base, common.AnimationSnap)
}

// SetViewportBusy marks viewport as animating.
func (n *Navigator) SetViewportBusy() {
	n.dispatch(func() {
		n.mu.Lock()
		became := !n.animating && n.locks == 0
		n.animating = true
		n.mu.Unlock()
		if became {
			n.states.Publish(common.ViewportStateBusy)
		}
	})
}

// SetViewportFree marks end of viewport animation and runs layout
// restoration postponed meanwhile.
func (n *Navigator) SetViewportFree() {
	n.dispatch(func() {
		n.mu.Lock()
		if !n.animating {
			n.mu.Unlock()
			return
		}
		n.animating = false
		free := n.locks == 0
		pendingRestore := free && n.restoreQueue && n.restoreGen == n.gen
		if free {
			n.restoreQueue = false
		}
		n.mu.Unlock()

		if !free {
			return
		}
		n.states.Publish(common.ViewportStateFree)
		if pendingRestore {
			n.restore(n.Navigation(), common.AnimationNone)
		}
	})
}

// Feedback merges confirmed pagination into current navigation. Feedback
// for superseded navigation is dropped, feedback for item not ready yet
// waits for ItemReady.
func (n *Navigator) Feedback(fb pagination.Feedback) {
	n.dispatch(func() {
		n.mu.Lock()
		n.feedback = nil
		n.mu.Unlock()
		n.applyFeedback(fb)
	})
}

// ItemReady notifies that item content finished loading and measuring.
func (n *Navigator) ItemReady(index int) {
	n.dispatch(func() {
		n.mu.Lock()
		fb := n.feedback
		n.mu.Unlock()
		if fb != nil && n.Navigation().SpineItem == index {
			n.applyFeedback(*fb)
		}
	})
}

func (n *Navigator) applyFeedback(fb pagination.Feedback) {
	n.mu.Lock()
	if fb.NavigationID != n.current.ID {
		n.feedback = nil
		n.mu.Unlock()
		n.log.Debug("Stale pagination dropped", zap.Stringer("id", fb.NavigationID))
		return
	}
	it, ok := n.pl.r.reg.Get(n.current.SpineItem)
	switch {
	case !ok:
		n.mu.Unlock()
		return
	case !it.IsReady():
		n.feedback = &fb
		n.mu.Unlock()
		return
	}
	n.feedback = nil
	if n.current.PaginationBeginCFI == fb.BeginCFI && n.current.PaginationEndCFI == fb.EndCFI {
		n.mu.Unlock()
		return
	}
	n.current.PaginationBeginCFI, n.current.PaginationEndCFI = fb.BeginCFI, fb.EndCFI
	n.current.TriggeredBy = common.TriggeredByPagination
	entry := n.current
	n.mu.Unlock()

	n.navigations.Publish(entry)
}

// restore re-resolves base navigation against current layout and commits
// it as restoration.
func (n *Navigator) restore(base Entry, animation common.Animation) {
	nav := base
	nav.TriggeredBy = common.TriggeredByRestoration
	nav.Animation = animation
	nav.Position = RestorePosition(n.pl.r, nav)
	nav.PositionInSpineItem = nil

	p := pending{nav: nav, hasPosition: true}
	p.item, _ = n.pl.r.reg.Get(nav.SpineItem)
	p = n.pl.withItemDimensions(p)
	n.commit(n.pl.consolidate(p), n.Navigation())
}

func (n *Navigator) commit(entry, previous Entry) {
	n.mu.Lock()
	n.current = entry
	n.gen++
	n.feedback = nil
	n.mu.Unlock()

	n.log.Debug("Navigation",
		zap.Stringer("id", entry.ID),
		zap.Stringer("trigger", entry.TriggeredBy),
		zap.Stringer("type", entry.Type),
		zap.Int("item", entry.SpineItem),
		zap.Stringer("position", entry.Position))
	n.navigations.Publish(entry)

	if n.renderer == nil || entry.Type == common.NavigationTypeScroll && entry.TriggeredBy != common.TriggeredByRestoration {
		return
	}
	if entry.Animation != common.AnimationSnap && !n.pl.r.ArePositionsDifferent(entry.Position, previous.Position) {
		return
	}
	n.renderer.Apply(entry)
}
