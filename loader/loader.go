// Package loader keeps content of items around the reading position loaded
// and releases content of items far from it.
package loader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"leaf/archive"
	"leaf/geometry"
	"leaf/spine"
	"leaf/spineitem"
)

// Fetcher supplies content of reading items.
type Fetcher interface {
	Fetch(ctx context.Context, href, mediaType string) (*archive.Resource, error)
}

type Options struct {
	// items kept loaded on each side of visible range
	Window         int
	LoadDebounce   time.Duration
	UnloadDebounce time.Duration
	// maximum number of concurrent fetches, 0 means unlimited
	Concurrency int
}

// Loader follows navigations. Loads happen after LoadDebounce, unloads after
// UnloadDebounce; zero durations act synchronously.
type Loader struct {
	reg   *spine.Registry
	loc   *spine.Locator
	fetch Fetcher
	opts  Options
	log   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	begin, end  int
	loadTimer   *time.Timer
	unloadTimer *time.Timer
	// in flight loads, items are not fetched twice
	inflight map[int]bool
	wg       sync.WaitGroup
}

func New(reg *spine.Registry, loc *spine.Locator, fetch Fetcher, opts Options, log *zap.Logger) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		reg:      reg,
		loc:      loc,
		fetch:    fetch,
		opts:     opts,
		log:      log.Named("loader"),
		ctx:      ctx,
		cancel:   cancel,
		begin:    -1,
		end:      -1,
		inflight: make(map[int]bool),
	}
}

// Window returns range of items which should be loaded.
func (l *Loader) Window() (begin, end int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.begin, l.end
}

// Navigated moves load window around viewport at pos.
func (l *Loader) Navigated(pos geometry.ViewportPosition) {
	first, last, ok := l.loc.VisibleItemRange(pos, 0, false)
	if !ok {
		return
	}
	n := l.reg.Len()
	begin, end := max(0, first-l.opts.Window), min(n-1, last+l.opts.Window)

	l.mu.Lock()
	if l.ctx.Err() != nil {
		l.mu.Unlock()
		return
	}
	changed := begin != l.begin || end != l.end
	l.begin, l.end = begin, end
	l.mu.Unlock()
	if !changed {
		return
	}

	l.log.Debug("Load window", zap.Int("begin", begin), zap.Int("end", end))
	l.debounce(&l.loadTimer, l.opts.LoadDebounce, func() {
		if err := l.loadWindow(l.ctx); err != nil {
			l.log.Warn("Unable to load some items", zap.Error(err))
		}
	})
	l.debounce(&l.unloadTimer, l.opts.UnloadDebounce, l.unloadOutside)
}

// debounce restarts timer, fn runs once things settle for d.
func (l *Loader) debounce(timer **time.Timer, d time.Duration, fn func()) {
	if d <= 0 {
		fn()
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if *timer != nil && (*timer).Stop() {
		l.wg.Done()
	}
	l.wg.Add(1)
	*timer = time.AfterFunc(d, func() {
		defer l.wg.Done()
		fn()
	})
}

func (l *Loader) loadWindow(ctx context.Context) error {
	begin, end := l.Window()
	if begin < 0 {
		return nil
	}
	indexes := make([]int, 0, end-begin+1)
	for i := begin; i <= end; i++ {
		indexes = append(indexes, i)
	}
	return l.load(ctx, indexes)
}

// LoadAll loads every item regardless of window.
func (l *Loader) LoadAll(ctx context.Context) error {
	indexes := make([]int, l.reg.Len())
	for i := range indexes {
		indexes[i] = i
	}
	return l.load(ctx, indexes)
}

// load fetches items which are not loaded yet. Failures of single items do
// not stop others, they are all reported.
func (l *Loader) load(ctx context.Context, indexes []int) error {
	var (
		errMu sync.Mutex
		errs  error
	)
	g, gctx := errgroup.WithContext(ctx)
	if l.opts.Concurrency > 0 {
		g.SetLimit(l.opts.Concurrency)
	}
	for _, i := range indexes {
		it, ok := l.reg.Get(i)
		if !ok || it.IsLoaded() || !l.claim(i) {
			continue
		}
		g.Go(func() error {
			defer l.release(i)
			if err := l.loadItem(gctx, it); err != nil {
				errMu.Lock()
				errs = multierr.Append(errs, err)
				errMu.Unlock()
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}

func (l *Loader) claim(index int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inflight[index] {
		return false
	}
	l.inflight[index] = true
	return true
}

func (l *Loader) release(index int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inflight, index)
}

func (l *Loader) loadItem(ctx context.Context, it *spineitem.Item) error {
	mi := it.Manifest()
	res, err := l.fetch.Fetch(ctx, mi.Href, mi.MediaType)
	if err != nil {
		return fmt.Errorf("unable to fetch item %s: %w", it, err)
	}
	return it.Load(res.MediaType, res.Data)
}

// unloadOutside releases content of items outside of current window.
func (l *Loader) unloadOutside() {
	begin, end := l.Window()
	if begin < 0 {
		return
	}
	for _, it := range l.reg.All() {
		if i := it.Index(); (i < begin || i > end) && it.IsLoaded() {
			it.Unload()
		}
	}
}

// Close stops pending work and waits for scheduled timers which already
// fired.
func (l *Loader) Close() {
	l.mu.Lock()
	l.cancel()
	for _, t := range []*time.Timer{l.loadTimer, l.unloadTimer} {
		if t != nil && t.Stop() {
			l.wg.Done()
		}
	}
	l.mu.Unlock()
	l.wg.Wait()
}
