// Package reader assembles navigation engine around a single book and
// exposes its public navigation API.
package reader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"leaf/cfi"
	"leaf/common"
	"leaf/config"
	"leaf/css"
	"leaf/geometry"
	"leaf/loader"
	"leaf/manifest"
	"leaf/navigation"
	"leaf/pagination"
	"leaf/spine"
	"leaf/spineitem"
)

// Book is content source of the reader, archive.Book satisfies it.
type Book interface {
	manifest.Source
	loader.Fetcher
}

type Options struct {
	Settings        geometry.Settings
	Width, Height   float64
	PaginationDelay time.Duration
	Loader          loader.Options
	// typographic assumptions used to estimate reflowable content
	Metrics spineitem.Metrics
}

// DefaultOptions are suitable for tests and tools which compute everything
// synchronously.
func DefaultOptions(width, height float64) Options {
	return Options{
		Settings: geometry.DefaultSettings(),
		Width:    width,
		Height:   height,
		Metrics:  spineitem.DefaultMetrics,
	}
}

// OptionsFromConfig converts reader and loader configuration sections.
func OptionsFromConfig(cfg *config.Config) Options {
	w, h := cfg.Reader.ViewportSize()
	return Options{
		Settings: geometry.Settings{
			PageTurnMode:            cfg.Reader.PageTurnMode,
			PageTurnDirection:       cfg.Reader.PageTurnDirection,
			Spread:                  cfg.Reader.Spread,
			NavigationSnapThreshold: cfg.Reader.NavigationSnapThreshold,
			VisibilityThreshold:     cfg.Reader.VisibilityThreshold,
			TriggerPercentage:       cfg.Reader.TriggerPercentage,
		},
		Width:           w,
		Height:          h,
		PaginationDelay: cfg.Reader.PaginationDelay,
		Loader: loader.Options{
			Window:         cfg.Loader.Window,
			LoadDebounce:   cfg.Loader.LoadDebounce,
			UnloadDebounce: cfg.Loader.UnloadDebounce,
			Concurrency:    cfg.Loader.Concurrency,
		},
		Metrics: spineitem.DefaultMetrics,
	}
}

// Reader owns every component of the engine for one book.
type Reader struct {
	log  *zap.Logger
	book *manifest.Manifest

	ctx   *geometry.Context
	reg   *spine.Registry
	loc   *spine.Locator
	cfis  *cfi.Locator
	res   *navigation.Resolver
	nav   *navigation.Navigator
	pages *pagination.Controller
	load  *loader.Loader

	// pan gesture in progress: navigation lock and position it started at
	panMu     sync.Mutex
	panUnlock func()
	panFrom   geometry.ViewportPosition

	closeOnce sync.Once
	cancels   []func()
}

// New loads manifest of the book, lays its items out for the viewport and
// navigates to the beginning. renderer may be nil when nobody displays the
// book.
func New(book Book, opts Options, renderer navigation.ViewportRenderer, log *zap.Logger) (*Reader, error) {
	m, err := manifest.Load(book, log)
	if err != nil {
		return nil, fmt.Errorf("unable to load book: %w", err)
	}

	r := &Reader{log: log.Named("reader"), book: m}
	r.ctx = geometry.NewContext(opts.Settings)
	r.ctx.SetVisibleArea(opts.Width, opts.Height)
	r.ctx.SetBook(m.ReadingDirection, m.Spread)

	r.reg = spine.NewRegistry(r.ctx, log)
	r.loc = spine.NewLocator(r.ctx, r.reg, spineitem.NewLocator(r.ctx))
	r.cfis = cfi.NewLocator(r.reg, log)
	r.res = navigation.NewResolver(r.ctx, r.reg, r.loc, r.cfis, log)
	r.nav = navigation.NewNavigator(r.res, renderer, log)
	r.pages = pagination.NewController(r.ctx, r.reg, r.loc, r.cfis, opts.PaginationDelay, r.nav.Feedback, log)
	r.load = loader.New(r.reg, r.loc, book, opts.Loader, log)

	parser := css.NewParser(log)
	r.reg.Load(m, func(_ int, mi manifest.Item) spineitem.Renderer {
		return spineitem.NewEstimatingRenderer(mi.Href, book.ReadFile, parser, opts.Metrics, log)
	})

	r.cancels = append(r.cancels,
		r.ctx.OnChange(func() { r.reg.Layout() }),
		r.reg.OnLayout(func(changed bool) {
			if changed {
				r.nav.LayoutChanged()
			}
		}),
		r.nav.Subscribe(func(e navigation.Entry) {
			if e.TriggeredBy == common.TriggeredByPagination {
				return
			}
			r.load.Navigated(e.Position)
			r.pages.Navigated(e.ID, e.Position)
		}),
		r.nav.SubscribeViewportState(r.pages.SetViewportState),
	)
	for _, it := range r.reg.All() {
		index := it.Index()
		r.cancels = append(r.cancels, it.OnReady(func(ready bool) {
			if ready {
				r.nav.ItemReady(index)
			}
		}))
	}

	r.log.Debug("Book opened",
		zap.String("id", m.ID),
		zap.String("title", m.Title),
		zap.Int("items", len(m.Items)),
		zap.Stringer("direction", m.ReadingDirection))

	r.nav.Navigate(navigation.Intent{Animation: common.AnimationNone})
	return r, nil
}

// Close stops background work. Book itself is not closed.
func (r *Reader) Close() {
	r.closeOnce.Do(func() {
		for _, cancel := range r.cancels {
			cancel()
		}
		r.load.Close()
		r.pages.Close()
		r.reg.Close()
	})
}

func (r *Reader) Manifest() *manifest.Manifest {
	return r.book
}

func (r *Reader) Context() *geometry.Context {
	return r.ctx
}

// Navigate requests navigation. Result is observable with Navigation or
// Subscribe.
func (r *Reader) Navigate(in navigation.Intent) {
	r.nav.Navigate(in)
}

// Navigation returns canonical navigation.
func (r *Reader) Navigation() navigation.Entry {
	return r.nav.Navigation()
}

func (r *Reader) Subscribe(fn func(navigation.Entry)) func() {
	return r.nav.Subscribe(fn)
}

func (r *Reader) SubscribeViewportState(fn func(common.ViewportState)) func() {
	return r.nav.SubscribeViewportState(fn)
}

func (r *Reader) ViewportState() common.ViewportState {
	return r.nav.ViewportState()
}

// Lock keeps viewport busy (during user gesture for example) until
// returned function is called.
func (r *Reader) Lock() func() {
	return r.nav.Lock()
}

// SetViewportBusy and SetViewportFree bracket viewport animations.
func (r *Reader) SetViewportBusy() {
	r.nav.SetViewportBusy()
}

func (r *Reader) SetViewportFree() {
	r.nav.SetViewportFree()
}

// Resize changes visible area, items are laid out again and current
// navigation is restored.
func (r *Reader) Resize(width, height float64) {
	r.ctx.SetVisibleArea(width, height)
}

func (r *Reader) Settings() geometry.Settings {
	return r.ctx.Settings()
}

func (r *Reader) SetSettings(s geometry.Settings) {
	r.ctx.SetSettings(s)
}

// Pagination returns last computed pagination.
func (r *Reader) Pagination() pagination.Info {
	return r.pages.Info()
}

func (r *Reader) SubscribePagination(fn func(pagination.Info)) func() {
	return r.pages.Subscribe(fn)
}

// Location returns most precise known location of current navigation.
func (r *Reader) Location() string {
	e := r.nav.Navigation()
	if e.PaginationBeginCFI != "" {
		return e.PaginationBeginCFI
	}
	if info := r.pages.Info(); info.NavigationID == e.ID && info.BeginCFI != "" {
		return info.BeginCFI
	}
	if it, ok := r.reg.Get(e.SpineItem); ok {
		return r.cfis.Root(it)
	}
	return ""
}

// LoadAll loads content of every item regardless of reading position.
func (r *Reader) LoadAll(ctx context.Context) error {
	return r.load.LoadAll(ctx)
}

// ItemInfo describes reading item as laid out currently.
type ItemInfo struct {
	Index    int
	ID       string
	Href     string
	Layout   common.RenditionLayout
	Spread   common.PageSpread
	Box      geometry.Rect
	Pages    int
	Loaded   bool
	Ready    bool
	Vertical bool
}

// Items returns layout of all reading items.
func (r *Reader) Items() []ItemInfo {
	items := r.reg.All()
	out := make([]ItemInfo, 0, len(items))
	for _, it := range items {
		box, _ := r.reg.AbsolutePositionOf(it.Index())
		mi := it.Manifest()
		out = append(out, ItemInfo{
			Index:    it.Index(),
			ID:       it.ID(),
			Href:     it.Href(),
			Layout:   mi.RenditionLayout,
			Spread:   mi.PageSpread,
			Box:      box,
			Pages:    r.loc.Items().NumberOfPages(it),
			Loaded:   it.IsLoaded(),
			Ready:    it.IsReady(),
			Vertical: it.IsUsingVerticalWriting(),
		})
	}
	return out
}
