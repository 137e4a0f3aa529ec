package navigation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"leaf/cfi"
	"leaf/common"
	"leaf/geometry"
	"leaf/manifest"
	"leaf/spine"
	"leaf/spineitem"
)

type fixture struct {
	ctx       *geometry.Context
	reg       *spine.Registry
	loc       *spine.Locator
	resolver  *Resolver
	nav       *Navigator
	view      *recorder
	renderers []*spineitem.FixedRenderer
}

type itemSpec struct {
	layout common.RenditionLayout
	w, h   float64
}

func reflowable(w, h float64) itemSpec {
	return itemSpec{layout: common.RenditionLayoutReflowable, w: w, h: h}
}

func prePaginated() itemSpec {
	return itemSpec{layout: common.RenditionLayoutPrePaginated}
}

func noSpread() geometry.Settings {
	s := geometry.DefaultSettings()
	s.Spread = common.SpreadModeNone
	return s
}

type recorder struct {
	applied []Entry
}

func (r *recorder) Apply(e Entry) {
	r.applied = append(r.applied, e)
}

func newFixture(t *testing.T, w, h float64, dir common.ReadingDirection, settings geometry.Settings, specs ...itemSpec) *fixture {
	t.Helper()

	ctx := geometry.NewContext(settings)
	ctx.SetVisibleArea(w, h)
	ctx.SetBook(dir, common.SpreadModeAuto)

	m := &manifest.Manifest{ID: "book", ReadingDirection: dir}
	f := &fixture{ctx: ctx, reg: spine.NewRegistry(ctx, zap.NewNop()), view: &recorder{}}
	for i, s := range specs {
		id := string(rune('a' + i))
		m.Items = append(m.Items, manifest.Item{
			ID:              id,
			Href:            "OEBPS/" + id + ".xhtml",
			MediaType:       "application/xhtml+xml",
			Linear:          true,
			RenditionLayout: s.layout,
		})
		f.renderers = append(f.renderers, spineitem.NewFixedRenderer(s.w, s.h))
	}
	f.reg.Load(m, func(i int, _ manifest.Item) spineitem.Renderer { return f.renderers[i] })
	t.Cleanup(f.reg.Close)

	f.loc = spine.NewLocator(ctx, f.reg, spineitem.NewLocator(ctx))
	f.resolver = NewResolver(ctx, f.reg, f.loc, cfi.NewLocator(f.reg, zap.NewNop()), zap.NewNop())
	f.nav = NewNavigator(f.resolver, f.view, zap.NewNop())
	return f
}

func (f *fixture) item(t *testing.T, index int) *spineitem.Item {
	t.Helper()
	it, ok := f.reg.Get(index)
	require.True(t, ok)
	return it
}

func TestWrapWithSafeEdgeEmptyBook(t *testing.T) {
	f := newFixture(t, 100, 100, common.ReadingDirectionLtr, noSpread())

	got := f.resolver.WrapWithSafeEdge(geometry.ViewportPosition{X: -10, Y: -20})
	assert.Equal(t, geometry.ViewportPosition{}, got)
}

func TestWrapWithSafeEdge(t *testing.T) {
	tests := []struct {
		name string
		dir  common.ReadingDirection
		in   geometry.ViewportPosition
		want geometry.ViewportPosition
	}{
		{"ltr before start", common.ReadingDirectionLtr, geometry.ViewportPosition{X: -10, Y: -20}, geometry.ViewportPosition{}},
		{"ltr past end", common.ReadingDirectionLtr, geometry.ViewportPosition{X: 500, Y: 30}, geometry.ViewportPosition{X: 150}},
		{"ltr inside", common.ReadingDirectionLtr, geometry.ViewportPosition{X: 100}, geometry.ViewportPosition{X: 100}},
		{"rtl positive", common.ReadingDirectionRtl, geometry.ViewportPosition{X: 10}, geometry.ViewportPosition{}},
		{"rtl past end", common.ReadingDirectionRtl, geometry.ViewportPosition{X: -500}, geometry.ViewportPosition{X: -150}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 50, 100, tt.dir, noSpread(), reflowable(100, 100), reflowable(100, 100))
			assert.Equal(t, tt.want, f.resolver.WrapWithSafeEdge(tt.in))
		})
	}
}

func TestForSpineIndexOrID(t *testing.T) {
	f := newFixture(t, 50, 100, common.ReadingDirectionLtr, noSpread(), prePaginated(), prePaginated())

	assert.Equal(t, geometry.ViewportPosition{X: 50}, f.resolver.ForSpineIndexOrID(ItemRef{Index: 1}))
	assert.Equal(t, geometry.ViewportPosition{X: 50}, f.resolver.ForSpineIndexOrID(ItemRef{ID: "b"}))
	assert.Equal(t, geometry.ViewportPosition{}, f.resolver.ForSpineIndexOrID(ItemRef{Index: -3}))
	assert.Equal(t, geometry.ViewportPosition{X: 50}, f.resolver.ForSpineIndexOrID(ItemRef{Index: 7}))
	assert.Equal(t, geometry.ViewportPosition{}, f.resolver.ForSpineIndexOrID(ItemRef{ID: "missing"}))
}

func TestForPages(t *testing.T) {
	f := newFixture(t, 50, 100, common.ReadingDirectionLtr, noSpread(), reflowable(100, 100), reflowable(150, 100))
	second := f.item(t, 1)

	assert.Equal(t, geometry.ViewportPosition{X: 100}, f.resolver.ForPage(0, second))
	assert.Equal(t, geometry.ViewportPosition{X: 150}, f.resolver.ForPage(1, second))
	assert.Equal(t, geometry.ViewportPosition{X: 200}, f.resolver.ForLastPage(second))
	assert.Equal(t, geometry.ViewportPosition{X: 150}, f.resolver.ForPosition(geometry.ViewportPosition{X: 170}))
}

func TestForPagesRTL(t *testing.T) {
	f := newFixture(t, 50, 100, common.ReadingDirectionRtl, noSpread(), reflowable(100, 100))
	first := f.item(t, 0)

	// single item spans [-50, 50], first page is on the right
	assert.Equal(t, geometry.ViewportPosition{X: 0}, f.resolver.ForPage(0, first))
	assert.Equal(t, geometry.ViewportPosition{X: -50}, f.resolver.ForLastPage(first))
	assert.True(t, f.resolver.IsNavigationGoingForwardFrom(geometry.ViewportPosition{X: -50}, geometry.ViewportPosition{}))
}

func TestForURL(t *testing.T) {
	f := newFixture(t, 50, 100, common.ReadingDirectionLtr, noSpread(), reflowable(100, 100), reflowable(100, 100))

	pos, it, ok := f.resolver.ForURL("OEBPS/b.xhtml#missing-anchor")
	require.True(t, ok)
	assert.Equal(t, 1, it.Index())
	assert.Equal(t, geometry.ViewportPosition{X: 100}, pos)

	_, _, ok = f.resolver.ForURL("OEBPS/nowhere.xhtml")
	assert.False(t, ok)
}

func TestForCfiIdempotent(t *testing.T) {
	f := newFixture(t, 50, 100, common.ReadingDirectionLtr, noSpread(), reflowable(100, 100), reflowable(100, 100))
	loc := cfi.Root(1, "b")

	first, it, ok := f.resolver.ForCfi(loc)
	require.True(t, ok)
	second, _, _ := f.resolver.ForCfi(loc)
	assert.Equal(t, 1, it.Index())
	assert.Equal(t, geometry.ViewportPosition{X: 100}, first)
	assert.Equal(t, first, second)

	_, _, ok = f.resolver.ForCfi("epubcfi(/6/40!)")
	assert.False(t, ok)
}

func TestSpreadPositionsAlignedToScreen(t *testing.T) {
	settings := geometry.DefaultSettings()
	f := newFixture(t, 100, 50, common.ReadingDirectionLtr, settings,
		reflowable(150, 50), prePaginated(), reflowable(50, 50), prePaginated())
	require.True(t, f.ctx.IsUsingSpread())

	for _, it := range f.reg.All() {
		for page := range f.loc.Items().NumberOfPages(it) {
			pos := f.resolver.ForPage(page, it)
			assert.Zero(t, math.Mod(pos.X, 100), "item %d page %d at %v", it.Index(), page, pos)
			assert.Equal(t, pos, f.resolver.WrapWithSafeEdge(pos))

			local := f.loc.Items().PositionFromPageIndex(page, it)
			anchored := f.resolver.FromSpineItemPosition(geometry.UnsafeSpineItemPosition{X: local.X, Y: local.Y}, it)
			assert.Zero(t, math.Mod(anchored.X, 100), "item %d page %d anchored at %v", it.Index(), page, anchored)
		}
	}
}

func TestMostPredominantNavigationForPosition(t *testing.T) {
	f := newFixture(t, 50, 100, common.ReadingDirectionLtr, noSpread(), reflowable(100, 100), reflowable(100, 100))

	// probe at the middle of the screen decides
	assert.Equal(t, geometry.ViewportPosition{X: 50}, f.resolver.MostPredominantNavigationForPosition(geometry.ViewportPosition{X: 30}))
	assert.Equal(t, geometry.ViewportPosition{X: 0}, f.resolver.MostPredominantNavigationForPosition(geometry.ViewportPosition{X: 20}))
}
