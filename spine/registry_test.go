package spine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"leaf/common"
	"leaf/geometry"
	"leaf/manifest"
	"leaf/spineitem"
)

type fixture struct {
	ctx       *geometry.Context
	reg       *Registry
	renderers []*spineitem.FixedRenderer
}

type itemSpec struct {
	layout common.RenditionLayout
	spread common.PageSpread
	w, h   float64
}

func newFixture(t *testing.T, w, h float64, dir common.ReadingDirection, settings geometry.Settings, specs ...itemSpec) *fixture {
	t.Helper()

	ctx := geometry.NewContext(settings)
	ctx.SetVisibleArea(w, h)
	ctx.SetBook(dir, common.SpreadModeAuto)

	m := &manifest.Manifest{ID: "book", ReadingDirection: dir}
	f := &fixture{ctx: ctx, reg: NewRegistry(ctx, zap.NewNop())}
	for i, s := range specs {
		m.Items = append(m.Items, manifest.Item{
			ID:              string(rune('a' + i)),
			Href:            "OEBPS/" + string(rune('a'+i)) + ".xhtml",
			MediaType:       "application/xhtml+xml",
			Linear:          true,
			RenditionLayout: s.layout,
			PageSpread:      s.spread,
		})
		f.renderers = append(f.renderers, spineitem.NewFixedRenderer(s.w, s.h))
	}
	f.reg.Load(m, func(i int, _ manifest.Item) spineitem.Renderer { return f.renderers[i] })
	t.Cleanup(f.reg.Close)
	return f
}

func noSpread() geometry.Settings {
	s := geometry.DefaultSettings()
	s.Spread = common.SpreadModeNone
	return s
}

func reflowable(w, h float64) itemSpec {
	return itemSpec{layout: common.RenditionLayoutReflowable, w: w, h: h}
}

func boxes(reg *Registry) []geometry.Rect {
	out := make([]geometry.Rect, reg.Len())
	for i := range out {
		out[i], _ = reg.AbsolutePositionOf(i)
	}
	return out
}

func TestLayoutLTR(t *testing.T) {
	f := newFixture(t, 50, 100, common.ReadingDirectionLtr, noSpread(), reflowable(100, 100), reflowable(150, 100))

	assert.Equal(t, []geometry.Rect{
		geometry.NewRect(0, 0, 100, 100),
		geometry.NewRect(100, 0, 150, 100),
	}, boxes(f.reg))

	var published []bool
	f.reg.OnLayout(func(changed bool) { published = append(published, changed) })
	assert.False(t, f.reg.Layout())

	f.renderers[0].Resize(200, 100)
	assert.True(t, f.reg.Layout())
	assert.Equal(t, []bool{false, true}, published)
	assert.Equal(t, geometry.NewRect(200, 0, 150, 100), boxes(f.reg)[1])
}

func TestLayoutRTL(t *testing.T) {
	f := newFixture(t, 50, 100, common.ReadingDirectionRtl, noSpread(), reflowable(100, 100), reflowable(150, 100))

	assert.Equal(t, []geometry.Rect{
		geometry.NewRect(-50, 0, 100, 100),
		geometry.NewRect(-200, 0, 150, 100),
	}, boxes(f.reg))
}

func TestLayoutVertical(t *testing.T) {
	s := noSpread()
	s.PageTurnDirection = common.PageTurnDirectionVertical
	f := newFixture(t, 50, 100, common.ReadingDirectionLtr, s, reflowable(50, 150), reflowable(50, 100))

	assert.Equal(t, []geometry.Rect{
		geometry.NewRect(0, 0, 50, 200),
		geometry.NewRect(0, 200, 50, 100),
	}, boxes(f.reg))
}

func TestLayoutSpread(t *testing.T) {
	// landscape viewport, spread of two 50 wide pages
	f := newFixture(t, 100, 50, common.ReadingDirectionLtr, geometry.DefaultSettings(),
		itemSpec{layout: common.RenditionLayoutPrePaginated, w: 800, h: 1200},
		itemSpec{layout: common.RenditionLayoutPrePaginated, spread: common.PageSpreadLeft, w: 800, h: 1200},
		reflowable(60, 50),
		itemSpec{layout: common.RenditionLayoutPrePaginated, spread: common.PageSpreadRight, w: 800, h: 1200},
	)
	require.True(t, f.ctx.IsUsingSpread())

	assert.Equal(t, []geometry.Rect{
		geometry.NewRect(0, 0, 50, 50),
		geometry.NewRect(50, 0, 100, 50),
		geometry.NewRect(150, 0, 150, 50),
		geometry.NewRect(300, 0, 100, 50),
	}, boxes(f.reg))
}

func TestLayoutOnContentChange(t *testing.T) {
	f := newFixture(t, 50, 100, common.ReadingDirectionLtr, noSpread(), reflowable(0, 0), reflowable(0, 0))

	var changed []bool
	f.reg.OnLayout(func(c bool) { changed = append(changed, c) })

	f.renderers[0].Resize(100, 100)
	it, ok := f.reg.Get(0)
	require.True(t, ok)
	require.NoError(t, it.Load("application/xhtml+xml", nil))

	assert.Equal(t, []bool{true}, changed)
	assert.True(t, it.IsReady())
	assert.Equal(t, geometry.NewRect(100, 0, 50, 100), boxes(f.reg)[1])
}

func TestRegistryLookup(t *testing.T) {
	f := newFixture(t, 50, 100, common.ReadingDirectionLtr, noSpread(), reflowable(50, 100), reflowable(50, 100))

	it, ok := f.reg.GetByID("b")
	require.True(t, ok)
	assert.Equal(t, 1, it.Index())

	_, ok = f.reg.GetByID("z")
	assert.False(t, ok)
	_, ok = f.reg.Get(2)
	assert.False(t, ok)
	_, ok = f.reg.Get(-1)
	assert.False(t, ok)
	_, ok = f.reg.AbsolutePositionOf(5)
	assert.False(t, ok)
	assert.Len(t, f.reg.All(), 2)
}
