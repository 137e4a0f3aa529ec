package reader

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"leaf/archive"
	"leaf/common"
	"leaf/config"
	"leaf/geometry"
	"leaf/navigation"
	"leaf/spineitem"
)

type memBook map[string]string

func (b memBook) ReadFile(name string) ([]byte, error) {
	data, ok := b[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, archive.ErrNotFound)
	}
	return []byte(data), nil
}

func (b memBook) Fetch(_ context.Context, href, mediaType string) (*archive.Resource, error) {
	data, err := b.ReadFile(href)
	if err != nil {
		return nil, err
	}
	return &archive.Resource{Href: href, MediaType: mediaType, Data: data}, nil
}

const container = `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const opf = `<?xml version="1.0" encoding="utf-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="uid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="uid">urn:uuid:7b0c5e84-1111-4c59-9d7e-000000000001</dc:identifier>
    <dc:title>Test</dc:title>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
    <item id="ch1" href="text/ch1.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch2" href="text/ch2.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch3" href="text/ch3.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="ch1"/>
    <itemref idref="ch2"/>
    <itemref idref="ch3"/>
  </spine>
</package>`

func page(body string) string {
	return `<html><head><title>t</title></head><body>` + body + `</body></html>`
}

// With 10x25 cells on 100x100 page ch1 takes 3 pages, ch2 one and ch3 two,
// its "end" paragraph starts on the second page.
func newBook() memBook {
	return memBook{
		"META-INF/container.xml": container,
		"OEBPS/content.opf":      opf,
		"OEBPS/text/ch1.xhtml":   page(`<p>` + strings.Repeat("a", 100) + `</p>`),
		"OEBPS/text/ch2.xhtml":   page(`<p>` + strings.Repeat("b", 30) + `</p>`),
		"OEBPS/text/ch3.xhtml":   page(`<p>` + strings.Repeat("c", 50) + `</p><p id="end">` + strings.Repeat("d", 10) + `</p>`),
	}
}

type recorder struct {
	applied []navigation.Entry
}

func (r *recorder) Apply(e navigation.Entry) {
	r.applied = append(r.applied, e)
}

func testOptions(width, height float64, window int) Options {
	opts := DefaultOptions(width, height)
	opts.Metrics = spineitem.Metrics{CharWidth: 10, LineHeight: 25}
	opts.Loader.Window = window
	return opts
}

func open(t *testing.T, opts Options) (*Reader, *recorder) {
	t.Helper()
	view := &recorder{}
	r, err := New(newBook(), opts, view, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r, view
}

func boxes(r *Reader) []geometry.Rect {
	var out []geometry.Rect
	for _, it := range r.Items() {
		out = append(out, it.Box)
	}
	return out
}

func TestReaderOpens(t *testing.T) {
	r, _ := open(t, testOptions(100, 100, 5))

	assert.Equal(t, "Test", r.Manifest().Title)
	assert.Equal(t, []geometry.Rect{
		geometry.NewRect(0, 0, 300, 100),
		geometry.NewRect(300, 0, 100, 100),
		geometry.NewRect(400, 0, 200, 100),
	}, boxes(r))
	for _, it := range r.Items() {
		assert.True(t, it.Ready, "item %d", it.Index)
	}

	nav := r.Navigation()
	assert.Equal(t, 0, nav.SpineItem)
	assert.Equal(t, geometry.ViewportPosition{}, nav.Position)
	assert.Equal(t, common.TriggeredByPagination, nav.TriggeredBy)
	assert.True(t, strings.HasPrefix(r.Location(), "epubcfi(/6/2[ch1]!/4/"), r.Location())

	info := r.Pagination()
	assert.Equal(t, nav.ID, info.NavigationID)
	assert.True(t, info.Precise)
	assert.Equal(t, 0, info.BeginItem)
	assert.Equal(t, 0, info.BeginPage)
	assert.Equal(t, 3, info.BeginNumberOfPages)
}

func TestReaderTurns(t *testing.T) {
	r, view := open(t, testOptions(100, 100, 5))

	steps := []struct {
		turn func() bool
		ok   bool
		x    float64
		item int
	}{
		{r.TurnRight, true, 100, 0},
		{r.TurnRight, true, 200, 0},
		{r.TurnRight, true, 300, 1},
		{r.TurnLeft, true, 200, 0},
		{r.TurnTop, false, 200, 0},
		{r.TurnForward, true, 300, 1},
		{r.TurnForward, true, 400, 2},
		{r.TurnForward, true, 500, 2},
		{r.TurnForward, false, 500, 2},
	}
	for i, s := range steps {
		require.Equal(t, s.ok, s.turn(), "step %d", i)
		nav := r.Navigation()
		assert.Equal(t, geometry.ViewportPosition{X: s.x}, nav.Position, "step %d", i)
		assert.Equal(t, s.item, nav.SpineItem, "step %d", i)
	}

	require.NotEmpty(t, view.applied)
	last := view.applied[len(view.applied)-1]
	assert.Equal(t, geometry.ViewportPosition{X: 500}, last.Position)
	assert.Equal(t, common.AnimationTurn, last.Animation)
	assert.Equal(t, common.EdgeDirectionRight, last.Direction)
}

func TestReaderTurnsRTL(t *testing.T) {
	book := newBook()
	book["OEBPS/content.opf"] = strings.Replace(opf, "<spine>", `<spine page-progression-direction="rtl">`, 1)
	r, err := New(book, testOptions(100, 100, 5), nil, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(r.Close)

	assert.Equal(t, geometry.NewRect(-200, 0, 300, 100), r.Items()[0].Box)

	assert.False(t, r.TurnRight())
	require.True(t, r.TurnLeft())
	assert.Equal(t, geometry.ViewportPosition{X: -100}, r.Navigation().Position)
	require.True(t, r.TurnBackward())
	assert.Equal(t, geometry.ViewportPosition{}, r.Navigation().Position)
}

func TestReaderPanSettlesOnDominantPage(t *testing.T) {
	r, view := open(t, testOptions(100, 100, 5))

	r.MoveTo(geometry.ViewportPosition{X: 20}, true, false)
	r.MoveTo(geometry.ViewportPosition{X: 51}, false, false)
	assert.Equal(t, geometry.ViewportPosition{}, r.Navigation().Position, "navigation is locked while panning")

	r.MoveTo(geometry.ViewportPosition{X: 51}, false, true)
	nav := r.Navigation()
	assert.Equal(t, geometry.ViewportPosition{X: 100}, nav.Position)
	assert.Equal(t, 0, nav.SpineItem)
	require.NotEmpty(t, view.applied)
	last := view.applied[len(view.applied)-1]
	assert.Equal(t, geometry.ViewportPosition{X: 100}, last.Position)
	assert.Equal(t, common.AnimationSnap, last.Animation)

	// less than half a page back snaps to where the gesture started
	r.MoveTo(geometry.ViewportPosition{X: -49}, true, true)
	assert.Equal(t, geometry.ViewportPosition{X: 100}, r.Navigation().Position)

	r.MoveTo(geometry.ViewportPosition{X: 300}, false, true)
	assert.Equal(t, geometry.ViewportPosition{X: 100}, r.Navigation().Position, "move without gesture")
}

func TestReaderGoTo(t *testing.T) {
	r, _ := open(t, testOptions(100, 100, 5))

	require.True(t, r.GoToSpineItem(navigation.ByID("ch2")))
	assert.Equal(t, geometry.ViewportPosition{X: 300}, r.Navigation().Position)

	assert.False(t, r.GoToSpineItem(navigation.ByID("missing")))
	assert.False(t, r.GoToSpineItem(navigation.ByIndex(7)))
	assert.Equal(t, 1, r.Navigation().SpineItem)

	require.True(t, r.GoToURL("OEBPS/text/ch3.xhtml#end"))
	nav := r.Navigation()
	assert.Equal(t, geometry.ViewportPosition{X: 500}, nav.Position)
	assert.Equal(t, 2, nav.SpineItem)
	assert.Equal(t, common.NavigationDirectionAnchor, nav.DirectionFromLastNavigation)

	id := nav.ID
	assert.False(t, r.GoToURL("OEBPS/text/unknown.xhtml"))
	assert.Equal(t, id, r.Navigation().ID)

	r.GoToCfi("epubcfi(/6/4[ch2]!)", false)
	assert.Equal(t, geometry.ViewportPosition{X: 300}, r.Navigation().Position)

	require.True(t, r.GoToPageOfSpineItem(2, navigation.ByIndex(0)))
	assert.Equal(t, geometry.ViewportPosition{X: 200}, r.Navigation().Position)
	require.True(t, r.GoToPageOfSpineItem(0, nil))
	assert.Equal(t, geometry.ViewportPosition{}, r.Navigation().Position)

	require.True(t, r.GoToNextSpineItem())
	assert.Equal(t, 1, r.Navigation().SpineItem)
	require.True(t, r.GoToPreviousSpineItem())
	assert.Equal(t, 0, r.Navigation().SpineItem)
	assert.False(t, r.GoToPreviousSpineItem())
}

func TestReaderScrollIsNotApplied(t *testing.T) {
	r, view := open(t, testOptions(100, 100, 5))

	before := len(view.applied)
	r.ScrollTo(geometry.ViewportPosition{X: 150})
	nav := r.Navigation()
	assert.Equal(t, geometry.ViewportPosition{X: 150}, nav.Position)
	assert.Equal(t, common.NavigationTypeScroll, nav.Type)
	assert.Len(t, view.applied, before)
}

func TestReaderLock(t *testing.T) {
	r, view := open(t, testOptions(100, 100, 5))

	var states []common.ViewportState
	r.SubscribeViewportState(func(s common.ViewportState) { states = append(states, s) })

	unlock := r.Lock()
	assert.Equal(t, common.ViewportStateBusy, r.ViewportState())
	require.True(t, r.GoToSpineItem(navigation.ByIndex(1)))
	assert.Equal(t, 0, r.Navigation().SpineItem)

	unlock()
	unlock()
	nav := r.Navigation()
	assert.Equal(t, 1, nav.SpineItem)
	assert.Equal(t, geometry.ViewportPosition{X: 300}, nav.Position)
	assert.Equal(t, []common.ViewportState{common.ViewportStateBusy, common.ViewportStateFree}, states)

	require.NotEmpty(t, view.applied)
	assert.Equal(t, common.AnimationSnap, view.applied[len(view.applied)-1].Animation)
}

func TestReaderKeepsPositionWhenContentUnloads(t *testing.T) {
	r, _ := open(t, testOptions(100, 100, 0))

	// only the first item is measured
	assert.Equal(t, geometry.NewRect(400, 0, 100, 100), r.Items()[2].Box)

	require.True(t, r.GoToSpineItem(navigation.ByID("ch3")))

	items := r.Items()
	assert.False(t, items[0].Loaded)
	assert.True(t, items[2].Loaded)
	assert.Equal(t, geometry.NewRect(200, 0, 200, 100), items[2].Box)

	nav := r.Navigation()
	assert.Equal(t, 2, nav.SpineItem)
	assert.Equal(t, geometry.ViewportPosition{X: 200}, nav.Position)
}

func TestReaderResize(t *testing.T) {
	r, _ := open(t, testOptions(100, 100, 5))
	require.True(t, r.GoToSpineItem(navigation.ByIndex(1)))

	// landscape viewport shows two pages, every item starts on a new screen
	r.Resize(200, 100)
	assert.True(t, r.Context().IsUsingSpread())
	assert.Equal(t, []geometry.Rect{
		geometry.NewRect(0, 0, 400, 100),
		geometry.NewRect(400, 0, 200, 100),
		geometry.NewRect(600, 0, 200, 100),
	}, boxes(r))
	assert.Equal(t, geometry.ViewportPosition{X: 400}, r.Navigation().Position)

	require.True(t, r.GoToSpineItem(navigation.ByIndex(0)))
	require.True(t, r.TurnRight())
	assert.Equal(t, geometry.ViewportPosition{X: 200}, r.Navigation().Position)
	require.True(t, r.TurnRight())
	assert.Equal(t, geometry.ViewportPosition{X: 400}, r.Navigation().Position)
	assert.Equal(t, 1, r.Navigation().SpineItem)

	s := r.Settings()
	s.Spread = common.SpreadModeNone
	r.SetSettings(s)
	assert.False(t, r.Context().IsUsingSpread())
	assert.Equal(t, 1, r.Navigation().SpineItem)
}

func TestReaderLoadAll(t *testing.T) {
	r, _ := open(t, testOptions(100, 100, 0))
	require.NoError(t, r.LoadAll(context.Background()))
	for _, it := range r.Items() {
		assert.True(t, it.Loaded, "item %d", it.Index)
	}
}

func TestReaderBrokenBook(t *testing.T) {
	book := newBook()
	delete(book, "META-INF/container.xml")
	_, err := New(book, testOptions(100, 100, 0), nil, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, archive.ErrNotFound)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	require.NoError(t, err)

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, 1200.0, opts.Width)
	assert.Equal(t, 800.0, opts.Height)
	assert.Equal(t, geometry.DefaultSettings(), opts.Settings)
	assert.Equal(t, 1, opts.Loader.Window)
	assert.Equal(t, 4, opts.Loader.Concurrency)
}
