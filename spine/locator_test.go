package spine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaf/common"
	"leaf/geometry"
	"leaf/spineitem"
)

func newLocator(f *fixture) *Locator {
	return NewLocator(f.ctx, f.reg, spineitem.NewLocator(f.ctx))
}

// setBoxes replaces layout result, locator math does not care where boxes
// come from.
func setBoxes(reg *Registry, boxes ...geometry.Rect) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.boxes = boxes
}

func TestVisibleItemRange(t *testing.T) {
	f := newFixture(t, 150, 100, common.ReadingDirectionLtr, noSpread(), reflowable(100, 100), reflowable(100, 100))
	setBoxes(f.reg, geometry.NewRect(0, 0, 100, 100), geometry.NewRect(100, 0, 100, 100))
	l := newLocator(f)

	begin, end, ok := l.VisibleItemRange(geometry.ViewportPosition{X: 50}, 0.5, false)
	require.True(t, ok)
	assert.Equal(t, 0, begin)
	assert.Equal(t, 1, end)

	// half of the first item is not half of the screen
	begin, end, ok = l.VisibleItemRange(geometry.ViewportPosition{X: 50}, 0.5, true)
	require.True(t, ok)
	assert.Equal(t, 1, begin)
	assert.Equal(t, 1, end)

	// nothing visible, falls back to item at position
	begin, end, ok = l.VisibleItemRange(geometry.ViewportPosition{X: 150}, 0.9, true)
	require.True(t, ok)
	assert.Equal(t, 1, begin)
	assert.Equal(t, 1, end)

	// far away, falls back to the first item
	begin, end, ok = l.VisibleItemRange(geometry.ViewportPosition{X: 1000}, 0.5, false)
	require.True(t, ok)
	assert.Equal(t, 0, begin)
	assert.Equal(t, 0, end)
}

func TestVisibleItemRangeEmpty(t *testing.T) {
	f := newFixture(t, 150, 100, common.ReadingDirectionLtr, noSpread())
	l := newLocator(f)

	_, _, ok := l.VisibleItemRange(geometry.ViewportPosition{}, 0.5, false)
	assert.False(t, ok)
	_, ok = l.ItemAtPosition(geometry.ViewportPosition{})
	assert.False(t, ok)
}

func TestItemAtPosition(t *testing.T) {
	f := newFixture(t, 50, 100, common.ReadingDirectionLtr, noSpread(), reflowable(100, 100), reflowable(100, 100))
	l := newLocator(f)

	tests := []struct {
		pos   geometry.ViewportPosition
		index int
		found bool
	}{
		{geometry.ViewportPosition{}, 0, true},
		{geometry.ViewportPosition{X: 99}, 0, true},
		{geometry.ViewportPosition{X: 100}, 1, true},
		// horizontal mode ignores y
		{geometry.ViewportPosition{X: 150, Y: 1000}, 1, true},
		{geometry.ViewportPosition{X: 200}, 0, false},
		{geometry.ViewportPosition{X: -1}, 0, false},
	}
	for _, tt := range tests {
		it, ok := l.ItemAtPosition(tt.pos)
		require.Equal(t, tt.found, ok, "position %v", tt.pos)
		if ok {
			assert.Equal(t, tt.index, it.Index(), "position %v", tt.pos)
		}
	}
}

func TestItemAtPositionNotMeasured(t *testing.T) {
	f := newFixture(t, 50, 100, common.ReadingDirectionLtr, noSpread(), reflowable(0, 0), reflowable(0, 0))
	l := newLocator(f)

	it, ok := l.ItemAtPosition(geometry.ViewportPosition{})
	require.True(t, ok)
	assert.Equal(t, 0, it.Index())
}

func TestLocalGlobal(t *testing.T) {
	f := newFixture(t, 50, 100, common.ReadingDirectionLtr, noSpread(), reflowable(100, 100), reflowable(100, 100))
	l := newLocator(f)
	second, _ := f.reg.Get(1)

	assert.Equal(t, geometry.UnsafeSpineItemPosition{X: 20}, l.ToLocal(geometry.ViewportPosition{X: 120}, second))
	assert.Equal(t, geometry.UnsafeSpineItemPosition{}, l.ToLocal(geometry.ViewportPosition{X: 50}, second))
	assert.Equal(t, geometry.ViewportPosition{X: 150}, l.ToGlobal(geometry.SpineItemPosition{X: 50}, second))

	assert.True(t, l.IsPositionWithinItem(geometry.ViewportPosition{X: 100}, second))
	assert.True(t, l.IsPositionWithinItem(geometry.ViewportPosition{X: 200, Y: 100}, second))
	assert.False(t, l.IsPositionWithinItem(geometry.ViewportPosition{X: 201}, second))

	assert.Equal(t, geometry.SpineItemPosition{X: 100}, l.SafeItemPosition(geometry.UnsafeSpineItemPosition{X: 300, Y: -4}, second))
}

func TestVisiblePageRange(t *testing.T) {
	f := newFixture(t, 50, 100, common.ReadingDirectionLtr, noSpread(), reflowable(150, 100))
	l := newLocator(f)
	it, _ := f.reg.Get(0)

	begin, end, ok := l.VisiblePageRange(it, geometry.ViewportPosition{X: 50}, 0.5)
	require.True(t, ok)
	assert.Equal(t, 1, begin)
	assert.Equal(t, 1, end)

	begin, end, ok = l.VisiblePageRange(it, geometry.ViewportPosition{X: 60}, 0.5)
	require.True(t, ok)
	assert.Equal(t, 1, begin)
	assert.Equal(t, 1, end)

	_, _, ok = l.VisiblePageRange(it, geometry.ViewportPosition{X: 75}, 0.6)
	assert.False(t, ok)
}
