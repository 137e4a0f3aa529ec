package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leaf/common"
	"leaf/geometry"
)

func TestRestorePosition(t *testing.T) {
	snapshot := func(l, w float64) *geometry.Rect {
		r := geometry.NewRect(l, 0, w, 100)
		return &r
	}
	anchor := func(x float64) *geometry.UnsafeSpineItemPosition {
		return &geometry.UnsafeSpineItemPosition{X: x}
	}

	tests := []struct {
		name string
		nav  Entry
		want geometry.ViewportPosition
	}{
		{
			name: "backward into grown item stays at its end",
			nav: Entry{
				SpineItem:                   0,
				Snapshot:                    snapshot(0, 50),
				DirectionFromLastNavigation: common.NavigationDirectionBackward,
			},
			want: geometry.ViewportPosition{X: 50},
		},
		{
			name: "forward into grown item stays put",
			nav: Entry{
				SpineItem:                   0,
				Snapshot:                    snapshot(0, 50),
				DirectionFromLastNavigation: common.NavigationDirectionForward,
			},
			want: geometry.ViewportPosition{},
		},
		{
			name: "shifted item uses local anchor",
			nav: Entry{
				Position:            geometry.ViewportPosition{X: 150},
				SpineItem:           1,
				Snapshot:            snapshot(120, 100),
				PositionInSpineItem: anchor(50),
			},
			want: geometry.ViewportPosition{X: 150},
		},
		{
			name: "unchanged item snaps position",
			nav: Entry{
				Position:  geometry.ViewportPosition{X: 130},
				SpineItem: 1,
				Snapshot:  snapshot(100, 100),
			},
			want: geometry.ViewportPosition{X: 100},
		},
		{
			name: "position outside of item goes to its start",
			nav: Entry{
				Position:  geometry.ViewportPosition{X: 150},
				SpineItem: 0,
				Snapshot:  snapshot(0, 100),
			},
			want: geometry.ViewportPosition{},
		},
		{
			name: "url wins",
			nav: Entry{
				URL:       "OEBPS/b.xhtml",
				SpineItem: 0,
				Snapshot:  snapshot(0, 100),
			},
			want: geometry.ViewportPosition{X: 100},
		},
		{
			name: "missing item",
			nav:  Entry{Position: geometry.ViewportPosition{X: 150}, SpineItem: 9},
			want: geometry.ViewportPosition{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 50, 100, common.ReadingDirectionLtr, noSpread(), reflowable(100, 100), reflowable(100, 100))
			assert.Equal(t, tt.want, RestorePosition(f.resolver, tt.nav))
		})
	}
}

func TestRestorePositionScrollable(t *testing.T) {
	settings := noSpread()
	settings.PageTurnMode = common.PageTurnModeScrollable
	f := newFixture(t, 100, 50, common.ReadingDirectionLtr, settings, reflowable(100, 200), reflowable(100, 200))

	// item 1 is at [0,200 100x200], browser scrolled 30px into it
	box, _ := f.reg.AbsolutePositionOf(1)
	nav := Entry{
		Position:            geometry.ViewportPosition{Y: 230},
		SpineItem:           1,
		Snapshot:            &box,
		PositionInSpineItem: &geometry.UnsafeSpineItemPosition{Y: 30},
	}
	assert.Equal(t, nav.Position, RestorePosition(f.resolver, nav))

	f.renderers[0].Resize(100, 260)
	f.reg.Layout()
	assert.Equal(t, geometry.ViewportPosition{Y: 290}, RestorePosition(f.resolver, nav))
}

func TestRestorePositionRTL(t *testing.T) {
	// item 0 was laid out 50 wide at [0,50], after growth it is at [-50,50]
	snapshot := geometry.NewRect(0, 0, 50, 100)

	tests := []struct {
		name      string
		direction common.NavigationDirection
		want      geometry.ViewportPosition
	}{
		{"backward into grown item stays at its end", common.NavigationDirectionBackward, geometry.ViewportPosition{X: -50}},
		{"forward into grown item stays at its start", common.NavigationDirectionForward, geometry.ViewportPosition{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 50, 100, common.ReadingDirectionRtl, noSpread(), reflowable(100, 100), reflowable(100, 100))
			nav := Entry{
				SpineItem:                   0,
				Snapshot:                    &snapshot,
				PositionInSpineItem:         &geometry.UnsafeSpineItemPosition{},
				DirectionFromLastNavigation: tt.direction,
			}
			assert.Equal(t, tt.want, RestorePosition(f.resolver, nav))
		})
	}
}
