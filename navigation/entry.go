// Package navigation turns navigation requests into canonical navigation
// entries and keeps them consistent with layout changes.
package navigation

import (
	"fmt"

	"github.com/google/uuid"

	"leaf/common"
	"leaf/geometry"
)

// NoItem marks entry not associated with any reading item.
const NoItem = -1

// ID correlates navigation with results computed for it later.
type ID = uuid.UUID

func newID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 fails only when random source does
		return uuid.New()
	}
	return id
}

// Entry is canonical navigation state.
type Entry struct {
	ID          ID
	Position    geometry.ViewportPosition
	TriggeredBy common.TriggeredBy
	Type        common.NavigationType
	Animation   common.Animation
	// raw page turn hint the entry was created with
	Direction common.EdgeDirection

	URL string
	CFI string

	SpineItem int
	// absolute box of SpineItem when entry was resolved, nil if unknown
	Snapshot *geometry.Rect
	// anchor inside SpineItem used to re-resolve position after layout
	// changes, measured from the item right edge in right to left books
	PositionInSpineItem *geometry.UnsafeSpineItemPosition

	DirectionFromLastNavigation common.NavigationDirection
	// locations of the first and the last visible content reported by
	// pagination for this entry
	PaginationBeginCFI string
	PaginationEndCFI   string
}

// Initial returns entry used before any navigation happened.
func Initial() Entry {
	return Entry{ID: newID(), SpineItem: NoItem}
}

// HasItem reports whether entry points to a reading item.
func (e Entry) HasItem() bool {
	return e.SpineItem != NoItem
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s/%s item=%d pos=%s", e.ID, e.TriggeredBy, e.Type, e.SpineItem, e.Position)
}

// ItemRef references reading item either by index or by id.
type ItemRef struct {
	Index int
	ID    string
}

// ByIndex references item at index of the reading order.
func ByIndex(index int) *ItemRef {
	return &ItemRef{Index: index}
}

// ByID references item by its manifest id.
func ByID(id string) *ItemRef {
	return &ItemRef{ID: id}
}

// Intent is navigation requested by user or API. Zero fields are not
// requested.
type Intent struct {
	Position  *geometry.ViewportPosition
	CFI       string
	URL       string
	SpineItem *ItemRef
	Direction common.EdgeDirection
	Animation common.Animation
	Type      common.NavigationType
}
