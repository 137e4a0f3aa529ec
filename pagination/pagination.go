// Package pagination tracks which items and pages are visible for the
// current navigation and reports confirmed locations back to the navigator.
package pagination

import (
	"fmt"

	"github.com/google/uuid"

	"leaf/geometry"
)

// Info describes visible part of the book for a navigation.
type Info struct {
	NavigationID uuid.UUID
	Position     geometry.ViewportPosition

	BeginItem          int
	BeginPage          int
	BeginNumberOfPages int
	BeginCFI           string

	EndItem          int
	EndPage          int
	EndNumberOfPages int
	EndCFI           string

	// locations point to content rather than to item start
	Precise bool
}

func (i Info) String() string {
	return fmt.Sprintf("items %d:%d-%d:%d of navigation %s", i.BeginItem, i.BeginPage, i.EndItem, i.EndPage, i.NavigationID)
}

// Feedback is pagination confirmed for a navigation. It is only meaningful
// for navigation with the same id.
type Feedback struct {
	NavigationID uuid.UUID
	BeginItem    int
	BeginCFI     string
	EndItem      int
	EndCFI       string
}
