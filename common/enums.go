// Package common keeps enumerations shared between configuration and the
// navigation engine packages. Use "go generate" to refresh enums_enum.go after
// changing any ENUM declaration below.
package common

//go:generate go tool go-enum --marshal --names

// How pages are turned: either in discrete controlled steps or by free scroll.
// ENUM(controlled, scrollable)
type PageTurnMode int

// Axis along which reading progresses.
// ENUM(horizontal, vertical)
type PageTurnDirection int

// Book level reading direction.
// ENUM(ltr, rtl)
type ReadingDirection int

// Two-page spread mode.
// ENUM(none, auto, both)
type SpreadMode int

// Rendition layout of a reading item.
// ENUM(reflowable, pre-paginated)
type RenditionLayout int

// Page spread placement hint of a reading item.
// ENUM(none, left, right, center)
type PageSpread int

// Direction of a navigation relative to the previous one, "none" when unknown.
// ENUM(none, forward, backward, anchor)
type NavigationDirection int

// Raw edge direction requested by page turns, "none" when not requested.
// ENUM(none, left, right, top, bottom)
type EdgeDirection int

// Source of a committed navigation.
// ENUM(user, restoration, pagination)
type TriggeredBy int

// Kind of navigation request.
// ENUM(api, scroll)
type NavigationType int

// Animation hint for the viewport.
// ENUM(turn, none, snap)
type Animation int

// Availability of the viewport for automatic adjustments.
// ENUM(free, busy)
type ViewportState int

// IsForward reports whether direction moves towards the end of the book.
func (d NavigationDirection) IsForward() bool {
	return d == NavigationDirectionForward || d == NavigationDirectionAnchor
}

// IsVertical reports whether the edge is on the vertical axis.
func (e EdgeDirection) IsVertical() bool {
	return e == EdgeDirectionTop || e == EdgeDirectionBottom
}
