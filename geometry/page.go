package geometry

import "math"

// NumberOfPages returns how many pages of pageExtent fit itemExtent. Not
// measured items always have single page.
func NumberOfPages(itemExtent, pageExtent float64) int {
	if itemExtent <= 0 || pageExtent <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(itemExtent/pageExtent)))
}

// PageIndexFromOffset returns index of the page containing offset, clamped to
// existing pages.
func PageIndexFromOffset(offset, pageExtent, itemExtent float64) int {
	if offset <= 0 || pageExtent <= 0 {
		return 0
	}
	n := NumberOfPages(itemExtent, pageExtent)
	if offset >= float64(n)*pageExtent {
		return n - 1
	}
	for i := range n {
		if offset < float64(i)*pageExtent+pageExtent {
			return i
		}
	}
	return n - 1
}

// OffsetFromPageIndex returns offset of the page start, never past the start
// of the last full page.
func OffsetFromPageIndex(pageIndex int, pageExtent, itemExtent float64) float64 {
	return max(0, min(itemExtent-pageExtent, pageExtent*float64(pageIndex)))
}

// ClosestValidOffset snaps approximate offset to the start of the page it
// falls into.
func ClosestValidOffset(offset, pageExtent, itemExtent float64) float64 {
	if pageExtent <= 0 {
		return 0
	}
	n := NumberOfPages(itemExtent, pageExtent)
	if offset >= float64(n)*pageExtent {
		return float64(n-1) * pageExtent
	}
	for i := range n {
		start := float64(i) * pageExtent
		if offset < start+pageExtent {
			return max(0, start)
		}
	}
	return 0
}
