package main

import (
	"fmt"
	"strconv"
	"strings"

	"leaf/geometry"
	"leaf/navigation"
	"leaf/reader"
)

// step is a single navigation requested on command line. run reports
// whether anything was requested from the reader.
type step struct {
	text string
	run  func(r *reader.Reader) bool
}

func parseSteps(args []string) ([]step, error) {
	steps := make([]step, 0, len(args))
	for _, a := range args {
		s, err := parseStep(a)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func parseStep(text string) (step, error) {
	kind, arg, _ := strings.Cut(text, ":")
	s := step{text: text}

	switch kind {
	case "next":
		s.run = (*reader.Reader).TurnForward
	case "prev":
		s.run = (*reader.Reader).TurnBackward
	case "left":
		s.run = (*reader.Reader).TurnLeft
	case "right":
		s.run = (*reader.Reader).TurnRight
	case "top":
		s.run = (*reader.Reader).TurnTop
	case "bottom":
		s.run = (*reader.Reader).TurnBottom
	case "item":
		if len(arg) == 0 {
			return s, fmt.Errorf("step %q: item is missing", text)
		}
		ref := itemRef(arg)
		s.run = func(r *reader.Reader) bool { return r.GoToSpineItem(ref) }
	case "page":
		item, page, ok := strings.Cut(arg, ":")
		if !ok || len(item) == 0 {
			return s, fmt.Errorf("step %q: expected page:ITEM:N", text)
		}
		n, err := strconv.Atoi(page)
		if err != nil || n < 0 {
			return s, fmt.Errorf("step %q: malformed page number", text)
		}
		ref := itemRef(item)
		s.run = func(r *reader.Reader) bool { return r.GoToPageOfSpineItem(n, ref) }
	case "cfi":
		if len(arg) == 0 {
			return s, fmt.Errorf("step %q: location is missing", text)
		}
		s.run = func(r *reader.Reader) bool {
			r.GoToCfi(arg, false)
			return true
		}
	case "url":
		if len(arg) == 0 {
			return s, fmt.Errorf("step %q: url is missing", text)
		}
		s.run = func(r *reader.Reader) bool { return r.GoToURL(arg) }
	case "pos":
		xs, ys, ok := strings.Cut(arg, ",")
		x, errX := strconv.ParseFloat(xs, 64)
		y, errY := strconv.ParseFloat(ys, 64)
		if !ok || errX != nil || errY != nil {
			return s, fmt.Errorf("step %q: expected pos:X,Y", text)
		}
		s.run = func(r *reader.Reader) bool {
			r.Navigate(navigation.Intent{Position: &geometry.ViewportPosition{X: x, Y: y}})
			return true
		}
	case "resize":
		w, h, err := parseSize(arg)
		if err != nil {
			return s, fmt.Errorf("step %q: %w", text, err)
		}
		s.run = func(r *reader.Reader) bool {
			r.Resize(w, h)
			return true
		}
	default:
		return s, fmt.Errorf("unknown step %q", text)
	}
	return s, nil
}

// itemRef treats numbers as indexes and anything else as manifest id.
func itemRef(s string) *navigation.ItemRef {
	if n, err := strconv.Atoi(s); err == nil {
		return navigation.ByIndex(n)
	}
	return navigation.ByID(s)
}
