package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"leaf/archive"
	"leaf/manifest"
	"leaf/navigation"
	"leaf/reader"
	"leaf/state"
	"leaf/utils/debug"
)

// viewport counts navigations the engine asked to display.
type viewport struct {
	applied int
}

func (v *viewport) Apply(navigation.Entry) {
	v.applied++
}

// openReader opens book named by the first argument. Everything is computed
// synchronously so that every step has settled results.
func openReader(ctx context.Context, cmd *cli.Command, view navigation.ViewportRenderer, log *zap.Logger) (*archive.Book, *reader.Reader, error) {
	env := state.EnvFromContext(ctx)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return nil, nil, errors.New("no book has been specified")
	}

	opts := reader.OptionsFromConfig(env.Cfg)
	opts.PaginationDelay, opts.Loader.LoadDebounce, opts.Loader.UnloadDebounce = 0, 0, 0
	if vp := cmd.String("viewport"); len(vp) > 0 {
		w, h, err := parseSize(vp)
		if err != nil {
			return nil, nil, err
		}
		opts.Width, opts.Height = w, h
	}

	book, err := archive.Open(src, log)
	if err != nil {
		return nil, nil, err
	}
	r, err := reader.New(book, opts, view, log)
	if err != nil {
		book.Close()
		return nil, nil, fmt.Errorf("unable to open %s: %w", src, err)
	}
	return book, r, nil
}

// bookID returns identifier bookmarks are stored under. Books without
// identifier get one derived from their location.
func bookID(m *manifest.Manifest, path string) string {
	if len(m.ID) > 0 {
		return m.ID
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(path))).URN()
}

func parseSize(s string) (float64, float64, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("malformed size %q, expected WxH", s)
	}
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("malformed width in %q", s)
	}
	h, err := strconv.ParseFloat(hs, 64)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("malformed height in %q", s)
	}
	return w, h, nil
}

func writeEntry(tw *debug.TreeWriter, depth int, e navigation.Entry) {
	tw.Line(depth, "navigation %s", e.ID)
	tw.Fields(depth+1, "item", e.SpineItem, "position", e.Position)
	tw.Fields(depth+1, "trigger", e.TriggeredBy, "type", e.Type, "direction", e.DirectionFromLastNavigation, "animation", e.Animation)
	if len(e.PaginationBeginCFI) > 0 {
		tw.TextBlock(depth+1, "cfi", e.PaginationBeginCFI)
	}
	if len(e.PaginationEndCFI) > 0 {
		tw.TextBlock(depth+1, "end cfi", e.PaginationEndCFI)
	}
}

func writeItems(tw *debug.TreeWriter, depth int, items []reader.ItemInfo) {
	for _, it := range items {
		tw.Line(depth, "%d %s", it.Index, it.ID)
		tw.TextBlock(depth+1, "href", it.Href)
		tw.Fields(depth+1, "layout", it.Layout, "spread", it.Spread, "vertical writing", it.Vertical)
		tw.Fields(depth+1, "box", it.Box, "pages", it.Pages, "loaded", it.Loaded, "ready", it.Ready)
	}
}

func writeTOC(tw *debug.TreeWriter, depth int, entries []manifest.TOCEntry) {
	for _, e := range entries {
		tw.TextBlock(depth, e.Title, e.Href)
		writeTOC(tw, depth+1, e.Children)
	}
}
