package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"leaf/archive"
	"leaf/reader"
	"leaf/state"
	"leaf/utils/debug"
)

func runInspect(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("inspect")

	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many books", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	book, r, err := openReader(ctx, cmd, nil, log)
	if err != nil {
		return err
	}
	defer book.Close()
	defer r.Close()

	// every item is measured, not only the ones around reading position
	if err := r.LoadAll(ctx); err != nil {
		log.Warn("Some items could not be loaded", zap.Error(err))
	}

	tw := debug.NewTreeWriter()
	inspect(tw, book, r)

	env.Rpt.StoreData("inspect.txt", tw.Bytes())
	_, err = fmt.Fprint(os.Stdout, tw.String())
	return err
}

func inspect(tw *debug.TreeWriter, book *archive.Book, r *reader.Reader) {
	m := r.Manifest()
	ctx := r.Context()
	visible, page := ctx.VisibleAreaRect(), ctx.PageSize()

	tw.TextBlock(0, "book", m.Title)
	tw.TextBlock(1, "id", m.ID)
	tw.TextBlock(1, "language", m.Language)
	tw.TextBlock(1, "package", m.PackagePath)
	tw.Fields(1, "files", len(book.Names("")), "resources", len(m.Resources))
	tw.Fields(1, "direction", m.ReadingDirection, "layout", m.RenditionLayout, "spread", m.Spread)
	tw.Line(0, "viewport %gx%g", visible.Width, visible.Height)
	tw.Line(1, "page: %gx%g, spread: %t, mode: %s, %s", page.Width, page.Height, ctx.IsUsingSpread(),
		ctx.Settings().PageTurnMode, ctx.Settings().PageTurnDirection)
	tw.Line(0, "items")
	writeItems(tw, 1, r.Items())
	if len(m.TOC) > 0 {
		tw.Line(0, "contents")
		writeTOC(tw, 1, m.TOC)
	}
}
