package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"leaf/bookmarks"
	"leaf/navigation"
	"leaf/reader"
	"leaf/state"
	"leaf/utils/debug"
)

func runNavigate(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("navigate")

	steps, err := parseSteps(cmd.Args().Tail())
	if err != nil {
		return err
	}

	view := &viewport{}
	book, r, err := openReader(ctx, cmd, view, log)
	if err != nil {
		return err
	}
	defer book.Close()
	defer r.Close()

	// complete history goes into debug report
	trace := debug.NewTreeWriter()
	cancel := r.Subscribe(func(e navigation.Entry) { writeEntry(trace, 0, e) })
	defer func() {
		cancel()
		env.Rpt.StoreData("navigation.txt", trace.Bytes())
	}()

	id := bookID(r.Manifest(), book.Path())
	if cmd.Bool("resume") {
		resume(env, r, id, log)
	}

	tw := debug.NewTreeWriter()
	if err := navigate(ctx, tw, r, view, steps); err != nil {
		return err
	}
	if _, err := fmt.Fprint(os.Stdout, tw.String()); err != nil {
		return err
	}

	if !cmd.Bool("save") {
		return nil
	}
	if env.Bookmarks == nil {
		log.Warn("Bookmarks are not enabled, location is not saved")
		return nil
	}
	return env.Bookmarks.Save(bookmarks.Bookmark{
		Book:       id,
		CFI:        r.Location(),
		SpineIndex: r.Navigation().SpineItem,
	})
}

func resume(env *state.LocalEnv, r *reader.Reader, id string, log *zap.Logger) {
	if env.Bookmarks == nil {
		log.Warn("Bookmarks are not enabled, starting from the beginning")
		return
	}
	b, err := env.Bookmarks.Load(id)
	switch {
	case errors.Is(err, bookmarks.ErrNotFound):
		log.Info("No bookmark for the book, starting from the beginning", zap.String("book", id))
		return
	case err != nil:
		log.Warn("Unable to resume", zap.Error(err))
		return
	}
	log.Info("Resuming", zap.String("cfi", b.CFI), zap.Time("saved", b.Updated))
	r.GoToCfi(b.CFI, false)
}

// navigate runs steps one by one writing canonical navigation after each.
func navigate(ctx context.Context, tw *debug.TreeWriter, r *reader.Reader, view *viewport, steps []step) error {
	tw.Line(0, "start")
	writeEntry(tw, 1, r.Navigation())
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		applied := view.applied
		if !s.run(r) {
			tw.Line(0, "%s: ignored", s.text)
			continue
		}
		tw.Line(0, "%s: applied to viewport %d time(s)", s.text, view.applied-applied)
		writeEntry(tw, 1, r.Navigation())
		if info := r.Pagination(); info.NavigationID == r.Navigation().ID {
			tw.Line(1, "pages: item %d page %d/%d - item %d page %d/%d", info.BeginItem, info.BeginPage+1, info.BeginNumberOfPages,
				info.EndItem, info.EndPage+1, info.EndNumberOfPages)
		}
	}
	tw.TextBlock(0, "location", r.Location())
	return nil
}
