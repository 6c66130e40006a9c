package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/tdewolff/argp"
	"github.com/vatsim-radar/pathify"
)

// cancelled on interrupt
var ctx = context.Background()

type Generate struct {
	Config    string   `short:"c" default:"pathify.toml" desc:"Configuration file"`
	KeepGoing bool     `short:"k" name:"keep-going" desc:"Continue with the next aircraft after a failure"`
	Verbose   bool     `short:"v" desc:"Show debug output"`
	Quiet     bool     `short:"q" desc:"Show errors only"`
	Names     []string `index:"*" desc:"Aircraft names, all if empty"`
}

func main() {
	var cancel context.CancelFunc
	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	root := argp.NewCmd(&Generate{}, "Convert SVG aircraft outlines to minimal point sets")
	root.AddCmd(&Minmax{}, "minmax", "Search the loosest ad_floor thresholds that keep each outline within max_points")
	root.AddCmd(&Preview{}, "preview", "Plot raw and reduced outlines")
	root.Parse()
	root.PrintHelp()
}

func levelFromFlags(verbose, quiet bool) slog.Level {
	switch {
	case verbose:
		return slog.LevelDebug
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setLogger(verbose, quiet bool) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFromFlags(verbose, quiet),
	})
	slog.SetDefault(slog.New(h))
}

// selectNames returns the requested aircraft names, or all names in sorted order.
func selectNames(cfg *pathify.Config, names []string) ([]string, error) {
	if len(names) == 0 {
		return cfg.Names(), nil
	}
	for _, name := range names {
		if _, ok := cfg.Aircraft[name]; !ok {
			return nil, fmt.Errorf("unknown aircraft %s", name)
		}
	}
	return names, nil
}

func (cmd *Generate) Run() error {
	setLogger(cmd.Verbose, cmd.Quiet)

	cfg, err := pathify.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	names, err := selectNames(cfg, cmd.Names)
	if err != nil {
		return err
	}

	dir := cfg.OutputDirectory()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	failed := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		ac := cfg.Aircraft[name]
		outline, err := pathify.Pathificate(name, ac, cfg.Dir, cfg.Configuration.MaxPoints)
		filename := ""
		if err == nil {
			filename, err = outline.WriteFile(dir)
		}
		if err != nil {
			slog.Error("pathificate failed", "aircraft", name, "err", err)
			failed++
			if !cmd.KeepGoing {
				break
			}
			continue
		}
		slog.Info("pathificated", "aircraft", name, "file", ac.File, "points", len(outline.Points), "output", filename)
	}
	if failed != 0 {
		return fmt.Errorf("%d of %d aircraft failed", failed, len(names))
	}
	return nil
}
