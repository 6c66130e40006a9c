package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
	"github.com/vatsim-radar/pathify"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type Preview struct {
	Config  string   `short:"c" default:"pathify.toml" desc:"Configuration file"`
	Output  string   `short:"o" default:"preview" desc:"Output directory"`
	Format  string   `default:"svg" desc:"Image format: svg or png"`
	Open    bool     `desc:"Open the previews in the browser"`
	Verbose bool     `short:"v" desc:"Show debug output"`
	Quiet   bool     `short:"q" desc:"Show errors only"`
	Names   []string `index:"*" desc:"Aircraft names, all if empty"`
}

func (cmd *Preview) Run() error {
	setLogger(cmd.Verbose, cmd.Quiet)
	if cmd.Format != "svg" && cmd.Format != "png" {
		return fmt.Errorf("unsupported format %s", cmd.Format)
	}

	cfg, err := pathify.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	names, err := selectNames(cfg, cmd.Names)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cmd.Output, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	failed := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		filename := filepath.Join(cmd.Output, name+"."+cmd.Format)
		if err := preview(cfg, name, filename); err != nil {
			slog.Error("preview failed", "aircraft", name, "err", err)
			failed++
			continue
		}
		slog.Info("preview", "aircraft", name, "output", filename)
		if cmd.Open {
			if err := browser.OpenFile(filename); err != nil {
				slog.Warn("could not open browser", "err", err)
			}
		}
	}
	if failed != 0 {
		return fmt.Errorf("%d of %d aircraft failed", failed, len(names))
	}
	return nil
}

func preview(cfg *pathify.Config, name, filename string) error {
	ac := cfg.Aircraft[name]
	policy, err := ac.Policy()
	if err != nil {
		return err
	}
	raw, err := pathify.RawPoints(name, ac, cfg.Dir)
	if err != nil {
		return err
	}
	reduced := pathify.Reduce(policy, raw)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %v", name, policy)
	p.X.Label.Text = "x (ft)"
	p.Y.Label.Text = "y (ft)"

	rawLine, err := plotter.NewLine(toXYs(raw))
	if err != nil {
		return err
	}
	rawLine.LineStyle.Color = color.Gray{Y: 0xb0}
	rawLine.LineStyle.Width = vg.Points(0.5)

	line, points, err := plotter.NewLinePoints(toXYs(reduced))
	if err != nil {
		return err
	}
	line.LineStyle.Color = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	points.Color = line.LineStyle.Color
	points.Radius = vg.Points(1.5)

	p.Add(rawLine, line, points)
	p.Legend.Add(fmt.Sprintf("raw (%d)", len(raw)), rawLine)
	p.Legend.Add(fmt.Sprintf("reduced (%d)", len(reduced)), line, points)
	return p.Save(6*vg.Inch, 6*vg.Inch, filename)
}

func toXYs(pts []pathify.Point) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i].X, xys[i].Y = pt.X, pt.Y
	}
	return xys
}
