package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/vatsim-radar/pathify"
)

type Minmax struct {
	Config  string   `short:"c" default:"pathify.toml" desc:"Configuration file"`
	Output  string   `short:"o" desc:"Output configuration file, overwrites the input if empty"`
	Workers int      `short:"j" default:"0" desc:"Number of parallel searches, number of CPUs if zero"`
	Verbose bool     `short:"v" desc:"Show debug output"`
	Quiet   bool     `short:"q" desc:"Show errors only"`
	Names   []string `index:"*" desc:"Aircraft names, all if empty"`
}

func (cmd *Minmax) Run() error {
	setLogger(cmd.Verbose, cmd.Quiet)

	cfg, err := pathify.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	names, err := selectNames(cfg, cmd.Names)
	if err != nil {
		return err
	}

	failed := 0
	targets := make([]pathify.Target, 0, len(names))
	for _, name := range names {
		ac := cfg.Aircraft[name]
		if !ac.UsesADFloor() {
			slog.Warn("threshold search only applies to ad_floor, keeping policy", "aircraft", name, "optimizer", ac.Optimizer.T)
			continue
		}
		bounds, ok := cfg.Bounds(name)
		if !ok {
			slog.Error("no minmax bounds", "aircraft", name)
			failed++
			continue
		}
		raw, err := pathify.RawPoints(name, ac, cfg.Dir)
		if err != nil {
			slog.Error("reading outline failed", "aircraft", name, "err", err)
			failed++
			continue
		}
		slog.Debug("searching", "aircraft", name, "points", len(raw), "evaluations", bounds.Evaluations())
		targets = append(targets, pathify.Target{
			Name:      name,
			Points:    raw,
			Bounds:    bounds,
			MaxPoints: cfg.Configuration.MaxPoints,
		})
	}

	results, err := pathify.SearchAll(ctx, targets, cmd.Workers)
	if err != nil {
		return err
	}
	for _, res := range results {
		if res.Err != nil {
			slog.Error("search failed", "aircraft", res.Name, "err", res.Err)
			failed++
			continue
		} else if !res.Found {
			slog.Warn("no thresholds within max_points, keeping policy", "aircraft", res.Name, "evaluations", res.Evaluations)
			continue
		}

		ac := cfg.Aircraft[res.Name]
		ac.SetPolicy(res.Policy)
		cfg.Aircraft[res.Name] = ac
		slog.Info("minmax", "aircraft", res.Name, "policy", res.Policy, "points", res.Count, "evaluations", res.Evaluations)
	}

	buf := &bytes.Buffer{}
	if err := cfg.Encode(buf); err != nil {
		return err
	}
	filename := cmd.Output
	if filename == "" {
		filename = cmd.Config
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return err
	}

	if failed != 0 {
		return fmt.Errorf("%d of %d aircraft failed", failed, len(names))
	}
	return nil
}
