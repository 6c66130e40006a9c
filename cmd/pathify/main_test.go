package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/test"
	"github.com/vatsim-radar/pathify"
)

func TestLevelFromFlags(t *testing.T) {
	test.T(t, levelFromFlags(false, false), slog.LevelInfo)
	test.T(t, levelFromFlags(true, false), slog.LevelDebug)
	test.T(t, levelFromFlags(false, true), slog.LevelError)
	test.T(t, levelFromFlags(true, true), slog.LevelDebug)
}

func TestSelectNames(t *testing.T) {
	cfg := &pathify.Config{Aircraft: map[string]pathify.AircraftConfig{
		"B738": {},
		"A320": {},
	}}

	names, err := selectNames(cfg, nil)
	test.Error(t, err)
	test.T(t, names, []string{"A320", "B738"})

	names, err = selectNames(cfg, []string{"B738"})
	test.Error(t, err)
	test.T(t, names, []string{"B738"})

	_, err = selectNames(cfg, []string{"C172"})
	test.That(t, err != nil)
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	svg := `<svg width="100" height="50"><path d="M0 0L100 0L100 50L0 50z" stroke="black"/></svg>`
	test.Error(t, os.WriteFile(filepath.Join(dir, "a320.svg"), []byte(svg), 0o644))
	config := "[configuration]\noutput_directory = \"out\"\nmax_points = 10\n\n" +
		"[aircraft.A320]\nf = \"a320.svg\"\nattr = \"\"\nw = 100\nl = 50\noptimizer = { t = \"ad_floor\", a_floor = 0.1 }\n\n" +
		"[aircraft.B738]\nf = \"missing.svg\"\nattr = \"\"\nw = 100\nl = 50\noptimizer = { t = \"ad_floor\", a_floor = 0.1 }\n"
	filename := filepath.Join(dir, "pathify.toml")
	test.Error(t, os.WriteFile(filename, []byte(config), 0o644))

	err := (&Generate{Config: filename, KeepGoing: true, Quiet: true}).Run()
	test.That(t, err != nil)
	test.T(t, err.Error(), "1 of 2 aircraft failed")

	_, err = os.Stat(filepath.Join(dir, "out", "A320.json"))
	test.Error(t, err)

	test.Error(t, (&Generate{Config: filename, Quiet: true, Names: []string{"A320"}}).Run())
}

const minmaxSVG = `<svg width="100" height="50"><path d="M0 0L50 1L100 0L100 50L0 50z" stroke="black"/></svg>`

func writeMinmaxConfig(t *testing.T, maxPoints int, aircraft string) string {
	t.Helper()
	dir := t.TempDir()
	test.Error(t, os.WriteFile(filepath.Join(dir, "a320.svg"), []byte(minmaxSVG), 0o644))
	config := fmt.Sprintf("[configuration]\noutput_directory = \"out\"\nmax_points = %d\n\n", maxPoints) +
		"[minmax]\na_ceiling = 1.0\na_step = 0.25\nd_ceiling = 1.0\nd_step = 0.25\n" + aircraft
	filename := filepath.Join(dir, "pathify.toml")
	test.Error(t, os.WriteFile(filename, []byte(config), 0o644))
	return filename
}

func TestMinmax(t *testing.T) {
	filename := writeMinmaxConfig(t, 5, "\n[aircraft.A320]\nf = \"a320.svg\"\nattr = \"\"\nw = 100\nl = 50\na_floor = 0.0\nd_floor = 0.0\n")
	output := filepath.Join(filepath.Dir(filename), "out.toml")
	test.Error(t, (&Minmax{Config: filename, Output: output, Quiet: true}).Run())

	cfg, err := pathify.LoadConfig(output)
	test.Error(t, err)
	test.That(t, cfg.Aircraft["A320"].Optimizer != nil)
	test.T(t, cfg.Aircraft["A320"].Optimizer.T, pathify.ADFloorTag)
}

func TestMinmaxInfeasible(t *testing.T) {
	// the first and last point are always kept
	filename := writeMinmaxConfig(t, 1, "\n[aircraft.A320]\nf = \"a320.svg\"\nattr = \"\"\nw = 100\nl = 50\na_floor = 0.15\nd_floor = 0.2\n")
	test.Error(t, (&Minmax{Config: filename, Quiet: true}).Run())

	cfg, err := pathify.LoadConfig(filename)
	test.Error(t, err)
	a320 := cfg.Aircraft["A320"]
	test.That(t, a320.Optimizer == nil)
	test.That(t, a320.AFloor != nil && a320.DFloor != nil)
	test.Float(t, *a320.AFloor, 0.15)
	test.Float(t, *a320.DFloor, 0.2)
}

func TestMinmaxFailures(t *testing.T) {
	filename := writeMinmaxConfig(t, 5, "\n[aircraft.A320]\nf = \"a320.svg\"\nattr = \"\"\nw = 100\nl = 50\na_floor = 0.0\nd_floor = 0.0\n"+
		"\n[aircraft.B738]\nf = \"missing.svg\"\nattr = \"\"\nw = 100\nl = 50\na_floor = 0.1\nd_floor = 0.2\n")
	output := filepath.Join(filepath.Dir(filename), "out.toml")
	err := (&Minmax{Config: filename, Output: output, Quiet: true}).Run()
	test.That(t, err != nil)
	test.T(t, err.Error(), "1 of 2 aircraft failed")

	cfg, err := pathify.LoadConfig(output)
	test.Error(t, err)
	policy, err := cfg.Aircraft["A320"].Policy()
	test.Error(t, err)
	test.T(t, policy, pathify.ADFloor{AFloor: 0.25, DFloor: 0.25})

	policy, err = cfg.Aircraft["B738"].Policy()
	test.Error(t, err)
	test.T(t, policy, pathify.ADFloor{AFloor: 0.1, DFloor: 0.2})
}

func TestMinmaxPolicies(t *testing.T) {
	filename := writeMinmaxConfig(t, 5, "\n[aircraft.A320]\nf = \"a320.svg\"\nattr = \"\"\nw = 100\nl = 50\noptimizer = { t = \"three_pt_average\", dt = 0.3 }\n"+
		"\n[aircraft.A321]\nf = \"a320.svg\"\nattr = \"\"\nw = 100\nl = 50\noptimizer = { t = \"douglas_peucker\", threshold = 0.5 }\n"+
		"\n[aircraft.B738]\nf = \"a320.svg\"\nattr = \"\"\nw = 100\nl = 50\n")
	test.Error(t, (&Minmax{Config: filename, Quiet: true}).Run())

	cfg, err := pathify.LoadConfig(filename)
	test.Error(t, err)
	var tts = []struct {
		name   string
		policy pathify.Policy
	}{
		{"A320", pathify.ThreePointAverage{DT: 0.3}},
		{"A321", pathify.DouglasPeucker{Threshold: 0.5}},
		{"B738", pathify.ADFloor{AFloor: 0.25, DFloor: 0.25}},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := cfg.Aircraft[tt.name].Policy()
			test.Error(t, err)
			test.T(t, policy, tt.policy)
		})
	}
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	svg := `<svg width="100" height="50"><path d="M0 0L50 1L100 0L100 50L0 50z" stroke="black"/></svg>`
	test.Error(t, os.WriteFile(filepath.Join(dir, "a320.svg"), []byte(svg), 0o644))
	config := "[configuration]\noutput_directory = \"out\"\nmax_points = 10\n\n" +
		"[aircraft.A320]\nf = \"a320.svg\"\nattr = \"\"\nw = 100\nl = 50\noptimizer = { t = \"douglas_peucker\", threshold = 0.5 }\n"
	filename := filepath.Join(dir, "pathify.toml")
	test.Error(t, os.WriteFile(filename, []byte(config), 0o644))

	output := filepath.Join(dir, "preview")
	test.Error(t, (&Preview{Config: filename, Output: output, Format: "svg", Quiet: true}).Run())
	_, err := os.Stat(filepath.Join(output, "A320.svg"))
	test.Error(t, err)

	err = (&Preview{Config: filename, Output: output, Format: "gif", Quiet: true}).Run()
	test.That(t, err != nil)
}
